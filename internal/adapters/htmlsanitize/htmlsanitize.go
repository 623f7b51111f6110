// Package htmlsanitize cleans the rich-text fields stored with hotel content
// (blog bodies, section and card descriptions) before they reach a template.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
		policy.AllowElements("u", "s", "sub", "sup", "mark")
		policy.AllowAttrs("class").OnElements("p", "span", "div")
	})
	return policy
}

// Sanitize strips unsafe markup and keeps basic formatting.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizeToHTML sanitizes s and marks it safe for html/template.
// Plain text (no tags) keeps its line breaks.
func SanitizeToHTML(s string) template.HTML {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
	}
	return template.HTML(Sanitize(s))
}
