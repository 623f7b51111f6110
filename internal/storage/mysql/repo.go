package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hotel_site/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(v []string) any {
	if len(v) == 0 {
		return nil
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertHotel inserts or updates the hotel keyed by slug and returns its id.
func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.Name,
		h.Slug,
		h.Tagline,
		h.Address,
		h.Phone,
		h.Email,
		valStr(h.Thumbnail),
		h.IsActive,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ReplaceContent swaps every child record of the hotel for the bundle's in
// one transaction, so a page never renders half-seeded content.
func (r *Repo) ReplaceContent(ctx context.Context, hotelID int64, b domain.HotelBundle) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range childTables {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE hotel_id = ?", t), hotelID); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}

	if b.MainInfo != nil {
		_, err = tx.ExecContext(ctx, upsertMainInfoSQL, hotelID, b.MainInfo.Title, b.MainInfo.HighlightedText, b.MainInfo.Description)
	} else {
		_, err = tx.ExecContext(ctx, deleteMainInfoSQL, hotelID)
	}
	if err != nil {
		return fmt.Errorf("main info: %w", err)
	}

	for _, s := range b.Slides {
		if _, err = tx.ExecContext(ctx, insertSlideSQL, hotelID, s.Title, s.Image, s.Order, s.IsActive); err != nil {
			return fmt.Errorf("slide %q: %w", s.Title, err)
		}
	}
	for _, c := range b.Cards {
		if _, err = tx.ExecContext(ctx, insertCardSQL,
			hotelID, c.Title, string(c.Category), c.Image, c.Description, c.Order, c.IsActive, c.ButtonText, c.ButtonLink,
		); err != nil {
			return fmt.Errorf("card %q: %w", c.Title, err)
		}
	}
	for _, rt := range b.RoomTypes {
		if _, err = tx.ExecContext(ctx, insertRoomTypeSQL,
			hotelID, rt.Name, rt.Image, rt.Description, valF64(rt.PricePerNight), rt.IsAvailable, rt.Order,
		); err != nil {
			return fmt.Errorf("room type %q: %w", rt.Name, err)
		}
	}
	for _, s := range b.Sections {
		if _, err = tx.ExecContext(ctx, insertSectionSQL,
			hotelID, string(s.Type), s.Title, s.Description, valJSON(s.Images),
			s.Button1Text, s.Button1Link, s.Button2Text, s.Button2Link,
			s.OverlayTitle, s.OverlayText, s.OverlayButtonText, s.OverlayButtonLink, s.IsActive,
		); err != nil {
			return fmt.Errorf("section %s: %w", s.Type, err)
		}
	}
	for _, f := range b.FAQs {
		if _, err = tx.ExecContext(ctx, insertFAQSQL, hotelID, f.Question, f.Answer, f.Order, f.IsActive); err != nil {
			return fmt.Errorf("faq %q: %w", f.Question, err)
		}
	}
	for _, p := range b.BlogPosts {
		if _, err = tx.ExecContext(ctx, insertBlogPostSQL,
			hotelID, p.Title, p.Excerpt, p.Content, p.Image, p.Category, p.PublishedDate, p.IsPublished, valStr(p.Author),
		); err != nil {
			return fmt.Errorf("blog post %q: %w", p.Title, err)
		}
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(row scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var thumb sql.NullString
	if err := row.Scan(
		&h.ID, &h.Name, &h.Slug, &h.Tagline, &h.Address, &h.Phone, &h.Email,
		&thumb, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return domain.Hotel{}, err
	}
	h.Thumbnail = nullStr(thumb)
	return h, nil
}

func (r *Repo) GetActiveHotelBySlug(ctx context.Context, slug string) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getActiveHotelBySlugSQL, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) FirstActiveHotel(ctx context.Context) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, firstActiveHotelSQL))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListActiveHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listActiveHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetMainInfo returns nil when the hotel has no main info yet.
func (r *Repo) GetMainInfo(ctx context.Context, hotelID int64) (*domain.MainInfo, error) {
	var mi domain.MainInfo
	err := r.db.QueryRowContext(ctx, getMainInfoSQL, hotelID).
		Scan(&mi.HotelID, &mi.Title, &mi.HighlightedText, &mi.Description, &mi.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mi, nil
}

func (r *Repo) ListSlides(ctx context.Context, hotelID int64) ([]domain.CarouselSlide, error) {
	rows, err := r.db.QueryContext(ctx, listSlidesSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CarouselSlide
	for rows.Next() {
		var s domain.CarouselSlide
		if err := rows.Scan(&s.ID, &s.HotelID, &s.Title, &s.Image, &s.Order, &s.IsActive); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) ListCards(ctx context.Context, hotelID int64, category domain.CardCategory) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, listCardsSQL, hotelID, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Card
	for rows.Next() {
		var c domain.Card
		var cat string
		if err := rows.Scan(
			&c.ID, &c.HotelID, &c.Title, &cat, &c.Image, &c.Description,
			&c.Order, &c.IsActive, &c.ButtonText, &c.ButtonLink,
		); err != nil {
			return nil, err
		}
		c.Category = domain.CardCategory(cat)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) ListRoomTypes(ctx context.Context, hotelID int64) ([]domain.RoomType, error) {
	rows, err := r.db.QueryContext(ctx, listRoomTypesSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomType
	for rows.Next() {
		var rt domain.RoomType
		var price sql.NullFloat64
		if err := rows.Scan(
			&rt.ID, &rt.HotelID, &rt.Name, &rt.Image, &rt.Description,
			&price, &rt.IsAvailable, &rt.Order,
		); err != nil {
			return nil, err
		}
		if price.Valid {
			p := price.Float64
			rt.PricePerNight = &p
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// GetSection returns nil when the hotel has no active section of that type.
func (r *Repo) GetSection(ctx context.Context, hotelID int64, t domain.SectionType) (*domain.SectionContent, error) {
	var s domain.SectionContent
	var typ string
	var images []byte
	err := r.db.QueryRowContext(ctx, getSectionSQL, hotelID, string(t)).Scan(
		&s.ID, &s.HotelID, &typ, &s.Title, &s.Description, &images,
		&s.Button1Text, &s.Button1Link, &s.Button2Text, &s.Button2Link,
		&s.OverlayTitle, &s.OverlayText, &s.OverlayButtonText, &s.OverlayButtonLink, &s.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.Type = domain.SectionType(typ)
	if len(images) > 0 {
		_ = json.Unmarshal(images, &s.Images)
	}
	return &s, nil
}

func (r *Repo) ListFAQs(ctx context.Context, hotelID int64) ([]domain.FAQ, error) {
	rows, err := r.db.QueryContext(ctx, listFAQsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FAQ
	for rows.Next() {
		var f domain.FAQ
		if err := rows.Scan(&f.ID, &f.HotelID, &f.Question, &f.Answer, &f.Order, &f.IsActive); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListBlogPosts returns the newest published posts, at most limit of them.
func (r *Repo) ListBlogPosts(ctx context.Context, hotelID int64, limit int) ([]domain.BlogPost, error) {
	rows, err := r.db.QueryContext(ctx, listBlogPostsSQL, hotelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BlogPost
	for rows.Next() {
		var p domain.BlogPost
		var author sql.NullString
		if err := rows.Scan(
			&p.ID, &p.HotelID, &p.Title, &p.Excerpt, &p.Content, &p.Image,
			&p.Category, &p.PublishedDate, &p.IsPublished, &author,
		); err != nil {
			return nil, err
		}
		p.Author = nullStr(author)
		out = append(out, p)
	}
	return out, rows.Err()
}
