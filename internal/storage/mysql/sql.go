package mysql

// LAST_INSERT_ID(id) makes LastInsertId report the existing row on update.
const upsertHotelSQL = `
INSERT INTO hotels
  (name, slug, tagline, address, phone, email, thumbnail, is_active)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  id         = LAST_INSERT_ID(id),
  name       = VALUES(name),
  tagline    = VALUES(tagline),
  address    = VALUES(address),
  phone      = VALUES(phone),
  email      = VALUES(email),
  thumbnail  = VALUES(thumbnail),
  is_active  = VALUES(is_active),
  updated_at = CURRENT_TIMESTAMP
`

const upsertMainInfoSQL = `
INSERT INTO main_info (hotel_id, title, highlighted_text, description)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title            = VALUES(title),
  highlighted_text = VALUES(highlighted_text),
  description      = VALUES(description)
`

const deleteMainInfoSQL = `DELETE FROM main_info WHERE hotel_id = ?`

// Child tables replaced wholesale on every seed.
var childTables = []string{"carousel_slides", "cards", "room_types", "section_contents", "faqs", "blog_posts"}

const insertSlideSQL = `
INSERT INTO carousel_slides (hotel_id, title, image, sort_order, is_active)
VALUES (?, ?, ?, ?, ?)
`

const insertCardSQL = `
INSERT INTO cards (hotel_id, title, category, image, description, sort_order, is_active, button_text, button_link)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertRoomTypeSQL = `
INSERT INTO room_types (hotel_id, name, image, description, price_per_night, is_available, sort_order)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const insertSectionSQL = `
INSERT INTO section_contents
  (hotel_id, section_type, title, description, images,
   button1_text, button1_link, button2_text, button2_link,
   overlay_title, overlay_text, overlay_button_text, overlay_button_link, is_active)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertFAQSQL = `
INSERT INTO faqs (hotel_id, question, answer, sort_order, is_active)
VALUES (?, ?, ?, ?, ?)
`

const insertBlogPostSQL = `
INSERT INTO blog_posts (hotel_id, title, excerpt, content, image, category, published_date, is_published, author)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const hotelColumns = `id, name, slug, tagline, address, phone, email, thumbnail, is_active, created_at, updated_at`

const getActiveHotelBySlugSQL = `
SELECT ` + hotelColumns + `
FROM hotels
WHERE slug = ? AND is_active = 1
`

// The fallback hotel is the active one with the lowest id.
const firstActiveHotelSQL = `
SELECT ` + hotelColumns + `
FROM hotels
WHERE is_active = 1
ORDER BY id
LIMIT 1
`

const listActiveHotelsSQL = `
SELECT ` + hotelColumns + `
FROM hotels
WHERE is_active = 1
ORDER BY id
`

const getMainInfoSQL = `
SELECT hotel_id, title, highlighted_text, description, updated_at
FROM main_info
WHERE hotel_id = ?
`

const listSlidesSQL = `
SELECT id, hotel_id, title, image, sort_order, is_active
FROM carousel_slides
WHERE hotel_id = ? AND is_active = 1
ORDER BY sort_order, id
`

const listCardsSQL = `
SELECT id, hotel_id, title, category, image, COALESCE(description, ''), sort_order, is_active, button_text, button_link
FROM cards
WHERE hotel_id = ? AND category = ? AND is_active = 1
ORDER BY sort_order, id
`

const listRoomTypesSQL = `
SELECT id, hotel_id, name, image, COALESCE(description, ''), price_per_night, is_available, sort_order
FROM room_types
WHERE hotel_id = ? AND is_available = 1
ORDER BY sort_order, id
`

const getSectionSQL = `
SELECT id, hotel_id, section_type, title, description, images,
       button1_text, button1_link, button2_text, button2_link,
       overlay_title, COALESCE(overlay_text, ''), overlay_button_text, overlay_button_link, is_active
FROM section_contents
WHERE hotel_id = ? AND section_type = ? AND is_active = 1
`

const listFAQsSQL = `
SELECT id, hotel_id, question, answer, sort_order, is_active
FROM faqs
WHERE hotel_id = ? AND is_active = 1
ORDER BY sort_order, id
`

const listBlogPostsSQL = `
SELECT id, hotel_id, title, excerpt, content, image, category, published_date, is_published, author
FROM blog_posts
WHERE hotel_id = ? AND is_published = 1
ORDER BY published_date DESC, id DESC
LIMIT ?
`
