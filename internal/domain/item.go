package domain

import "errors"

// ErrItemRequired is returned when a create request carries an empty item value.
var ErrItemRequired = errors.New("item is required")

// Item represents one tracked input string plus its display metadata.
type Item struct {
	// ID is the store-assigned identifier, immutable after insertion.
	ID int64 `json:"id"`

	// Item is the value originally submitted (typically a URL). Immutable.
	Item string `json:"item"`

	// Title is the display title. It starts as a copy of Item and may be
	// overwritten once by the enrichment job.
	Title string `json:"title"`

	// Favicon is the absolute favicon URL, nil until enrichment sets it.
	Favicon *string `json:"favicon"`

	// CreatedAt is assigned at insertion and is the sole ordering key.
	CreatedAt string `json:"createdAt"`
}

// Metadata is the result of a page fetch: a display title and, optionally,
// a favicon URL. An empty Favicon means none was found.
type Metadata struct {
	Title   string
	Favicon string
}
