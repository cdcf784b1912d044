package model

// BusinessStatus values as reported by the directory source.
const (
	StatusOperational       = "OPERATIONAL"
	StatusClosedPermanently = "CLOSED_PERMANENTLY"
)

// Record is one candidate business listing as pulled from a directory
// source. Fields the source did not report are zero-valued; a missing field
// is a classification outcome, never an error.
type Record struct {
	PlaceID        string  `json:"place_id,omitempty"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone,omitempty"`
	Address        string  `json:"address,omitempty"`
	Website        string  `json:"website,omitempty"`
	Category       string  `json:"category,omitempty"`
	Subtypes       string  `json:"subtypes,omitempty"`
	BusinessStatus string  `json:"business_status,omitempty"`
	Verified       bool    `json:"verified,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	Reviews        int     `json:"reviews,omitempty"`
	PhotosCount    int     `json:"photos_count,omitempty"`
	City           string  `json:"city,omitempty"`
	State          string  `json:"state,omitempty"`
	PostalCode     string  `json:"postal_code,omitempty"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`

	// Annotations added by the pipeline. Underscore-prefixed keys keep them
	// visually separate from source fields in exported JSON.
	QualityScore float64       `json:"_quality_score,omitempty"`
	SourceState  string        `json:"_source_state,omitempty"`
	WebsiteCheck *WebsiteCheck `json:"_website_check,omitempty"`
}

// HasContact reports whether the record carries at least one contact channel.
func (r *Record) HasContact() bool {
	return r.Phone != "" || r.Website != ""
}
