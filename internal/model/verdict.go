package model

import "strconv"

// Symbolic website check statuses. Numeric HTTP statuses are stored in
// StatusCode with Status left empty.
const (
	CheckStatusNoURL   = "no_url"
	CheckStatusTimeout = "timeout"
)

// WebsiteCheck is the structured outcome of probing a record's website.
type WebsiteCheck struct {
	URL        string `json:"url"`
	Status     string `json:"status,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Reachable  bool   `json:"reachable"`
	FinalURL   string `json:"final_url,omitempty"`
}

// Verdict renders the check as a single verdict string: "reachable",
// "unreachable:404", "unreachable:timeout", "unreachable:no_url", or
// "unreachable:<error-class>".
func (c *WebsiteCheck) Verdict() string {
	if c.Reachable {
		return "reachable"
	}
	if c.Status != "" {
		return "unreachable:" + c.Status
	}
	return "unreachable:" + strconv.Itoa(c.StatusCode)
}
