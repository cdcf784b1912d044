package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{"+1 (415) 555-0100", "4155550100"},
		{"(415) 555-0100", "4155550100"},
		{"415.555.0100", "4155550100"},
		{"14155550100", "4155550100"},
		{"555-0100", "5550100"}, // too short, returned verbatim
		{"+44 20 7946 0958", "442079460958"},
		{"", ""},
		{"no digits here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expect, Phone(tt.in))
		})
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{"123 Main St", "123 main street"},
		{"123 Main St.", "123 main street."},
		{"500 Oak Rd", "500 oak road"},
		{"1 Fifth Ave", "1 fifth avenue"},
		{"9 Sunset Blvd", "9 sunset boulevard"},
		{"77 Creek Dr", "77 creek drive"},
		{"  42   Elm   St  ", "42 elm street"},
		// Word boundary: embedded abbreviations stay put.
		{"Stone Street", "stone street"},
		{"Strand Plaza", "strand plaza"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expect, Address(tt.in))
		})
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{"https://www.example.com/contact", "example.com"},
		{"http://example.com", "example.com"},
		{"https://Example.COM/About/", "example.com"},
		{"www.example.com", "example.com"},
		{"example.com/path", "example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expect, Domain(tt.in))
		})
	}
}
