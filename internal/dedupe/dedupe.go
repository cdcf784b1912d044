// Package dedupe collapses duplicate listings across source batches using
// normalized phone, address, and website-domain keys.
package dedupe

import (
	"go.uber.org/zap"

	"github.com/sells-group/listings-cli/internal/model"
	"github.com/sells-group/listings-cli/internal/normalize"
)

// minAddressLen guards against matching on addresses too short to be
// meaningful (bare city names, PO box fragments).
const minAddressLen = 15

// Deduper tracks the keys seen during a single pipeline run. The key tables
// map each key to the place ID of the record that introduced it, for
// provenance only — place IDs are never themselves dedup keys.
//
// Matching is greedy and short-circuited, not transitive clustering: a
// record is checked against the phone table, then the address table, then
// the domain table, and is dropped on the first hit. Only survivors register
// keys, so a record dropped on its address never claims its phone or domain
// for the cluster. The result depends solely on input order.
type Deduper struct {
	phones    map[string]string
	addresses map[string]string
	domains   map[string]string
	excluded  map[string]bool
}

// New creates a Deduper. platformDomains are listing-platform hosts
// (social networks, directories) that never count as a business's own
// domain.
func New(platformDomains []string) *Deduper {
	excluded := make(map[string]bool, len(platformDomains))
	for _, d := range platformDomains {
		excluded[d] = true
	}
	return &Deduper{
		phones:    make(map[string]string),
		addresses: make(map[string]string),
		domains:   make(map[string]string),
		excluded:  excluded,
	}
}

// Run scans records strictly in input order and returns the survivors plus
// the number of duplicates dropped.
func (d *Deduper) Run(records []*model.Record) ([]*model.Record, int) {
	var unique []*model.Record
	dupes := 0

	for _, r := range records {
		if d.isDuplicate(r) {
			dupes++
			continue
		}
		unique = append(unique, r)
	}

	if dupes > 0 {
		zap.L().Info("dedupe: removed duplicates",
			zap.Int("input", len(records)),
			zap.Int("duplicates", dupes),
			zap.Int("unique", len(unique)),
		)
	}

	return unique, dupes
}

// isDuplicate resolves the record against the key tables. A match on any
// table drops the record without registering anything; a miss on all three
// registers every key the record contributes.
func (d *Deduper) isDuplicate(r *model.Record) bool {
	phone := normalize.Phone(r.Phone)
	if len(phone) != 10 {
		phone = ""
	}

	addr := normalize.Address(r.Address)
	if len(addr) <= minAddressLen {
		addr = ""
	}

	domain := normalize.Domain(r.Website)
	if d.excluded[domain] {
		domain = ""
	}

	if phone != "" {
		if _, seen := d.phones[phone]; seen {
			return true
		}
	}
	if addr != "" {
		if _, seen := d.addresses[addr]; seen {
			return true
		}
	}
	if domain != "" {
		if _, seen := d.domains[domain]; seen {
			return true
		}
	}

	if phone != "" {
		d.phones[phone] = r.PlaceID
	}
	if addr != "" {
		d.addresses[addr] = r.PlaceID
	}
	if domain != "" {
		d.domains[domain] = r.PlaceID
	}

	return false
}
