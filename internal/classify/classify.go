// Package classify makes the per-record accept/reject decision. The rules
// form an ordered decision list: they are checked top to bottom and the
// first match wins, so coarser rules lower in the list never shadow the
// specific ones above them.
package classify

import (
	"strings"

	"github.com/sells-group/listings-cli/internal/config"
	"github.com/sells-group/listings-cli/internal/model"
)

// Rejection reason codes. Keyword-driven reasons carry the matched keyword
// after a colon, e.g. "big_box_retailer:home depot".
const (
	ReasonKeep              = "keep"
	ReasonMissingName       = "missing_name"
	ReasonMissingContact    = "missing_contact"
	ReasonMissingAddress    = "missing_address"
	ReasonClosedPermanently = "closed_permanently"
	ReasonBigBoxRetailer    = "big_box_retailer"
	ReasonNationalChain     = "national_chain"
	ReasonJunkRemovalOnly   = "junk_removal_only"
	ReasonNonDumpster       = "non_dumpster"
)

// Classifier applies the rejection rules using an immutable policy.
type Classifier struct {
	bigBox            []string
	nationalChains    []string
	junkRemovalBrands []string
	nonDumpster       []string
}

// New creates a Classifier from the given policy. The lists are copied so
// later mutation of the config cannot change classification behavior.
func New(policy config.Policy) *Classifier {
	return &Classifier{
		bigBox:            lowerAll(policy.BigBoxRetailers),
		nationalChains:    lowerAll(policy.NationalChains),
		junkRemovalBrands: lowerAll(policy.JunkRemovalBrands),
		nonDumpster:       lowerAll(policy.NonDumpsterKeywords),
	}
}

// Classify returns exactly one reason code for the record. ReasonKeep means
// the record survives. Pure: the record is never modified.
func (c *Classifier) Classify(r *model.Record) string {
	name := strings.ToLower(r.Name)
	category := strings.ToLower(r.Category)

	if r.Name == "" {
		return ReasonMissingName
	}
	if !r.HasContact() {
		return ReasonMissingContact
	}
	if r.Address == "" {
		return ReasonMissingAddress
	}

	if r.BusinessStatus == model.StatusClosedPermanently {
		return ReasonClosedPermanently
	}

	if kw := firstMatch(name, c.bigBox); kw != "" {
		return ReasonBigBoxRetailer + ":" + kw
	}

	if kw := firstMatch(name, c.nationalChains); kw != "" {
		return ReasonNationalChain + ":" + kw
	}

	// Junk-removal-only operations masquerade under the same categories;
	// a category that also mentions dumpsters stays in.
	if strings.Contains(category, "junk removal") && !strings.Contains(category, "dumpster") {
		if kw := firstMatch(name, c.junkRemovalBrands); kw != "" {
			return ReasonJunkRemovalOnly + ":" + kw
		}
	}

	for _, kw := range c.nonDumpster {
		if strings.Contains(name, kw) || strings.Contains(category, kw) {
			return ReasonNonDumpster + ":" + kw
		}
	}

	return ReasonKeep
}

// firstMatch returns the first keyword contained in s, or "".
func firstMatch(s string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return kw
		}
	}
	return ""
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
