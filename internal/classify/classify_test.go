package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/listings-cli/internal/config"
	"github.com/sells-group/listings-cli/internal/model"
)

func testPolicy() config.Policy {
	return config.Policy{
		BigBoxRetailers:     []string{"home depot", "lowes"},
		NationalChains:      []string{"waste management", "republic services"},
		JunkRemovalBrands:   []string{"junk removal", "1-800-got-junk"},
		NonDumpsterKeywords: []string{"portable toilet", "self storage", "septic"},
	}
}

func valid() *model.Record {
	return &model.Record{
		Name:     "Smith Dumpster Rental",
		Phone:    "(415) 555-0100",
		Address:  "123 Main St, Springfield",
		Website:  "https://smithdumpsters.com",
		Category: "Dumpster rental service",
	}
}

func TestClassifyKeep(t *testing.T) {
	c := New(testPolicy())
	assert.Equal(t, ReasonKeep, c.Classify(valid()))
}

func TestClassifyMissingFields(t *testing.T) {
	c := New(testPolicy())

	t.Run("missing name", func(t *testing.T) {
		r := valid()
		r.Name = ""
		assert.Equal(t, ReasonMissingName, c.Classify(r))
	})

	t.Run("missing contact", func(t *testing.T) {
		r := valid()
		r.Phone = ""
		r.Website = ""
		assert.Equal(t, ReasonMissingContact, c.Classify(r))
	})

	t.Run("phone alone is contact enough", func(t *testing.T) {
		r := valid()
		r.Website = ""
		assert.Equal(t, ReasonKeep, c.Classify(r))
	})

	t.Run("missing address", func(t *testing.T) {
		r := valid()
		r.Address = ""
		assert.Equal(t, ReasonMissingAddress, c.Classify(r))
	})
}

func TestClassifyClosedPermanently(t *testing.T) {
	c := New(testPolicy())
	r := valid()
	r.BusinessStatus = model.StatusClosedPermanently
	assert.Equal(t, ReasonClosedPermanently, c.Classify(r))
}

func TestClassifyKeywordRules(t *testing.T) {
	c := New(testPolicy())

	tests := []struct {
		name   string
		mutate func(*model.Record)
		expect string
	}{
		{
			"big box",
			func(r *model.Record) { r.Name = "The Home Depot #1234" },
			"big_box_retailer:home depot",
		},
		{
			"big box case insensitive",
			func(r *model.Record) { r.Name = "LOWES of Springfield" },
			"big_box_retailer:lowes",
		},
		{
			"national chain",
			func(r *model.Record) { r.Name = "Waste Management of Ohio" },
			"national_chain:waste management",
		},
		{
			"junk removal only",
			func(r *model.Record) {
				r.Name = "1-800-GOT-JUNK? Springfield"
				r.Category = "Junk removal service"
			},
			"junk_removal_only:1-800-got-junk",
		},
		{
			"junk removal with dumpster category kept",
			func(r *model.Record) {
				r.Name = "1-800-GOT-JUNK? Springfield"
				r.Category = "Junk removal, Dumpster rental service"
			},
			ReasonKeep,
		},
		{
			"non dumpster by name",
			func(r *model.Record) { r.Name = "Springfield Self Storage" },
			"non_dumpster:self storage",
		},
		{
			"non dumpster by category",
			func(r *model.Record) { r.Category = "Septic system service" },
			"non_dumpster:septic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)
			assert.Equal(t, tt.expect, c.Classify(r))
		})
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	c := New(testPolicy())

	// Closed status is checked before the keyword rules, so a closed big-box
	// store reports closed_permanently.
	r := valid()
	r.Name = "Home Depot Tool Rental"
	r.BusinessStatus = model.StatusClosedPermanently
	assert.Equal(t, ReasonClosedPermanently, c.Classify(r))

	// Missing name beats everything.
	r = valid()
	r.Name = ""
	r.BusinessStatus = model.StatusClosedPermanently
	assert.Equal(t, ReasonMissingName, c.Classify(r))
}

func TestClassifyEmptyPolicy(t *testing.T) {
	// Empty keyword lists degrade to "reject nothing" for those rules.
	c := New(config.Policy{})

	r := valid()
	r.Name = "Home Depot"
	assert.Equal(t, ReasonKeep, c.Classify(r))
}

func TestClassifyIsTotal(t *testing.T) {
	c := New(testPolicy())
	assert.Equal(t, ReasonMissingName, c.Classify(&model.Record{}))
}
