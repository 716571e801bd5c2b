// Package catalog - Reference data for the fee questionnaire
// Holds the valid law categories, matter codes, case stages and London rates.
// All lookups are pure; the catalog is immutable once loaded.
package catalog

import (
	"fee-wizard/core/types"
)

// VAT answers accepted on the VAT page
const (
	VatYes = "yes"
	VatNo  = "no"
)

// MatterCode1 is a matter code 1 entry
type MatterCode1 struct {
	types.Option

	// DefaultCaseStage is used where the journey has no case stage page (immigration)
	DefaultCaseStage string
}

// Restricted is an entry that may apply only to some matter code 1 values
type Restricted struct {
	types.Option

	// MatterCode1 limits the entry; empty means it applies to all
	MatterCode1 []string
}

func (r Restricted) appliesTo(matterCode1 string) bool {
	if len(r.MatterCode1) == 0 {
		return true
	}
	for _, code := range r.MatterCode1 {
		if code == matterCode1 {
			return true
		}
	}
	return false
}

// Category is a law category and the codes that belong to it
type Category struct {
	types.Option
	MatterCode1 []MatterCode1
	MatterCode2 []Restricted
	CaseStages  []Restricted
}

// Catalog is the reference data provider
type Catalog struct {
	categories  []*Category
	byID        map[string]*Category
	londonRates []types.Option
}

// New builds a catalog from categories and London rate options
func New(categories []*Category, londonRates []types.Option) *Catalog {
	c := &Catalog{
		categories:  categories,
		byID:        make(map[string]*Category, len(categories)),
		londonRates: londonRates,
	}
	for _, cat := range categories {
		c.byID[cat.ID] = cat
	}
	return c
}

// Category returns a law category by id
func (c *Catalog) Category(id string) (*Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

// LawCategories lists the law categories
func (c *Catalog) LawCategories() []types.Option {
	out := make([]types.Option, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Option
	}
	return out
}

// MatterCode1 lists the matter code 1 options for a category
func (c *Catalog) MatterCode1(category string) []types.Option {
	cat, ok := c.byID[category]
	if !ok {
		return nil
	}
	out := make([]types.Option, len(cat.MatterCode1))
	for i, m := range cat.MatterCode1 {
		out[i] = m.Option
	}
	return out
}

// MatterCode2 lists the matter code 2 options for a category and matter code 1
func (c *Catalog) MatterCode2(category, matterCode1 string) []types.Option {
	cat, ok := c.byID[category]
	if !ok {
		return nil
	}
	return filter(cat.MatterCode2, matterCode1)
}

// CaseStages lists the case stage options for a category and matter code 1
func (c *Catalog) CaseStages(category, matterCode1 string) []types.Option {
	cat, ok := c.byID[category]
	if !ok {
		return nil
	}
	return filter(cat.CaseStages, matterCode1)
}

// DefaultCaseStage returns the case stage implied by a matter code 1, if any
func (c *Catalog) DefaultCaseStage(category, matterCode1 string) (string, bool) {
	cat, ok := c.byID[category]
	if !ok {
		return "", false
	}
	for _, m := range cat.MatterCode1 {
		if m.ID == matterCode1 && m.DefaultCaseStage != "" {
			return m.DefaultCaseStage, true
		}
	}
	return "", false
}

// LondonRates lists the location options (family only)
func (c *Catalog) LondonRates() []types.Option {
	return c.londonRates
}

// VatOptions lists the VAT answers
func (c *Catalog) VatOptions() []types.Option {
	return []types.Option{
		{ID: VatYes, Description: "Yes"},
		{ID: VatNo, Description: "No"},
	}
}

func filter(entries []Restricted, matterCode1 string) []types.Option {
	var out []types.Option
	for _, e := range entries {
		if e.appliesTo(matterCode1) {
			out = append(out, e.Option)
		}
	}
	return out
}
