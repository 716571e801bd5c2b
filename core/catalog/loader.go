package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

//go:embed catalog.hcl
var builtinCatalog []byte

type catalogFile struct {
	LawCategories []categoryBlock `hcl:"law_category,block"`
	LondonRates   []optionBlock   `hcl:"london_rate,block"`
}

type categoryBlock struct {
	ID          string             `hcl:"id,label"`
	Description string             `hcl:"description"`
	MatterCode1 []matterCode1Block `hcl:"matter_code_1,block"`
	MatterCode2 []restrictedBlock  `hcl:"matter_code_2,block"`
	CaseStages  []restrictedBlock  `hcl:"case_stage,block"`
}

type optionBlock struct {
	ID          string `hcl:"id,label"`
	Description string `hcl:"description"`
}

type matterCode1Block struct {
	ID               string `hcl:"id,label"`
	Description      string `hcl:"description"`
	DefaultCaseStage string `hcl:"default_case_stage,optional"`
}

type restrictedBlock struct {
	ID          string   `hcl:"id,label"`
	Description string   `hcl:"description"`
	MatterCode1 []string `hcl:"matter_code_1,optional"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse("catalog.hcl", builtinCatalog)
	})
	return defaultCatalog, defaultErr
}

// MustDefault returns the built-in catalog and panics if it is broken
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog from an HCL file; an empty path yields the built-in catalog
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "read catalog", err)
	}
	return Parse(filepath.Base(path), src)
}

// Parse decodes HCL catalog source and validates it
func Parse(filename string, src []byte) (*Catalog, error) {
	var file catalogFile
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "decode catalog %s", filename)
	}

	categories := make([]*Category, 0, len(file.LawCategories))
	for _, block := range file.LawCategories {
		cat := &Category{Option: types.Option{ID: block.ID, Description: block.Description}}
		for _, m := range block.MatterCode1 {
			cat.MatterCode1 = append(cat.MatterCode1, MatterCode1{
				Option:           types.Option{ID: m.ID, Description: m.Description},
				DefaultCaseStage: m.DefaultCaseStage,
			})
		}
		cat.MatterCode2 = toRestricted(block.MatterCode2)
		cat.CaseStages = toRestricted(block.CaseStages)
		categories = append(categories, cat)
	}

	rates := make([]types.Option, 0, len(file.LondonRates))
	for _, r := range file.LondonRates {
		rates = append(rates, types.Option{ID: r.ID, Description: r.Description})
	}

	c := New(categories, rates)
	if problems := c.Validate(DefaultValidationRules()); len(problems) > 0 {
		return nil, errors.Wrapf(errors.TypeConfig, problems[0], "catalog %s has %d problem(s)", filename, len(problems))
	}
	return c, nil
}

func toRestricted(blocks []restrictedBlock) []Restricted {
	out := make([]Restricted, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, Restricted{
			Option:      types.Option{ID: b.ID, Description: b.Description},
			MatterCode1: b.MatterCode1,
		})
	}
	return out
}
