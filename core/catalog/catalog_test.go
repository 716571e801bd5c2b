package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

func TestBuiltinCatalogLoads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"family", "immigration"}, types.OptionIDs(c.LawCategories()))
	assert.Equal(t, []string{"london", "non-london"}, types.OptionIDs(c.LondonRates()))
	assert.Equal(t, []string{"yes", "no"}, types.OptionIDs(c.VatOptions()))
}

func TestRestrictedEntriesFollowMatterCode1(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		name        string
		matterCode1 string
		wantStages  []string
		wantCode2   []string
	}{
		{
			name:        "divorce gets only unrestricted stages",
			matterCode1: "FAMA",
			wantStages:  []string{"FPL01", "FPL02"},
			wantCode2:   []string{"FPET", "FRES"},
		},
		{
			name:        "private law children gets its own stages",
			matterCode1: "FAMQ",
			wantStages:  []string{"FPL01", "FPL02", "FPL03", "FPL05"},
			wantCode2:   []string{"FPET", "FRES", "FJOI"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStages, types.OptionIDs(c.CaseStages("family", tt.matterCode1)))
			assert.Equal(t, tt.wantCode2, types.OptionIDs(c.MatterCode2("family", tt.matterCode1)))
		})
	}
}

func TestDefaultCaseStage(t *testing.T) {
	c := MustDefault()

	stage, ok := c.DefaultCaseStage("immigration", "IAXL")
	assert.True(t, ok)
	assert.Equal(t, "IA100", stage)

	_, ok = c.DefaultCaseStage("family", "FAMA")
	assert.False(t, ok)

	_, ok = c.DefaultCaseStage("tax", "IAXL")
	assert.False(t, ok)
}

func TestUnknownCategoryHasNoOptions(t *testing.T) {
	c := MustDefault()
	assert.Empty(t, c.MatterCode1("criminal"))
	assert.Empty(t, c.MatterCode2("criminal", ""))
	assert.Empty(t, c.CaseStages("criminal", ""))
}

func TestParseRejectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "restriction to unknown matter code",
			src: `
law_category "family" {
  description = "Family"
  matter_code_1 "FAMA" { description = "Divorce" }
  case_stage "FPL01" {
    description   = "Level 1"
    matter_code_1 = ["NOPE"]
  }
}
london_rate "london" { description = "London" }
`,
		},
		{
			name: "immigration matter code without default case stage",
			src: `
law_category "immigration" {
  description = "Immigration"
  matter_code_1 "IAXL" { description = "Asylum" }
  case_stage "IA100" { description = "Legal help" }
}
london_rate "london" { description = "London" }
`,
		},
		{
			name: "duplicate case stage",
			src: `
law_category "family" {
  description = "Family"
  case_stage "FPL01" { description = "a" }
  case_stage "FPL01" { description = "b" }
}
london_rate "london" { description = "London" }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.hcl", []byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig))
		})
	}
}

func TestLoadFileOverridesBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	src := `
law_category "family" {
  description = "Family"
  matter_code_1 "FAMZ" { description = "Test matter" }
  matter_code_2 "FPET" { description = "Petitioner" }
  case_stage "FPL99" { description = "Test stage" }
}
london_rate "london" { description = "London" }
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"FAMZ"}, types.OptionIDs(c.MatterCode1("family")))
	assert.Equal(t, []string{"FPL99"}, types.OptionIDs(c.CaseStages("family", "FAMZ")))
}
