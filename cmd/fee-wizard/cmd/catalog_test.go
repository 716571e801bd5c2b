package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fee-wizard/core/catalog"
	"fee-wizard/core/types"
)

func TestListCatalog(t *testing.T) {
	listings := listCatalog(catalog.MustDefault())
	require.Len(t, listings, 2)

	family := listings[0]
	assert.Equal(t, types.CategoryFamily, family.ID)
	assert.NotContains(t, types.OptionIDs(family.MatterCode2["FAMA"]), "FJOI")
	assert.Contains(t, types.OptionIDs(family.MatterCode2["FAMQ"]), "FJOI")

	immigration := listings[1]
	assert.Equal(t, []string{"IA100"}, types.OptionIDs(immigration.CaseStages["IAXL"]))
}

func TestPrintCatalog(t *testing.T) {
	cat := catalog.MustDefault()
	var buf bytes.Buffer
	require.NoError(t, printCatalog(&buf, listCatalog(cat), cat.LondonRates()))

	out := buf.String()
	assert.Contains(t, out, "family")
	assert.Contains(t, out, "FAMA")
	assert.Contains(t, out, "[london non-london]")
}
