package types

// Law categories
const (
	CategoryFamily      = "family"
	CategoryImmigration = "immigration"
)

// Location codes sent as locationCode to the fee API
const (
	LocationLondon    = "london"
	LocationNonLondon = "non-london"

	// LocationNotApplicable is sent for immigration, where location does not affect fees
	LocationNotApplicable = "NA"
)

// Option is one selectable entry of a reference data list
type Option struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// OptionIDs returns the ids of opts in order
func OptionIDs(opts []Option) []string {
	ids := make([]string, len(opts))
	for i, o := range opts {
		ids[i] = o.ID
	}
	return ids
}
