package filter

// Request holds the structured filters accompanying a search query.
// Every field is optional; the empty string means "not supplied".
// Gender and Season are hard filters, kept through every retrieval stage.
// The remaining six are soft and eligible for relaxation.
type Request struct {
	Gender         string `json:"gender,omitempty"`
	MasterCategory string `json:"master_category,omitempty"`
	Subcategory    string `json:"subcategory,omitempty"`
	Color          string `json:"color,omitempty"`
	Season         string `json:"season,omitempty"`
	SleeveLength   string `json:"sleeve_length,omitempty"`
	ItemLength     string `json:"item_length,omitempty"`
	Category       string `json:"category,omitempty"`
}

// RelaxSoftDescriptors drops the three most over-specific soft fields
// (subcategory, color, item_length) while keeping the rest.
func (r Request) RelaxSoftDescriptors() Request {
	r.Subcategory = ""
	r.Color = ""
	r.ItemLength = ""
	return r
}

// HardOnly keeps only the hard filters (gender, season).
func (r Request) HardOnly() Request {
	return Request{Gender: r.Gender, Season: r.Season}
}

// IsEmpty reports whether no field is supplied.
func (r Request) IsEmpty() bool {
	return r == Request{}
}
