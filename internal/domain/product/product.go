// Package product defines the immutable catalog record and its taxonomy.
package product

// Record is a single catalog entry. Created once during ingestion and never
// mutated by the search path. List-valued tag fields are serialized as
// comma-joined strings on write because store metadata values must be scalars.
type Record struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	Price            float64  `json:"price"`
	ImageURL         string   `json:"image_url"`
	ProductURL       string   `json:"product_url"`
	Category         string   `json:"category"`
	Gender           string   `json:"gender"`
	MasterCategory   string   `json:"master_category"`
	Subcategory      string   `json:"subcategory"`
	Season           string   `json:"season"`
	SleeveLength     string   `json:"sleeve_length"`
	ItemLength       string   `json:"item_length"`
	Color            string   `json:"color"`
	OccasionTags     []string `json:"occasion_tags,omitempty"`
	StyleTags        []string `json:"style_tags,omitempty"`
}

// EmbeddingText returns the text a record is embedded from.
func (r Record) EmbeddingText() string {
	return r.Name + ". " + r.ShortDescription
}
