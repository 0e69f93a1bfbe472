package filter

import (
	"strings"

	"github.com/stylora/apparel-search/internal/domain/product"
)

// Compile translates a Request into a store predicate. Values are
// case-normalized; unknown or sentinel values are silently dropped so a
// malformed structured filter never blocks retrieval — semantic search
// compensates for it. An all-invalid or empty request compiles to the zero
// Predicate (unrestricted search).
func Compile(req Request) Predicate {
	var parts []Predicate

	if p := compileGender(req.Gender); !p.IsZero() {
		parts = append(parts, p)
	}
	if v := norm(req.MasterCategory); product.ValidMasterCategory(v) {
		parts = append(parts, Eq("master_category", v))
	}
	if v := norm(req.Category); product.ValidCategory(v) {
		parts = append(parts, Eq("category", v))
	}
	if v := norm(req.Subcategory); product.ValidSubcategory(v) && v != product.NotApplicable {
		parts = append(parts, Eq("subcategory", v))
	}
	if v := norm(req.Color); v != "" {
		parts = append(parts, Eq("color", v))
	}
	if p := compileSeason(req.Season); !p.IsZero() {
		parts = append(parts, p)
	}
	if v := norm(req.SleeveLength); product.ValidSleeveLength(v) && v != product.NotApplicable {
		parts = append(parts, Eq("sleeve_length", v))
	}
	if v := norm(req.ItemLength); product.ValidItemLength(v) && v != product.NotApplicable {
		parts = append(parts, Eq("item_length", v))
	}

	return And(parts...)
}

// compileGender maps male/female to an OR with unisex: unisex items qualify
// for either binary gender. Requesting unisex matches unisex only.
func compileGender(raw string) Predicate {
	v := norm(raw)
	switch v {
	case "male", "female":
		return Or(Eq("gender", v), Eq("gender", "unisex"))
	case "unisex":
		return Eq("gender", "unisex")
	default:
		return Predicate{}
	}
}

// compileSeason expands all-season into a disjunction over the concrete
// seasons; the pseudo-value itself never appears in the predicate.
func compileSeason(raw string) Predicate {
	v := norm(raw)
	if !product.ValidSeason(v) {
		return Predicate{}
	}
	if v == product.AllSeason {
		concrete := product.ConcreteSeasons()
		parts := make([]Predicate, len(concrete))
		for i, s := range concrete {
			parts[i] = Eq("season", s)
		}
		return Or(parts...)
	}
	return Eq("season", v)
}

func norm(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
