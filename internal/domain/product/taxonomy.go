package product

// NotApplicable marks a field that is not meaningful for an item type
// (e.g. sleeve_length on footwear). It is catalog data, not a filterable value.
const NotApplicable = "n/a"

// AllSeason is the pseudo-season matching any concrete season.
const AllSeason = "all-season"

var genders = set("male", "female", "unisex")

var masterCategories = set(
	"top", "bottom", "accessory", "footwear", "top & foot combined",
)

var subcategories = set(
	"shirt", "t-shirt", "polo shirt", "dress", "gown", "shorts", "jeans",
	"sweater", "top", "flats", "heels", "sneakers", "boots", "sandals",
	"jewelry", "bag", "hat", "scarf", "belt", "sunglasses", NotApplicable,
)

var seasons = set("summer", "winter", "spring", "fall", AllSeason)

var sleeveLengths = set(
	"full sleeve", "half sleeve", "quarter sleeve", "sleeveless", "strapless",
	NotApplicable,
)

var itemLengths = set(
	"mini", "short", "knee-length", "midi", "maxi", "full length", NotApplicable,
)

var categories = set(
	"dresses", "shirts", "jeans", "tops", "footwear", "accessories",
	"sweaters", "shorts", "pants",
)

// ValidGender reports whether v (already lowercased) is a known gender.
func ValidGender(v string) bool { return has(genders, v) }

// ValidMasterCategory reports whether v is a known master category.
func ValidMasterCategory(v string) bool { return has(masterCategories, v) }

// ValidSubcategory reports whether v is a known subcategory.
func ValidSubcategory(v string) bool { return has(subcategories, v) }

// ValidSeason reports whether v is a known season (including all-season).
func ValidSeason(v string) bool { return has(seasons, v) }

// ValidSleeveLength reports whether v is a known sleeve length.
func ValidSleeveLength(v string) bool { return has(sleeveLengths, v) }

// ValidItemLength reports whether v is a known item length.
func ValidItemLength(v string) bool { return has(itemLengths, v) }

// ValidCategory reports whether v is a known category.
func ValidCategory(v string) bool { return has(categories, v) }

// ConcreteSeasons returns every season value except the all-season pseudo-value.
func ConcreteSeasons() []string {
	return []string{"summer", "winter", "spring", "fall"}
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func has(m map[string]struct{}, v string) bool {
	_, ok := m[v]
	return ok
}
