package filter

import "testing"

func TestAnd_DropsZeroOperands(t *testing.T) {
	p := And(Predicate{}, Eq("color", "red"), Predicate{})
	if !p.IsEq() {
		t.Fatalf("expected the single non-zero operand, got %s", p)
	}
}

func TestAnd_Empty(t *testing.T) {
	if !And().IsZero() {
		t.Fatal("And with no operands should be zero")
	}
	if !Or(Predicate{}, Predicate{}).IsZero() {
		t.Fatal("Or of zero operands should be zero")
	}
}

func TestPredicate_String(t *testing.T) {
	p := And(Or(Eq("gender", "female"), Eq("gender", "unisex")), Eq("season", "summer"))
	want := "((gender=female OR gender=unisex) AND season=summer)"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (Predicate{}).String(); got != "*" {
		t.Errorf("zero String() = %q, want *", got)
	}
}

func TestRequest_StageSubsets(t *testing.T) {
	full := Request{
		Gender:         "female",
		MasterCategory: "top",
		Subcategory:    "shirt",
		Color:          "red",
		Season:         "summer",
		SleeveLength:   "full sleeve",
		ItemLength:     "midi",
		Category:       "shirts",
	}

	relaxed := full.RelaxSoftDescriptors()
	if relaxed.Subcategory != "" || relaxed.Color != "" || relaxed.ItemLength != "" {
		t.Errorf("relaxed stage must drop subcategory, color, item_length: %+v", relaxed)
	}
	if relaxed.Gender != "female" || relaxed.MasterCategory != "top" ||
		relaxed.Season != "summer" || relaxed.SleeveLength != "full sleeve" ||
		relaxed.Category != "shirts" {
		t.Errorf("relaxed stage dropped too much: %+v", relaxed)
	}

	hard := full.HardOnly()
	if hard != (Request{Gender: "female", Season: "summer"}) {
		t.Errorf("hard stage must keep only gender and season: %+v", hard)
	}
}
