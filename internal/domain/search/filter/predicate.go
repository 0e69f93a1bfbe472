// Package filter compiles structured filter requests into boolean predicate
// trees the catalog store can push down alongside vector similarity search.
package filter

import "strings"

type kind int

const (
	kindNone kind = iota
	kindEq
	kindAnd
	kindOr
)

// Predicate is an immutable boolean expression over metadata fields:
// equality leaves combined with And/Or nodes. The zero value means
// "no predicate" (unrestricted search).
type Predicate struct {
	kind     kind
	field    string
	value    string
	children []Predicate
}

// Eq creates an exact-equality leaf.
func Eq(field, value string) Predicate {
	return Predicate{kind: kindEq, field: field, value: value}
}

// And combines predicates conjunctively. Zero-value operands are dropped;
// a single remaining operand is returned as-is.
func And(ps ...Predicate) Predicate {
	return combine(kindAnd, ps)
}

// Or combines predicates disjunctively. Zero-value operands are dropped;
// a single remaining operand is returned as-is.
func Or(ps ...Predicate) Predicate {
	return combine(kindOr, ps)
}

func combine(k kind, ps []Predicate) Predicate {
	kept := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		if !p.IsZero() {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return Predicate{}
	case 1:
		return kept[0]
	default:
		return Predicate{kind: k, children: kept}
	}
}

// IsZero reports whether the predicate is empty (unrestricted).
func (p Predicate) IsZero() bool { return p.kind == kindNone }

// IsEq reports whether the predicate is an equality leaf.
func (p Predicate) IsEq() bool { return p.kind == kindEq }

// IsAnd reports whether the predicate is a conjunction node.
func (p Predicate) IsAnd() bool { return p.kind == kindAnd }

// IsOr reports whether the predicate is a disjunction node.
func (p Predicate) IsOr() bool { return p.kind == kindOr }

// Field returns the field name of an equality leaf.
func (p Predicate) Field() string { return p.field }

// Value returns the match value of an equality leaf.
func (p Predicate) Value() string { return p.value }

// Children returns the operands of an And/Or node.
func (p Predicate) Children() []Predicate { return p.children }

// String returns a debug representation, e.g.
// "((gender=female OR gender=unisex) AND season=summer)".
func (p Predicate) String() string {
	switch p.kind {
	case kindEq:
		return p.field + "=" + p.value
	case kindAnd:
		return "(" + joinChildren(p.children, " AND ") + ")"
	case kindOr:
		return "(" + joinChildren(p.children, " OR ") + ")"
	default:
		return "*"
	}
}

func joinChildren(ps []Predicate, sep string) string {
	parts := make([]string, len(ps))
	for i, c := range ps {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}
