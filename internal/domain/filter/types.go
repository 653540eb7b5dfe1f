// Package filter provides a typed query predicate DSL.
// Repositories translate Items into SQL; domain code never builds SQL itself.
package filter

// ComparisonType defines the comparison kinds.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	Less           ComparisonType = "lt"
	Greater        ComparisonType = "gt"
	LessOrEqual    ComparisonType = "lte"
	GreaterOrEqual ComparisonType = "gte"
	InList         ComparisonType = "in"
	NotInList      ComparisonType = "nin"
	Between        ComparisonType = "between" // closed interval, Value is Range
	Contains       ComparisonType = "contains"
	NotContains    ComparisonType = "ncontains"

	// Hierarchical filters (group or any of its subgroups)
	InHierarchy    ComparisonType = "in_hierarchy"
	NotInHierarchy ComparisonType = "nin_hierarchy"

	IsNull    ComparisonType = "null"
	IsNotNull ComparisonType = "not_null"
)

// Item represents a single selection predicate.
type Item struct {
	Field    string         `json:"field"`    // column name (snake_case)
	Operator ComparisonType `json:"operator"` // comparison kind
	Value    any            `json:"value"`    // value (scalar, slice of IDs, or Range)
}

// Range is the value for Between: From <= field <= To.
type Range struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// --- Constructors ---

// WhereEquals builds an equality predicate.
func WhereEquals(field string, value any) Item {
	return Item{Field: field, Operator: Equal, Value: value}
}

// WhereIn builds a set-membership predicate.
func WhereIn(field string, values any) Item {
	return Item{Field: field, Operator: InList, Value: values}
}

// WhereBetween builds a closed-interval predicate.
func WhereBetween(field string, from, to any) Item {
	return Item{Field: field, Operator: Between, Value: Range{From: from, To: to}}
}

// WhereLess builds a strict less-than predicate.
func WhereLess(field string, value any) Item {
	return Item{Field: field, Operator: Less, Value: value}
}

// WhereLessOrEqual builds a less-or-equal predicate.
func WhereLessOrEqual(field string, value any) Item {
	return Item{Field: field, Operator: LessOrEqual, Value: value}
}

// WhereGreaterOrEqual builds a greater-or-equal predicate.
func WhereGreaterOrEqual(field string, value any) Item {
	return Item{Field: field, Operator: GreaterOrEqual, Value: value}
}
