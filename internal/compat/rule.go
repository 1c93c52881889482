package compat

import "bikeshop/internal/domain"

// Violation is a structured rejection reason. Message is safe to render to an
// end user; Category/Value identify the offending slot when one exists.
type Violation struct {
	Category string `json:"category,omitempty"`
	Value    string `json:"value,omitempty"`
	Message  string `json:"message"`
}

// IncompatiblePart identifies a currently attached part that blocks a product
// type change.
type IncompatiblePart struct {
	PartID      uint   `json:"id"`
	Category    string `json:"category"`
	ProductType string `json:"productType"`
}

// CategoryMap maps each category of an assembly to the value occupying it.
type CategoryMap map[string]string

// BuildCategoryMap derives the category map of a part collection. A valid
// assembly holds one part per category; if the input violates that, the last
// part wins.
func BuildCategoryMap(parts []domain.Part) CategoryMap {
	m := make(CategoryMap, len(parts))
	for _, p := range parts {
		m[p.Category] = p.Value
	}
	return m
}

// Candidate is one proposed assembly state: the product's declared type, the
// category map of the full prospective part set, and the part being added.
// NewPart is nil when no single part is singled out.
type Candidate struct {
	ProductType string
	Categories  CategoryMap
	NewPart     *domain.Part
}

// Rule inspects a candidate assembly and returns nil when it has no
// objection. Rules never mutate anything.
type Rule interface {
	Evaluate(c Candidate) *Violation
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(c Candidate) *Violation

func (f RuleFunc) Evaluate(c Candidate) *Violation {
	return f(c)
}
