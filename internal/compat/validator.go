package compat

import "bikeshop/internal/domain"

// Validator decides whether a combination of parts is legal for a custom
// product. It is pure: it reads the snapshots it is given and returns a
// verdict, never touching the catalog or the aggregate.
type Validator struct {
	rules []Rule
}

// NewValidator builds a validator over the given ordered rule list. With no
// rules it falls back to DefaultRules.
func NewValidator(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Validator{rules: rules}
}

// ValidateAttach checks whether newPart may join the product's current part
// set. The category map covers the union of the existing parts and newPart.
// Returns nil when the attach is safe.
func (v *Validator) ValidateAttach(product domain.CustomProduct, newPart domain.Part) *Violation {
	all := make([]domain.Part, 0, len(product.Parts)+1)
	all = append(all, product.Parts...)
	all = append(all, newPart)

	return v.evaluate(Candidate{
		ProductType: product.ProductType,
		Categories:  BuildCategoryMap(all),
		NewPart:     &newPart,
	})
}

// ValidateReplaceAll checks a total replacement of the product's part set.
// Each candidate part is evaluated, in iteration order, against the category
// map of the candidate set alone; the old parts play no role. The first
// violation found is returned.
func (v *Validator) ValidateReplaceAll(product domain.CustomProduct, candidateParts []domain.Part) *Violation {
	categories := BuildCategoryMap(candidateParts)

	for i := range candidateParts {
		violation := v.evaluate(Candidate{
			ProductType: product.ProductType,
			Categories:  categories,
			NewPart:     &candidateParts[i],
		})
		if violation != nil {
			return violation
		}
	}
	return nil
}

// ValidateTypeChange returns every attached part whose product type differs
// from newType. A nil result means the type change is permitted; a non-empty
// result means the caller must reject the whole change.
func (v *Validator) ValidateTypeChange(parts []domain.Part, newType string) []IncompatiblePart {
	var incompatible []IncompatiblePart
	for _, p := range parts {
		if p.ProductType != newType {
			incompatible = append(incompatible, IncompatiblePart{
				PartID:      p.ID,
				Category:    p.Category,
				ProductType: p.ProductType,
			})
		}
	}
	return incompatible
}

func (v *Validator) evaluate(c Candidate) *Violation {
	for _, rule := range v.rules {
		if violation := rule.Evaluate(c); violation != nil {
			return violation
		}
	}
	return nil
}
