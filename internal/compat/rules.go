package compat

import "fmt"

const (
	CategoryFrameType = "frameType"
	CategoryWheels    = "wheels"
	CategoryRimColor  = "rimColor"

	ValueFullSuspension = "full-suspension"
	ValueMountainWheels = "mountain wheels"
	ValueFatBikeWheels  = "fat bike wheels"
	ValueRedRim         = "red"
)

// DefaultRules returns the baseline rule set in evaluation order. Homogeneity
// and stock run before the cross-category rules; evaluation stops at the first
// violation.
func DefaultRules() []Rule {
	return []Rule{
		RuleFunc(typeHomogeneity),
		RuleFunc(stockGate),
		RuleFunc(mountainWheelsRequireFullSuspension),
		RuleFunc(fatBikeWheelsExcludeRedRim),
	}
}

// typeHomogeneity rejects a part whose product type differs from the
// product's declared type.
func typeHomogeneity(c Candidate) *Violation {
	if c.NewPart == nil || c.NewPart.ProductType == c.ProductType {
		return nil
	}
	return &Violation{
		Category: c.NewPart.Category,
		Value:    c.NewPart.Value,
		Message:  fmt.Sprintf("Part %s cannot be added to a %s.", c.NewPart.Category, c.ProductType),
	}
}

// stockGate rejects attaching a part that is out of stock. Parts already
// attached are not re-checked; depletion after attach time is accepted.
func stockGate(c Candidate) *Violation {
	if c.NewPart == nil || c.NewPart.Quantity > 0 {
		return nil
	}
	return &Violation{
		Category: c.NewPart.Category,
		Value:    c.NewPart.Value,
		Message:  fmt.Sprintf("Part %s is out of stock.", c.NewPart.Category),
	}
}

func mountainWheelsRequireFullSuspension(c Candidate) *Violation {
	if c.NewPart == nil || c.NewPart.Category != CategoryWheels || c.NewPart.Value != ValueMountainWheels {
		return nil
	}
	if c.Categories[CategoryFrameType] == ValueFullSuspension {
		return nil
	}
	return &Violation{
		Category: CategoryWheels,
		Value:    ValueMountainWheels,
		Message:  "Mountain wheels require a full-suspension frame.",
	}
}

func fatBikeWheelsExcludeRedRim(c Candidate) *Violation {
	if c.NewPart == nil || c.NewPart.Category != CategoryRimColor || c.NewPart.Value != ValueRedRim {
		return nil
	}
	if c.Categories[CategoryWheels] != ValueFatBikeWheels {
		return nil
	}
	return &Violation{
		Category: CategoryRimColor,
		Value:    ValueRedRim,
		Message:  "Fat bike wheels cannot have a red rim color.",
	}
}
