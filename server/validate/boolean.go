package validate

// BooleanType validates boolean field values. It takes no options.
type BooleanType struct{}

// TypeName returns "boolean".
func (BooleanType) TypeName() string {
	return "boolean"
}

// AllowChildren reports that boolean fields carry no nested fields.
func (BooleanType) AllowChildren() bool {
	return false
}

// Validate checks that the value is a boolean.
func (BooleanType) Validate(opts map[string]any, value any, errs *[]string) bool {
	if _, ok := value.(bool); !ok {
		*errs = append(*errs, "The field must be a boolean.")
		return false
	}
	return true
}

// ValidateFieldSpecification rejects any option.
func (BooleanType) ValidateFieldSpecification(opts map[string]any) (map[string]any, error) {
	if len(opts) != 0 {
		return nil, SpecError("The boolean type does not take options")
	}
	return opts, nil
}

func init() {
	Register(BooleanType{})
}
