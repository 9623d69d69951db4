package validate

// NumericType validates numeric field values with an optional inclusive
// range constraint.
type NumericType struct{}

// TypeName returns "numeric".
func (NumericType) TypeName() string {
	return "numeric"
}

// AllowChildren reports that numeric fields carry no nested fields.
func (NumericType) AllowChildren() bool {
	return false
}

// Validate checks that the value is a number within the configured range.
func (NumericType) Validate(opts map[string]any, value any, errs *[]string) bool {
	num, ok := asNumber(value)
	if !ok {
		*errs = append(*errs, "The field must be a number.")
		return false
	}

	if rng, ok := opts["range"].(map[string]any); ok {
		if min, ok := asNumber(rng["min"]); ok && num < min {
			*errs = append(*errs, "The value is lesser than the minimum.")
			return false
		}
		if max, ok := asNumber(rng["max"]); ok && num > max {
			*errs = append(*errs, "The value is greater than the maximum.")
			return false
		}
	}

	return true
}

// ValidateFieldSpecification checks the optional "range" option: an object
// with numeric "min" and/or "max", min not exceeding max.
func (NumericType) ValidateFieldSpecification(opts map[string]any) (map[string]any, error) {
	raw, present := opts["range"]
	if !present {
		if len(opts) != 0 {
			return nil, SpecError("Unrecognized option in numeric specification")
		}
		return opts, nil
	}

	rng, ok := raw.(map[string]any)
	if !ok {
		return nil, SpecError("Invalid \"range\" option definition")
	}

	for key := range rng {
		if key != "min" && key != "max" {
			return nil, SpecError("Invalid \"range\" option definition")
		}
	}

	min, hasMin := rng["min"]
	if hasMin {
		if _, ok = asNumber(min); !ok {
			return nil, SpecError("Invalid \"range.min\" option: must be of type \"number\"")
		}
	}
	max, hasMax := rng["max"]
	if hasMax {
		if _, ok = asNumber(max); !ok {
			return nil, SpecError("Invalid \"range.max\" option: must be of type \"number\"")
		}
	}

	if hasMin && hasMax {
		minVal, _ := asNumber(min)
		maxVal, _ := asNumber(max)
		if minVal > maxVal {
			return nil, SpecError("Invalid range: min > max")
		}
	}

	return opts, nil
}

// asNumber converts JSON-decoded numeric forms to float64.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func init() {
	Register(NumericType{})
}
