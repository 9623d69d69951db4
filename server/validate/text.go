package validate

import (
	"fmt"
	"regexp"

	"github.com/rivo/uniseg"
)

// TextType validates string field values with optional length and pattern
// constraints. Lengths are counted in grapheme clusters, not bytes, so a
// flag emoji counts as one character.
type TextType struct{}

// TypeName returns "text".
func (TextType) TypeName() string {
	return "text"
}

// AllowChildren reports that text fields carry no nested fields.
func (TextType) AllowChildren() bool {
	return false
}

// Validate checks that the value is a string satisfying the length and
// pattern options.
func (TextType) Validate(opts map[string]any, value any, errs *[]string) bool {
	str, ok := value.(string)
	if !ok {
		*errs = append(*errs, "The field must be a string.")
		return false
	}

	if length, ok := opts["length"].(map[string]any); ok {
		count := uniseg.GraphemeClusterCount(str)
		if min, ok := asNumber(length["min"]); ok && float64(count) < min {
			*errs = append(*errs, "The string is shorter than the minimum length.")
			return false
		}
		if max, ok := asNumber(length["max"]); ok && float64(count) > max {
			*errs = append(*errs, "The string is longer than the maximum length.")
			return false
		}
	}

	if pattern, ok := opts["pattern"].(*regexp.Regexp); ok {
		if !pattern.MatchString(str) {
			*errs = append(*errs, "The string does not match the required pattern.")
			return false
		}
	}

	return true
}

// ValidateFieldSpecification checks the optional "length" and "pattern"
// options; the pattern is compiled in place.
func (TextType) ValidateFieldSpecification(opts map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(opts))

	for key, raw := range opts {
		switch key {
		case "length":
			length, ok := raw.(map[string]any)
			if !ok {
				return nil, SpecError("Invalid \"length\" option definition")
			}
			for sub := range length {
				if sub != "min" && sub != "max" {
					return nil, SpecError("Invalid \"length\" option definition")
				}
				if _, ok := asNumber(length[sub]); !ok {
					return nil, SpecError(fmt.Sprintf("Invalid \"length.%s\" option: must be of type \"number\"", sub))
				}
			}
			min, hasMin := asNumber(length["min"])
			max, hasMax := asNumber(length["max"])
			if hasMin && hasMax && min > max {
				return nil, SpecError("Invalid length: min > max")
			}
			normalized[key] = length
		case "pattern":
			str, ok := raw.(string)
			if !ok {
				return nil, SpecError("Invalid \"pattern\" option: must be of type \"string\"")
			}
			compiled, err := regexp.Compile(str)
			if err != nil {
				return nil, SpecError("Invalid \"pattern\" option: " + err.Error())
			}
			normalized[key] = compiled
		default:
			return nil, SpecError("Unrecognized option in text specification")
		}
	}

	return normalized, nil
}

func init() {
	Register(TextType{})
}
