package validate

import (
	"github.com/nyaruka/phonenumbers"
)

// PhoneType validates phone number field values. Numbers must be in E.164
// form unless a default region is configured, e.g. {"region": "US"}.
type PhoneType struct{}

// TypeName returns "phone".
func (PhoneType) TypeName() string {
	return "phone"
}

// AllowChildren reports that phone fields carry no nested fields.
func (PhoneType) AllowChildren() bool {
	return false
}

// Validate checks that the value parses as a valid phone number.
func (PhoneType) Validate(opts map[string]any, value any, errs *[]string) bool {
	str, ok := value.(string)
	if !ok {
		*errs = append(*errs, "The field must be a string.")
		return false
	}

	region, _ := opts["region"].(string)
	num, err := phonenumbers.Parse(str, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		*errs = append(*errs, "The field must be a valid phone number.")
		return false
	}

	return true
}

// ValidateFieldSpecification checks the optional "region" option: a
// two-letter country code.
func (PhoneType) ValidateFieldSpecification(opts map[string]any) (map[string]any, error) {
	for key, raw := range opts {
		if key != "region" {
			return nil, SpecError("Unrecognized option in phone specification")
		}
		region, ok := raw.(string)
		if !ok || len(region) != 2 {
			return nil, SpecError("Invalid \"region\" option: must be a two-letter country code")
		}
	}
	return opts, nil
}

func init() {
	Register(PhoneType{})
}
