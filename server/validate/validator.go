// Package validate defines the field-level document validation type system:
// a registry of value types, each validating a field value against a
// specification, consumed by the request funnel before writes.
package validate

import (
	"fmt"

	t "github.com/gs7776/kuzzle/server/store/types"
)

// Type handles validation of one kind of field value, like a number or a
// phone number.
type Type interface {
	// TypeName returns the name the type is registered under.
	TypeName() string

	// AllowChildren reports whether fields of this type may carry nested
	// field specifications.
	AllowChildren() bool

	// Validate checks a field value against the type options, appending
	// human-readable messages to errs on failure.
	Validate(opts map[string]any, value any, errs *[]string) bool

	// ValidateFieldSpecification checks and normalizes the type options.
	// Fails with a SpecError if an option constraint is violated.
	ValidateFieldSpecification(opts map[string]any) (map[string]any, error)
}

// SpecError reports an invalid field specification. The funnel classifies it
// as a precondition failure.
type SpecError string

func (e SpecError) Error() string {
	return string(e)
}

var registry = make(map[string]Type)

// Register makes a validation type available to field specifications.
// Panics on a duplicate or nil type.
func Register(vt Type) {
	if vt == nil {
		panic("validate: Register type is nil")
	}
	if _, ok := registry[vt.TypeName()]; ok {
		panic("validate: type '" + vt.TypeName() + "' is already registered")
	}
	registry[vt.TypeName()] = vt
}

// Get returns the registered validation type by name, nil if absent.
func Get(name string) Type {
	return registry[name]
}

type fieldChecker struct {
	spec t.FieldSpec
	vt   Type
	opts map[string]any
}

// Validator checks documents against one collection's field specification.
type Validator struct {
	fields map[string]fieldChecker
}

// NewValidator compiles a collection specification, running every field's
// options through its type's ValidateFieldSpecification.
func NewValidator(fields map[string]t.FieldSpec) (*Validator, error) {
	compiled := make(map[string]fieldChecker, len(fields))
	for name, spec := range fields {
		vt := Get(spec.Type)
		if vt == nil {
			return nil, SpecError(fmt.Sprintf("Unknown validation type \"%s\" for field \"%s\"", spec.Type, name))
		}
		opts, err := vt.ValidateFieldSpecification(spec.Options)
		if err != nil {
			return nil, err
		}
		compiled[name] = fieldChecker{spec: spec, vt: vt, opts: opts}
	}
	return &Validator{fields: compiled}, nil
}

// ValidateDocument checks document content against the compiled
// specification. Returns validity together with per-field messages.
func (v *Validator) ValidateDocument(content map[string]any) (bool, []string) {
	var errs []string
	for name, checker := range v.fields {
		value, present := content[name]
		if !present {
			if checker.spec.Mandatory {
				errs = append(errs, fmt.Sprintf("The field \"%s\" is mandatory.", name))
			}
			continue
		}
		if !checker.vt.Validate(checker.opts, value, &errs) {
			// Prefix the last message with the field name for context.
			if len(errs) > 0 {
				errs[len(errs)-1] = fmt.Sprintf("Field \"%s\": %s", name, errs[len(errs)-1])
			}
		}
	}
	return len(errs) == 0, errs
}

// ValidatePartial checks only the fields present in the patch. Mandatory
// fields absent from the patch are not reported: a partial update leaves
// them untouched.
func (v *Validator) ValidatePartial(patch map[string]any) (bool, []string) {
	var errs []string
	for name, checker := range v.fields {
		value, present := patch[name]
		if !present {
			continue
		}
		if !checker.vt.Validate(checker.opts, value, &errs) {
			if len(errs) > 0 {
				errs[len(errs)-1] = fmt.Sprintf("Field \"%s\": %s", name, errs[len(errs)-1])
			}
		}
	}
	return len(errs) == 0, errs
}
