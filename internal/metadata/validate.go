// SPDX-License-Identifier: AGPL-3.0-or-later

package metadata

import (
	"errors"
	"fmt"
)

// Reason classifies why a metadata document was rejected.
type Reason string

const (
	// MissingField: a required top-level field (name, description, category)
	// or an argument name is absent.
	MissingField Reason = "missing_field"
	// UnknownArgumentKind: an argument declares a kind outside the closed set.
	UnknownArgumentKind Reason = "unknown_argument_kind"
	// InconsistentDefault: a required argument carries a default, an optional
	// argument lacks one, or a default fails to type-check against its kind.
	InconsistentDefault Reason = "inconsistent_default"
	// DuplicateArgument: two arguments of one script share a name.
	DuplicateArgument Reason = "duplicate_argument"
	// DuplicateName: a later scan entry re-declares an earlier script's name.
	// Raised by the registry, not by Validate.
	DuplicateName Reason = "duplicate_name"
)

// ErrInvalid is the sentinel wrapped by every ValidationError, so callers can
// errors.Is for "some validation failure" without caring which.
var ErrInvalid = errors.New("invalid script metadata")

// ValidationError reports one structural defect in a metadata document. Field
// names the offending field or argument when there is one.
type ValidationError struct {
	Script string
	Reason Reason
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("script %q: %s", e.Script, e.Reason)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %q)", e.Field)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate checks a parsed metadata document for structural and type
// correctness. It is pure: same input, same outcome, and it never touches the
// filesystem. A nil return means the script is fit for registration.
func Validate(s *Script) error {
	if s.Name == "" {
		return &ValidationError{Script: s.Name, Reason: MissingField, Field: "name"}
	}
	if s.Description == "" {
		return &ValidationError{Script: s.Name, Reason: MissingField, Field: "description"}
	}
	if s.Category == "" {
		return &ValidationError{Script: s.Name, Reason: MissingField, Field: "category"}
	}

	seen := make(map[string]bool, len(s.Arguments))
	for _, a := range s.Arguments {
		if a.Name == "" {
			return &ValidationError{Script: s.Name, Reason: MissingField, Field: "arguments.name"}
		}
		if seen[a.Name] {
			return &ValidationError{Script: s.Name, Reason: DuplicateArgument, Field: a.Name}
		}
		seen[a.Name] = true

		if !a.Kind.IsValid() {
			return &ValidationError{
				Script: s.Name,
				Reason: UnknownArgumentKind,
				Field:  a.Name,
				Detail: fmt.Sprintf("kind %q is not one of string, integer, boolean, path", a.Kind),
			}
		}

		if a.Required {
			if a.Default != nil {
				return &ValidationError{
					Script: s.Name,
					Reason: InconsistentDefault,
					Field:  a.Name,
					Detail: "required argument must not declare a default",
				}
			}
			continue
		}
		if a.Default == nil {
			return &ValidationError{
				Script: s.Name,
				Reason: InconsistentDefault,
				Field:  a.Name,
				Detail: "optional argument must declare a default",
			}
		}
		if err := checkDefaultKind(a); err != nil {
			return &ValidationError{
				Script: s.Name,
				Reason: InconsistentDefault,
				Field:  a.Name,
				Detail: err.Error(),
			}
		}
	}
	return nil
}

// checkDefaultKind verifies the dynamic type of a default against the
// declared kind. TOML decoding produces string, int64, or bool values.
func checkDefaultKind(a ArgumentSpec) error {
	switch a.Kind {
	case KindString, KindPath:
		if _, ok := a.Default.(string); !ok {
			return fmt.Errorf("default %v is not a string", a.Default)
		}
	case KindInteger:
		if _, ok := a.Default.(int64); !ok {
			return fmt.Errorf("default %v is not an integer", a.Default)
		}
	case KindBoolean:
		if _, ok := a.Default.(bool); !ok {
			return fmt.Errorf("default %v is not a boolean", a.Default)
		}
	}
	return nil
}
