// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metadata defines the declarative description every automation
// script ships alongside its entry point, and the validation that turns a
// parsed metadata file into something the registry will accept.
package metadata

// Kind is the declared type of a script argument. The set is closed; anything
// else fails validation.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindPath    Kind = "path"
)

// IsValid reports whether k is one of the declared argument kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindString, KindInteger, KindBoolean, KindPath:
		return true
	}
	return false
}

// ArgumentSpec declares one parameter of a script.
//
// A required argument must not carry a default; an optional argument must
// carry one, and the default's value must match Kind. Both rules are enforced
// by Validate, not here.
type ArgumentSpec struct {
	// Name is unique within one script.
	Name string `toml:"name"`
	// Kind is one of string, integer, boolean, path.
	Kind Kind `toml:"kind"`
	// Required arguments are filled from positional tokens first.
	Required bool `toml:"required"`
	// Default holds the fallback value for optional arguments. TOML decoding
	// yields string, int64, or bool here.
	Default any `toml:"default"`
}

// Script is the parsed content of one metadata file. Category and
// Subcategory are free-form labels used only for listing, never for
// dispatch.
type Script struct {
	Name         string         `toml:"name"`
	Description  string         `toml:"description"`
	Category     string         `toml:"category"`
	Subcategory  string         `toml:"subcategory"`
	Arguments    []ArgumentSpec `toml:"arguments"`
	Dependencies []string       `toml:"dependencies"`
}

// RequiredArgs returns the required argument specs in declaration order.
func (s *Script) RequiredArgs() []ArgumentSpec {
	return s.filterArgs(true)
}

// OptionalArgs returns the optional argument specs in declaration order.
func (s *Script) OptionalArgs() []ArgumentSpec {
	return s.filterArgs(false)
}

func (s *Script) filterArgs(required bool) []ArgumentSpec {
	var out []ArgumentSpec
	for _, a := range s.Arguments {
		if a.Required == required {
			out = append(out, a)
		}
	}
	return out
}
