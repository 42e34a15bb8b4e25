// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/FATESAIKOU/learn-windows-automation/internal/metadata"
)

// Args is the typed argument mapping a successful bind produces. Values are
// string, int64, or bool depending on the declared kind.
type Args map[string]any

// String returns the named string or path argument.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns the named integer argument.
func (a Args) Int(name string) int64 {
	v, _ := a[name].(int64)
	return v
}

// Bool returns the named boolean argument.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Path returns the named path argument.
func (a Args) Path(name string) string {
	return a.String(name)
}

// bindArgs matches raw positional tokens against a script's argument specs:
// tokens fill the required specs first in declaration order, then the
// optional specs; optional specs left unfilled take their declared defaults.
func bindArgs(script *metadata.Script, tokens []string) (Args, error) {
	slots := append(script.RequiredArgs(), script.OptionalArgs()...)
	if len(tokens) > len(slots) {
		return nil, &BindingError{
			Script: script.Name,
			Detail: fmt.Sprintf("too many arguments: %d given, at most %d accepted", len(tokens), len(slots)),
		}
	}

	bound := make(Args, len(slots))
	for i, spec := range slots {
		if i < len(tokens) {
			v, err := convertToken(spec, tokens[i])
			if err != nil {
				var be *BindingError
				if errors.As(err, &be) {
					be.Script = script.Name
				}
				return nil, err
			}
			bound[spec.Name] = v
			continue
		}
		if spec.Required {
			return nil, &BindingError{
				Script:   script.Name,
				Argument: spec.Name,
				Detail:   "required argument missing",
			}
		}
		bound[spec.Name] = defaultValue(spec)
	}
	return bound, nil
}

// convertToken parses one raw token according to the spec's declared kind.
func convertToken(spec metadata.ArgumentSpec, token string) (any, error) {
	switch spec.Kind {
	case metadata.KindString:
		return token, nil
	case metadata.KindInteger:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, &BindingError{
				Argument: spec.Name,
				Detail:   fmt.Sprintf("%q is not an integer", token),
			}
		}
		return n, nil
	case metadata.KindBoolean:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return nil, &BindingError{
				Argument: spec.Name,
				Detail:   fmt.Sprintf("%q is not a boolean", token),
			}
		}
		return b, nil
	case metadata.KindPath:
		if token == "" {
			return nil, &BindingError{
				Argument: spec.Name,
				Detail:   "path must not be empty",
			}
		}
		return filepath.Clean(token), nil
	}
	// Unreachable for registry entries: Validate rejects unknown kinds.
	return nil, &BindingError{
		Argument: spec.Name,
		Detail:   fmt.Sprintf("unknown argument kind %q", spec.Kind),
	}
}

// defaultValue normalizes a validated default into the bound representation.
// Validation guarantees the dynamic type already matches the kind.
func defaultValue(spec metadata.ArgumentSpec) any {
	if spec.Kind == metadata.KindPath {
		if s, ok := spec.Default.(string); ok && s != "" {
			return filepath.Clean(s)
		}
	}
	return spec.Default
}
