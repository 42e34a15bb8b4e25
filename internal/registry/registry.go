// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry discovers script metadata under a root directory and
// maintains the catalog the execution engine resolves names against.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/FATESAIKOU/learn-windows-automation/internal/metadata"
)

// ErrNotFound is returned by Lookup for unknown or disabled scripts.
var ErrNotFound = errors.New("script not found")

// metadataExt is the file extension a scan considers a script metadata file.
const metadataExt = ".toml"

// Entry is one validated, discovered script. Entries are immutable once the
// scan that produced them returns; a rescan builds a whole new Registry.
type Entry struct {
	Script  metadata.Script
	Path    string
	Enabled bool
}

// Warning records a script that a scan had to exclude, and why. One bad
// script never hides the rest.
type Warning struct {
	Path string
	Err  error
}

// Filter narrows List output. Zero value matches everything.
type Filter struct {
	Category string
}

// Registry is the read-only catalog produced by a Scan. Lookups never trigger
// a rescan; the caller owns rescan cadence.
type Registry struct {
	entries  map[string]*Entry
	warnings []Warning
}

// Scan walks root in deterministic (lexicographic by relative path) order,
// validates every metadata file it finds, and returns the catalog of
// survivors. Invalid scripts and later duplicates are logged through logger
// and recorded as warnings; only a broken walk aborts the scan.
func Scan(root string, cfg *Config, logger *log.Logger) (*Registry, error) {
	reg := &Registry{entries: make(map[string]*Entry)}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), metadataExt) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning script root %s: %w", root, err)
	}
	// WalkDir already visits lexicographically, but sorting keeps the
	// ordering contract independent of the walker.
	sort.Strings(paths)

	for _, path := range paths {
		script, err := metadata.ParseFile(path)
		if err == nil {
			err = metadata.Validate(script)
		}
		if err == nil {
			if _, exists := reg.entries[script.Name]; exists {
				err = &metadata.ValidationError{
					Script: script.Name,
					Reason: metadata.DuplicateName,
					Detail: fmt.Sprintf("already registered from %s", reg.entries[script.Name].Path),
				}
			}
		}
		if err != nil {
			reg.warnings = append(reg.warnings, Warning{Path: path, Err: err})
			logger.Warn("excluding script from registry", "path", path, "err", err)
			continue
		}
		reg.entries[script.Name] = &Entry{
			Script:  *script,
			Path:    path,
			Enabled: cfg.Enabled(script.Name),
		}
	}
	return reg, nil
}

// Lookup resolves a script by name. Disabled entries resolve as not found, so
// a disabled script cannot be executed through the engine.
func (r *Registry) Lookup(name string) (*Entry, error) {
	e, ok := r.entries[name]
	if !ok || !e.Enabled {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, nil
}

// List returns the enabled entries matching filter, sorted by script name so
// output is stable across runs of an unchanged root.
func (r *Registry) List(filter Filter) []*Entry {
	var out []*Entry
	for _, e := range r.entries {
		if !e.Enabled {
			continue
		}
		if filter.Category != "" && e.Script.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Script.Name < out[j].Script.Name })
	return out
}

// Warnings returns the scan-time exclusions in scan order.
func (r *Registry) Warnings() []Warning {
	return r.warnings
}

// Len reports how many scripts are registered, enabled or not.
func (r *Registry) Len() int {
	return len(r.entries)
}
