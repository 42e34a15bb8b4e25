// SPDX-License-Identifier: AGPL-3.0-or-later

package metadata

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Parse decodes a metadata document. Decoding is strict about TOML syntax but
// tolerant of unknown fields so older binaries can read newer metadata.
// Structural correctness is Validate's job, not Parse's.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := toml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing script metadata: %w", err)
	}
	return &s, nil
}

// ParseFile reads and decodes one metadata file.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script metadata: %w", err)
	}
	return Parse(data)
}
