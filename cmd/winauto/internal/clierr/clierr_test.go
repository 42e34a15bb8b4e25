// SPDX-License-Identifier: AGPL-3.0-or-later

package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, 1, ExitCodeOf(errors.New("plain")))
	assert.Equal(t, 4, ExitCodeOf(New(4, "timed out")))
}

func TestWrapPreservesChain(t *testing.T) {
	sentinel := errors.New("root cause")
	err := Wrap(3, fmt.Errorf("binding: %w", sentinel))

	assert.Equal(t, 3, ExitCodeOf(err))
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "root cause")
}

func TestWrapNil(t *testing.T) {
	require.Nil(t, Wrap(2, nil))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 1, ExitCodeOf(New(0, "zero is success, errors cannot use it")))
	assert.Equal(t, 1, ExitCodeOf(New(-7, "negative")))
}

func TestExitCodeOfNestedExitError(t *testing.T) {
	inner := New(5, "script failed")
	outer := fmt.Errorf("while running: %w", inner)
	assert.Equal(t, 5, ExitCodeOf(outer))
}
