// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FATESAIKOU/learn-windows-automation/internal/metadata"
)

// One required string plus one optional integer defaulting to 0 — the
// canonical binding shape.
func bindingScript() *metadata.Script {
	return &metadata.Script{
		Name:        "copier",
		Description: "copy things",
		Category:    "test",
		Arguments: []metadata.ArgumentSpec{
			{Name: "source", Kind: metadata.KindString, Required: true},
			{Name: "count", Kind: metadata.KindInteger, Default: int64(0)},
		},
	}
}

func TestBind_ZeroTokensMissesRequired(t *testing.T) {
	_, err := bindArgs(bindingScript(), nil)
	var be *BindingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "source", be.Argument)
}

func TestBind_OneTokenDefaultsOptional(t *testing.T) {
	args, err := bindArgs(bindingScript(), []string{"inbox"})
	require.NoError(t, err)
	assert.Equal(t, "inbox", args.String("source"))
	assert.Equal(t, int64(0), args.Int("count"))
}

func TestBind_ConvertsInteger(t *testing.T) {
	args, err := bindArgs(bindingScript(), []string{"inbox", "3"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), args.Int("count"))
}

func TestBind_NonNumericIntegerToken(t *testing.T) {
	_, err := bindArgs(bindingScript(), []string{"inbox", "many"})
	var be *BindingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "count", be.Argument)
	assert.Equal(t, "copier", be.Script)
}

func TestBind_ExtraTokenRejected(t *testing.T) {
	_, err := bindArgs(bindingScript(), []string{"inbox", "3", "surplus"})
	var be *BindingError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Detail, "too many arguments")
}

func TestBind_RequiredFilledBeforeOptionalInDeclarationOrder(t *testing.T) {
	s := &metadata.Script{
		Name: "mixed", Description: "d", Category: "c",
		Arguments: []metadata.ArgumentSpec{
			{Name: "verbose", Kind: metadata.KindBoolean, Default: false},
			{Name: "first", Kind: metadata.KindString, Required: true},
			{Name: "second", Kind: metadata.KindString, Required: true},
		},
	}

	args, err := bindArgs(s, []string{"a", "b", "true"})
	require.NoError(t, err)
	assert.Equal(t, "a", args.String("first"))
	assert.Equal(t, "b", args.String("second"))
	assert.Equal(t, true, args.Bool("verbose"))

	args, err = bindArgs(s, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, false, args.Bool("verbose"))
}

func TestBind_BooleanTokenForms(t *testing.T) {
	s := &metadata.Script{
		Name: "flagged", Description: "d", Category: "c",
		Arguments: []metadata.ArgumentSpec{
			{Name: "force", Kind: metadata.KindBoolean, Required: true},
		},
	}

	for token, want := range map[string]bool{"true": true, "1": true, "FALSE": false, "0": false} {
		args, err := bindArgs(s, []string{token})
		require.NoError(t, err, "token %q", token)
		assert.Equal(t, want, args.Bool("force"), "token %q", token)
	}

	_, err := bindArgs(s, []string{"yes"})
	var be *BindingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "force", be.Argument)
}

func TestBind_PathCleanedAndNonEmpty(t *testing.T) {
	s := &metadata.Script{
		Name: "pathy", Description: "d", Category: "c",
		Arguments: []metadata.ArgumentSpec{
			{Name: "target", Kind: metadata.KindPath, Required: true},
		},
	}

	args, err := bindArgs(s, []string{"out//reports/./x"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "reports", "x"), args.Path("target"))

	_, err = bindArgs(s, []string{""})
	var be *BindingError
	require.ErrorAs(t, err, &be)
}
