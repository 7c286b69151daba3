package cli_test

import (
	"testing"

	"github.com/ostafen/f7h/internal/cli"
	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/stretchr/testify/require"
)

func TestRejectDuplicateFlagsOK(t *testing.T) {
	err := cli.RejectDuplicateFlags(
		[]string{"--slots", "4", "--first", "1", "--dry-run"},
		"slots", "first", "size", "every",
	)
	require.NoError(t, err)
}

func TestRejectDuplicateFlagsEqualsForm(t *testing.T) {
	err := cli.RejectDuplicateFlags(
		[]string{"--slots=4", "--first", "1", "--slots=8"},
		"slots", "first",
	)
	require.Error(t, err)
	require.ErrorIs(t, err, f7herr.ErrUsage)
	require.ErrorIs(t, err, f7herr.ErrDuplicateFlag)
}

func TestRejectDuplicateFlagsMixedForm(t *testing.T) {
	err := cli.RejectDuplicateFlags(
		[]string{"--every", "10", "--every=20"},
		"every",
	)
	require.ErrorIs(t, err, f7herr.ErrDuplicateFlag)
}

func TestRejectDuplicateFlagsIgnoresUntracked(t *testing.T) {
	err := cli.RejectDuplicateFlags(
		[]string{"--unrelated", "1", "--unrelated", "2"},
		"slots",
	)
	require.NoError(t, err)
}
