package chronicle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIoErrorWrapsAndMatches(t *testing.T) {
	cause := errors.New("disk full")
	err := newIoError("write", "/tmp/roll0.nioc", cause)

	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, err, &IoError{})
	require.Contains(t, err.Error(), "write")
	require.Contains(t, err.Error(), "/tmp/roll0.nioc")
}

func TestCorruptChronicleErrorMatches(t *testing.T) {
	err := newCorruptChronicleError("/tmp/chronicle/0x1/index", "range exceeds mapped length")

	require.ErrorIs(t, err, &CorruptChronicleError{})
	require.Contains(t, err.Error(), "0x1")
}

func TestSentinelsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrInvalidArgument, ErrChannelAlreadyExists))
	require.False(t, errors.Is(ErrEndOfChronicle, ErrInvalidArgument))
}
