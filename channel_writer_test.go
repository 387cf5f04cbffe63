package chronicle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewChannelWriterRejectsExistingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "0x1")
	require.NoError(t, os.Mkdir(dir, 0o755))

	_, err := newChannelWriter(dir, DefaultMaxRollBytes)
	require.ErrorIs(t, err, ErrChannelAlreadyExists)
}

func TestChannelWriterZeroByteFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "0x1")
	cw, err := newChannelWriter(dir, DefaultMaxRollBytes)
	require.NoError(t, err)

	require.NoError(t, cw.writeFrame(nil))
	require.NoError(t, cw.close())

	indexBytes, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	require.NoError(t, err)
	require.Len(t, indexBytes, indexEntryWidth)

	entry := decodeIndexEntry(indexBytes)
	require.Equal(t, uint64(0), entry.dataSize)
}

func TestChannelWriterMultiSpanEquivalence(t *testing.T) {
	base := t.TempDir()

	single, err := newChannelWriter(filepath.Join(base, "single"), DefaultMaxRollBytes)
	require.NoError(t, err)
	require.NoError(t, single.writeFrame([]byte("abcdefghij")))
	require.NoError(t, single.close())

	multi, err := newChannelWriter(filepath.Join(base, "multi"), DefaultMaxRollBytes)
	require.NoError(t, err)
	require.NoError(t, multi.writeFrameSpans([][]byte{[]byte("abcde"), []byte("fghij")}))
	require.NoError(t, multi.close())

	singleRoll, err := os.ReadFile(filepath.Join(base, "single", rollName(0)))
	require.NoError(t, err)
	multiRoll, err := os.ReadFile(filepath.Join(base, "multi", rollName(0)))
	require.NoError(t, err)
	require.Equal(t, singleRoll, multiRoll)

	singleIndex, err := os.ReadFile(filepath.Join(base, "single", IndexFileName))
	require.NoError(t, err)
	multiIndex, err := os.ReadFile(filepath.Join(base, "multi", IndexFileName))
	require.NoError(t, err)
	require.Equal(t, singleIndex, multiIndex)
}

func TestChannelWriterRollRotation(t *testing.T) {
	const maxRollBytes = 50
	const frameSize = 11
	const frameCount = 256

	dir := filepath.Join(t.TempDir(), "0x1")
	cw, err := newChannelWriter(dir, maxRollBytes)
	require.NoError(t, err)

	frame := make([]byte, frameSize)
	for i := 0; i < frameCount; i++ {
		require.NoError(t, cw.writeFrame(frame))
	}
	require.NoError(t, cw.close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	rollCount := 0
	for _, e := range entries {
		if e.Name() != IndexFileName {
			rollCount++
		}
	}
	require.Equal(t, 64, rollCount)

	indexBytes, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	require.NoError(t, err)
	require.Len(t, indexBytes, frameCount*indexEntryWidth)
}

func TestChannelWriterScenarioC(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "0xc")
	cw, err := newChannelWriter(dir, DefaultMaxRollBytes)
	require.NoError(t, err)

	x10 := make([]byte, 10)
	for i := range x10 {
		x10[i] = byte(i)
	}

	spans := make([][]byte, 5)
	for i := range spans {
		spans[i] = x10
	}
	require.NoError(t, cw.writeFrameSpans(spans))
	require.NoError(t, cw.close())

	rollBytes, err := os.ReadFile(filepath.Join(dir, rollName(0)))
	require.NoError(t, err)
	require.Len(t, rollBytes, 50)

	indexBytes, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	require.NoError(t, err)
	require.Len(t, indexBytes, indexEntryWidth)
}
