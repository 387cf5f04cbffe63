package chronicle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWriterCreatesTimestampedSession(t *testing.T) {
	root := t.TempDir()

	w, err := NewWriter(root)
	require.NoError(t, err)
	defer w.Close()

	require.True(t, filepath.IsAbs(w.Path()) || filepath.IsAbs(root))
	info, err := os.Stat(w.Path())
	require.NoError(t, err)
	require.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(w.Path(), SequenceFileName))
	require.NoError(t, err)
}

func TestWriterChannelIsolation(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	const c1, c2 = uint64(1), uint64(2)
	p1, p2 := []byte("payload-one"), []byte("payload-two-longer")

	require.NoError(t, w.Write(c1, p1))
	require.NoError(t, w.Write(c2, p2))
	require.NoError(t, w.Close())

	roll1, err := os.ReadFile(filepath.Join(w.Path(), hexChannelDir(c1), rollName(0)))
	require.NoError(t, err)
	require.Equal(t, p1, roll1)

	roll2, err := os.ReadFile(filepath.Join(w.Path(), hexChannelDir(c2), rollName(0)))
	require.NoError(t, err)
	require.Equal(t, p2, roll2)
}

func TestWriterScenarioA(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	const c1, c2 = uint64(16983), uint64(68964786)
	d1 := make([]byte, 20)
	d2 := make([]byte, 34)
	for i := range d1 {
		d1[i] = byte(i)
	}
	for i := range d2 {
		d2[i] = byte(i)
	}

	require.NoError(t, w.Write(c1, d1))
	require.NoError(t, w.Write(c2, d2))
	require.NoError(t, w.Write(c1, d1))
	require.NoError(t, w.Write(c2, d2))
	require.NoError(t, w.Close())

	seqInfo, err := os.Stat(filepath.Join(w.Path(), SequenceFileName))
	require.NoError(t, err)
	require.EqualValues(t, 32, seqInfo.Size())

	idx1Info, err := os.Stat(filepath.Join(w.Path(), hexChannelDir(c1), IndexFileName))
	require.NoError(t, err)
	require.EqualValues(t, 48, idx1Info.Size())

	idx2Info, err := os.Stat(filepath.Join(w.Path(), hexChannelDir(c2), IndexFileName))
	require.NoError(t, err)
	require.EqualValues(t, 48, idx2Info.Size())

	roll1Info, err := os.Stat(filepath.Join(w.Path(), hexChannelDir(c1), rollName(0)))
	require.NoError(t, err)
	require.EqualValues(t, 40, roll1Info.Size())

	roll2Info, err := os.Stat(filepath.Join(w.Path(), hexChannelDir(c2), rollName(0)))
	require.NoError(t, err)
	require.EqualValues(t, 68, roll2Info.Size())
}

func TestWriterAcceptsMaxRollBytesOption(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, WithMaxRollBytes(16))
	require.NoError(t, err)
	defer w.Close()
	require.EqualValues(t, 16, w.maxRollBytes)
}
