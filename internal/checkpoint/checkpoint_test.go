package checkpoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := Create(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(Record{RunID: "run-a", Step: 0, SequenceText: "ICFP"}))
	require.NoError(t, store.Save(Record{RunID: "run-a", Step: 5, SequenceText: "CFPI"}))
	require.NoError(t, store.Save(Record{RunID: "run-b", Step: 100, SequenceText: "PICF"}))

	latest, ok, err := store.Latest("run-a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 5, latest.Step)
	require.Equal(t, "CFPI", latest.SequenceText)
}

func TestLatestUnknownRunIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := Create(path)
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Latest("nonexistent")
	require.NoError(t, err)
	require.False(t, ok)
}
