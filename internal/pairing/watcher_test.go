package pairing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")

	initial := `{
		"cuisines": {
			"Italian": { "genre": "jazz", "playlist": "Italian Dinner Jazz", "spotifyGenre": "jazz" },
			"Unknown": { "genre": "pop", "playlist": "Cooking Vibes", "spotifyGenre": "pop" }
		},
		"genres": { "jazz": ["Italian"] }
	}`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o600))

	table, err := NewTableFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "jazz", table.LookupByCuisine("Italian").Genre)

	watcher, err := NewMappingWatcher(table, path, testLogger())
	require.NoError(t, err)
	defer watcher.Close()

	updated := `{
		"cuisines": {
			"Italian": { "genre": "opera", "playlist": "Opera Night", "spotifyGenre": "opera" },
			"Unknown": { "genre": "pop", "playlist": "Cooking Vibes", "spotifyGenre": "pop" }
		},
		"genres": { "opera": ["Italian"] }
	}`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	assert.Eventually(t, func() bool {
		return table.LookupByCuisine("Italian").Genre == "opera"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestMappingWatcher_KeepsTableOnBadWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"cuisines": {
			"Unknown": { "genre": "pop", "playlist": "Cooking Vibes", "spotifyGenre": "pop" }
		},
		"genres": {}
	}`), 0o600))

	table, err := NewTableFromFile(path)
	require.NoError(t, err)

	watcher, err := NewMappingWatcher(table, path, testLogger())
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	// Give the debounce time to fire; the table must still serve the
	// previous contents.
	time.Sleep(3 * reloadDebounce)
	assert.Equal(t, "pop", table.LookupByCuisine("Anything").Genre)
}

func TestMappingWatcher_CloseStopsWatching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"cuisines": {
			"Unknown": { "genre": "pop", "playlist": "Cooking Vibes", "spotifyGenre": "pop" }
		},
		"genres": {}
	}`), 0o600))

	table, err := NewTableFromFile(path)
	require.NoError(t, err)

	watcher, err := NewMappingWatcher(table, path, testLogger())
	require.NoError(t, err)
	require.NoError(t, watcher.Close())
}
