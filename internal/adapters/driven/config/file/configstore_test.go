package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Path(t *testing.T) {
	store, dir := newTestStore(t)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.NoFileExists(t, store.Path(), "nothing written until first Set")
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("backend = [unclosed"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := `
backend = "firestore"

[batch]
limit = 250

[firestore]
project = "books-prod"
emulator = true

[google]
requests_per_second = 7.5
burst = 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "firestore", store.GetString("backend"))
	assert.Equal(t, 250, store.GetInt("batch.limit"))
	assert.Equal(t, "books-prod", store.GetString("firestore.project"))
	assert.True(t, store.GetBool("firestore.emulator"))
	assert.InDelta(t, 7.5, store.GetFloat("google.requests_per_second"), 0.0001)
	assert.InDelta(t, 10.0, store.GetFloat("google.burst"), 0.0001)
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("backend", "sqlite"))

	assert.Zero(t, store.GetInt("backend"))
	assert.Zero(t, store.GetFloat("backend"))
	assert.False(t, store.GetBool("backend"))
	assert.Empty(t, store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SetPersistsAsTables(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Set("backend", "sqlite"))
	require.NoError(t, store.Set("sqlite.data_dir", "/var/lib/cascade"))
	require.NoError(t, store.Set("batch.limit", 100))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[sqlite]")
	assert.Contains(t, string(raw), "[batch]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", reloaded.GetString("backend"))
	assert.Equal(t, "/var/lib/cascade", reloaded.GetString("sqlite.data_dir"))
	assert.Equal(t, 100, reloaded.GetInt("batch.limit"))
}

func TestConfigStore_Unset(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Set("storage.bucket", "books"))
	require.NoError(t, store.Unset("storage.bucket"))
	require.NoError(t, store.Unset("storage.bucket"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reloaded.Get("storage.bucket")
	assert.False(t, ok)
}

func TestConfigStore_Set_UnencodableValueRollsBack(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("log.level", "info"))

	err := store.Set("log.level", make(chan int))
	assert.Error(t, err)
	assert.Equal(t, "info", store.GetString("log.level"))

	err = store.Set("log.format", make(chan int))
	assert.Error(t, err)
	_, ok := store.Get("log.format")
	assert.False(t, ok)
}

func TestConfigStore_Save_WriteError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission checks not enforced")
	}
	store, dir := newTestStore(t)
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0700) })

	assert.Error(t, store.Save())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("backend", "memory"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("server.port", 8000+i)
			_ = store.GetInt("server.port")
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, store.GetInt("server.port"), 8000)
}

func TestNestMap(t *testing.T) {
	got := nestMap(map[string]any{
		"backend":            "memory",
		"firestore.project":  "p",
		"firestore.emulator": true,
		"log":                "flat",
		"log.level":          "debug",
	})

	assert.Equal(t, map[string]any{
		"backend":   "memory",
		"firestore": map[string]any{"project": "p", "emulator": true},
		"log":       "flat",
		"log.level": "debug",
	}, got)
	assert.Equal(t, map[string]any{
		"backend":            "memory",
		"firestore.project":  "p",
		"firestore.emulator": true,
		"log":                "flat",
		"log.level":          "debug",
	}, flattenMap(got, ""))
}
