package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "symbols.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
symbols:
  - {code: AAPL, name: Apple Inc., market: NASDAQ, sort_key: 1}
  - code: DEAD
    name: Delisted Corp
    market: NYSE
    active: false
    sort_key: 9
`), 0o600))

	got, err := LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "AAPL", got[0].Code)
	assert.Equal(t, "Apple Inc.", got[0].Name)
	assert.Equal(t, "NASDAQ", got[0].Market)
	assert.Equal(t, 1, got[0].SortKey)
	assert.True(t, got[0].IsActive, "active defaults to true")

	assert.Equal(t, "DEAD", got[1].Code)
	assert.False(t, got[1].IsActive)
	assert.Equal(t, 9, got[1].SortKey)
}

func TestLoadCatalogFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols: {code: [}"), 0o600))
	_, err = LoadCatalogFile(path)
	assert.Error(t, err)
}
