package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("001_init.sql"))
	assert.Equal(t, "002", Version("sql/002_add_indexes.sql"))
	assert.Equal(t, "003", Version("003.sql"))
}

func TestPending_SortedSQLOnly(t *testing.T) {
	files := fstest.MapFS{
		"002_seed.sql":  {Data: []byte("SELECT 1;")},
		"001_init.sql":  {Data: []byte("SELECT 1;")},
		"README.md":     {Data: []byte("notes")},
		"old/000_x.sql": {Data: []byte("SELECT 1;")},
	}

	names, err := Pending(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_seed.sql"}, names)
}

func TestFiles_EmbedsInitialSchema(t *testing.T) {
	names, err := Pending(Files())
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}
