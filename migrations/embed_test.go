package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsFS(t *testing.T) {
	files, err := fs.Glob(MigrationsFS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(MigrationsFS, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestContentSchemaTables(t *testing.T) {
	body, err := fs.ReadFile(MigrationsFS, "00001_create_content_schema.sql")
	require.NoError(t, err)

	for _, table := range []string{"media", "categories", "textures", "products", "product_categories", "product_textures"} {
		assert.True(t, strings.Contains(string(body), "CREATE TABLE "+table+" "), table)
	}
}
