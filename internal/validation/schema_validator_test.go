package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogSchemaPath = "configs/schemas/catalog.schema.json"

func TestValidateFile_RepositoryCatalog(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.ValidateFile(filepath.Join("..", "..", "configs", "recipes", "catalog.json"), catalogSchemaPath))
}

func TestValidateBytes_RejectsBadRecipe(t *testing.T) {
	v := NewSchemaValidator()

	data := []byte(`{
		"version": "1.0",
		"templates": [],
		"recipes": [{"id": "r1", "name": "Broken", "recipe_type": "alchemy", "target": {"uuid": "t1"}, "components": []}]
	}`)

	err := v.ValidateBytes(data, catalogSchemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
	assert.Contains(t, err.Error(), "/recipes/0")
}

func TestValidateBytes_MalformedJSON(t *testing.T) {
	v := NewSchemaValidator()
	err := v.ValidateBytes([]byte(`{"version":`), catalogSchemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON data")
}

func TestValidateBytes_MissingSchema(t *testing.T) {
	v := NewSchemaValidator()
	err := v.ValidateBytes([]byte(`{}`), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestValidateFile_MissingData(t *testing.T) {
	v := NewSchemaValidator()
	err := v.ValidateFile(filepath.Join(os.TempDir(), "does-not-exist.json"), catalogSchemaPath)
	assert.Error(t, err)
}
