package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchema(t *testing.T) {
	schema, err := buildSchema("save")
	require.NoError(t, err)
	assert.Equal(t, "Quantum Forge Save", schema.Title)

	schema, err = buildSchema("catalog")
	require.NoError(t, err)
	assert.Equal(t, "Quantum Forge Catalog", schema.Title)

	_, err = buildSchema("bogus")
	assert.ErrorContains(t, err, "bogus")
}

func TestWriteSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schemas", "save.schema.json")

	schema, err := buildSchema("save")
	require.NoError(t, err)
	require.NoError(t, writeSchema(out, schema))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Quantum Forge Save", doc["title"])

	_, err = os.Stat(out + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
