package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testRecord struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
	assert.False(t, FileExists(dir), "directories are not files")
}

func TestWriteFileWithOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	written, err := WriteFileWithOverwrite(path, []byte("first"), 0644, false)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteFileWithOverwrite(path, []byte("second"), 0644, false)
	require.NoError(t, err)
	assert.False(t, written)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "first", string(data))

	written, err = WriteFileWithOverwrite(path, []byte("third"), 0644, true)
	require.NoError(t, err)
	assert.True(t, written)
	data, _ = os.ReadFile(path)
	assert.Equal(t, "third", string(data))
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	records := []testRecord{{ID: 1, Name: "Akira"}, {ID: 2, Name: "Berserk"}}

	written, err := WriteJSONFile(records, path, true)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []testRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, records, got)
}

func TestWriteJSONFileUnsupportedValue(t *testing.T) {
	_, err := WriteJSONFile(make(chan int), filepath.Join(t.TempDir(), "bad.json"), true)
	assert.ErrorContains(t, err, "failed to marshal JSON")
}

func TestWriteDataFileChoosesEncoding(t *testing.T) {
	dir := t.TempDir()
	records := []testRecord{{ID: 7, Name: "Mushishi"}}

	yamlPath := filepath.Join(dir, "results.YML")
	_, err := WriteDataFile(records, yamlPath, true)
	require.NoError(t, err)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []testRecord
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, records, fromYAML)

	jsonPath := filepath.Join(dir, "results.out")
	_, err = WriteDataFile(records, jsonPath, true)
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}
