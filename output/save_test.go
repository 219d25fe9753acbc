package output

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveResultRoundTrip(t *testing.T) {
	original := sampleResult()
	original.JobID = "job-42"

	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, SaveResult(original, path))

	loaded, err := LoadResult(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadResultMissingFile(t *testing.T) {
	_, err := LoadResult(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
