package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aidooit/qualidoo/qualidoo"
)

// SaveResult writes the raw result to path as indented JSON. The save path
// is lossless: loading the file yields the same structured values.
func SaveResult(result *qualidoo.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to save result to %s: %w", path, err)
	}
	return nil
}

// LoadResult reads a result previously written by SaveResult.
func LoadResult(path string) (*qualidoo.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result from %s: %w", path, err)
	}
	var result qualidoo.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result from %s: %w", path, err)
	}
	return &result, nil
}
