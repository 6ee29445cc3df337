package api

import (
	"fmt"
	"os"
	"path/filepath"
)

// Mock simulates the AskSage API without network calls. It is selected in
// test mode so the CLI can be exercised end to end against deterministic
// responses, and deliberately mixes the legacy success convention with the
// bare-list convention the way the real API does across versions.
type Mock struct {
	datasets       []string
	currentDataset string
}

var _ Sage = (*Mock)(nil)

// NewMock creates a mock client seeded with two datasets.
func NewMock() *Mock {
	return &Mock{
		datasets: []string{
			"user_custom_123_example_content",
			"user_custom_123_test_content",
		},
	}
}

// GetDatasets returns the current dataset identifiers as a bare list.
func (m *Mock) GetDatasets() (any, error) {
	out := make([]string, len(m.datasets))
	copy(out, m.datasets)
	return out, nil
}

// AddDataset registers a new dataset under the mock tenant id.
func (m *Mock) AddDataset(name string) (any, error) {
	fullName := fmt.Sprintf("user_custom_123_%s_content", name)
	for _, ds := range m.datasets {
		if ds == fullName {
			return map[string]any{"success": false, "error": "Dataset already exists"}, nil
		}
	}
	m.datasets = append(m.datasets, fullName)
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Dataset %s created successfully", name),
	}, nil
}

// DeleteDataset removes a dataset by full identifier.
func (m *Mock) DeleteDataset(name string) (any, error) {
	for i, ds := range m.datasets {
		if ds == name {
			m.datasets = append(m.datasets[:i], m.datasets[i+1:]...)
			return map[string]any{
				"success": true,
				"message": fmt.Sprintf("Dataset %s deleted successfully", name),
			}, nil
		}
	}
	return map[string]any{"success": false, "error": "Dataset not found"}, nil
}

// AssignDataset records the active dataset.
func (m *Mock) AssignDataset(name string) (any, error) {
	m.currentDataset = name
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Dataset %s assigned", name),
	}, nil
}

// TrainWithFile simulates training a file, failing when it does not exist.
func (m *Mock) TrainWithFile(path string, opts TrainOptions) (any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return map[string]any{"success": false, "error": fmt.Sprintf("File not found: %s", path)}, nil
	}

	dataset := opts.Dataset
	if dataset == "" {
		dataset = m.currentDataset
	}
	tokens := info.Size() / 4
	if tokens > 1000 {
		tokens = 1000
	}
	return map[string]any{
		"success":     true,
		"message":     fmt.Sprintf("Successfully trained file %s", path),
		"tokens_used": tokens,
		"dataset":     dataset,
	}, nil
}

// Query returns a canned response echoing the message.
func (m *Mock) Query(message string, opts QueryOptions) (any, error) {
	model := opts.Model
	if model == "" {
		model = "mock-gpt-4o"
	}
	return map[string]any{
		"success":     true,
		"response":    fmt.Sprintf("This is a mock response from AskSage AI. Your question was: %q", message),
		"tokens_used": len(message) / 2,
		"model":       model,
		"dataset":     m.currentDataset,
	}, nil
}

// QueryWithFile returns a canned response naming the attached file.
func (m *Mock) QueryWithFile(message, path string, opts QueryOptions) (any, error) {
	if _, err := os.Stat(path); err != nil {
		return map[string]any{"success": false, "error": fmt.Sprintf("File not found: %s", path)}, nil
	}
	return map[string]any{
		"success":       true,
		"response":      fmt.Sprintf("Mock response analyzing file %s: %s", filepath.Base(path), message),
		"model":         "mock-gpt-4o",
		"file_analyzed": path,
	}, nil
}

// QueryPlugin returns a canned response naming the plugin.
func (m *Mock) QueryPlugin(message, plugin string, opts QueryOptions) (any, error) {
	return map[string]any{
		"success":  true,
		"response": fmt.Sprintf("Mock response from plugin %q: %s", plugin, message),
		"plugin":   plugin,
		"dataset":  m.currentDataset,
	}, nil
}

// CountMonthlyTokens returns a fixed token count as a bare number.
func (m *Mock) CountMonthlyTokens() (any, error) {
	return 15750, nil
}

// CountMonthlyTeachTokens returns a fixed teaching token count.
func (m *Mock) CountMonthlyTeachTokens() (any, error) {
	return 3280, nil
}

// GetModels returns the mock model catalog.
func (m *Mock) GetModels() (any, error) {
	return []string{
		"mock-gpt-4o",
		"mock-claude-3.5-sonnet",
		"mock-gemini-pro",
		"mock-llama-3.1",
	}, nil
}
