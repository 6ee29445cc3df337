package cmd

import (
	"testing"

	"github.com/asksage-tools/asksage-cli/internal/api"
)

// stubSage is a scriptable Sage implementation for command tests.
type stubSage struct {
	datasets []string
	listErr  error

	addResp    any
	deleteResp any
	assignResp any
	queryResp  any
	modelsResp any
	monthly    any
	teach      any

	trainFn func(path string, opts api.TrainOptions) (any, error)

	added    []string
	deleted  []string
	assigned []string
	queries  []string
}

func (s *stubSage) GetDatasets() (any, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.datasets, nil
}

func (s *stubSage) AddDataset(name string) (any, error) {
	s.added = append(s.added, name)
	if s.addResp != nil {
		return s.addResp, nil
	}
	return map[string]any{"success": true}, nil
}

func (s *stubSage) DeleteDataset(name string) (any, error) {
	s.deleted = append(s.deleted, name)
	if s.deleteResp != nil {
		return s.deleteResp, nil
	}
	return map[string]any{"success": true}, nil
}

func (s *stubSage) AssignDataset(name string) (any, error) {
	s.assigned = append(s.assigned, name)
	if s.assignResp != nil {
		return s.assignResp, nil
	}
	return map[string]any{"success": true}, nil
}

func (s *stubSage) TrainWithFile(path string, opts api.TrainOptions) (any, error) {
	if s.trainFn != nil {
		return s.trainFn(path, opts)
	}
	return map[string]any{"success": true}, nil
}

func (s *stubSage) Query(message string, opts api.QueryOptions) (any, error) {
	s.queries = append(s.queries, message)
	if s.queryResp != nil {
		return s.queryResp, nil
	}
	return map[string]any{"success": true, "response": "stub answer"}, nil
}

func (s *stubSage) QueryWithFile(message, path string, opts api.QueryOptions) (any, error) {
	s.queries = append(s.queries, message)
	if s.queryResp != nil {
		return s.queryResp, nil
	}
	return map[string]any{"success": true, "response": "stub file answer"}, nil
}

func (s *stubSage) QueryPlugin(message, plugin string, opts api.QueryOptions) (any, error) {
	s.queries = append(s.queries, message)
	if s.queryResp != nil {
		return s.queryResp, nil
	}
	return map[string]any{"success": true, "response": "stub plugin answer"}, nil
}

func (s *stubSage) CountMonthlyTokens() (any, error) {
	if s.monthly != nil {
		return s.monthly, nil
	}
	return 0, nil
}

func (s *stubSage) CountMonthlyTeachTokens() (any, error) {
	if s.teach != nil {
		return s.teach, nil
	}
	return 0, nil
}

func (s *stubSage) GetModels() (any, error) {
	if s.modelsResp != nil {
		return s.modelsResp, nil
	}
	return []string{}, nil
}

// withStub routes newClient to the given stub for the duration of a test.
func withStub(t *testing.T, s *stubSage) {
	t.Helper()
	prev := newClient
	newClient = func() (api.Sage, error) { return s, nil }
	t.Cleanup(func() { newClient = prev })
}
