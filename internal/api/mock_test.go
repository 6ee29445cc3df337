package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asksage-tools/asksage-cli/internal/api"
	"github.com/asksage-tools/asksage-cli/internal/response"
)

func TestMock_DatasetLifecycle(t *testing.T) {
	m := api.NewMock()

	raw, err := m.GetDatasets()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(response.StringList(raw)); got != 2 {
		t.Fatalf("seeded datasets = %d, want 2", got)
	}

	raw, _ = m.AddDataset("fresh")
	if res := response.Normalize(raw); !res.OK {
		t.Errorf("AddDataset failed: %s", res.Err)
	}

	raw, _ = m.AddDataset("fresh")
	if res := response.Normalize(raw); res.OK {
		t.Error("duplicate AddDataset should fail")
	}

	raw, _ = m.DeleteDataset("user_custom_123_fresh_content")
	if res := response.Normalize(raw); !res.OK {
		t.Errorf("DeleteDataset failed: %s", res.Err)
	}

	raw, _ = m.DeleteDataset("user_custom_123_fresh_content")
	if res := response.Normalize(raw); res.OK {
		t.Error("deleting a missing dataset should fail")
	}
}

func TestMock_TrainWithFile(t *testing.T) {
	m := api.NewMock()

	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("some content"), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := m.TrainWithFile(path, api.TrainOptions{Dataset: "user_custom_123_test_content"})
	if err != nil {
		t.Fatal(err)
	}
	if res := response.Normalize(raw); !res.OK {
		t.Errorf("training failed: %s", res.Err)
	}

	raw, _ = m.TrainWithFile("/nonexistent/file.txt", api.TrainOptions{})
	if res := response.Normalize(raw); res.OK {
		t.Error("training a missing file should fail")
	}
}

func TestMock_QueryAndTokens(t *testing.T) {
	m := api.NewMock()

	raw, err := m.Query("hello", api.QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	res := response.Normalize(raw)
	if !res.OK {
		t.Fatalf("query failed: %s", res.Err)
	}
	if response.Message(res.Payload) == "" {
		t.Error("expected a response message")
	}

	raw, _ = m.CountMonthlyTokens()
	n, err := response.TokenCount(raw)
	if err != nil || n != 15750 {
		t.Errorf("CountMonthlyTokens = (%d, %v)", n, err)
	}
}
