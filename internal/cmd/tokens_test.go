package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTokens_Human(t *testing.T) {
	stub := &stubSage{monthly: 15750, teach: 3280}
	withStub(t, stub)

	var stdout, stderr bytes.Buffer
	if err := ExecuteWithArgs([]string{"tokens"}, &stdout, &stderr); err != nil {
		t.Fatalf("ExecuteWithArgs() error = %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "Query Tokens:    15,750") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "Teaching Tokens: 3,280") {
		t.Errorf("output:\n%s", out)
	}
}

func TestTokens_JSON(t *testing.T) {
	stub := &stubSage{
		monthly: map[string]any{"status": 200, "response": float64(120)},
		teach:   7,
	}
	withStub(t, stub)

	var stdout, stderr bytes.Buffer
	if err := ExecuteWithArgs([]string{"--format=json", "tokens"}, &stdout, &stderr); err != nil {
		t.Fatalf("ExecuteWithArgs() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("parse JSON: %v\noutput: %s", err, stdout.String())
	}
	if result["monthly_tokens"].(float64) != 120 {
		t.Errorf("monthly_tokens = %v", result["monthly_tokens"])
	}
	if result["teach_tokens"].(float64) != 7 {
		t.Errorf("teach_tokens = %v", result["teach_tokens"])
	}
}

func TestTokens_APIError(t *testing.T) {
	stub := &stubSage{monthly: map[string]any{"status": 401, "error": "expired token"}}
	withStub(t, stub)

	var stdout, stderr bytes.Buffer
	err := ExecuteWithArgs([]string{"tokens"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "expired token") {
		t.Errorf("expected API error surfaced, got %v", err)
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{15750, "15,750"},
		{1234567, "1,234,567"},
		{-4321, "-4,321"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.in); got != tt.want {
			t.Errorf("groupDigits(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModels(t *testing.T) {
	stub := &stubSage{modelsResp: []string{"gpt-4o", "claude-3.5-sonnet"}}
	withStub(t, stub)

	var stdout, stderr bytes.Buffer
	if err := ExecuteWithArgs([]string{"models"}, &stdout, &stderr); err != nil {
		t.Fatalf("ExecuteWithArgs() error = %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "gpt-4o") || !strings.Contains(out, "claude-3.5-sonnet") {
		t.Errorf("output:\n%s", out)
	}
}

func TestModels_JSON(t *testing.T) {
	stub := &stubSage{modelsResp: []string{"gpt-4o"}}
	withStub(t, stub)

	var stdout, stderr bytes.Buffer
	if err := ExecuteWithArgs([]string{"--format=json", "models"}, &stdout, &stderr); err != nil {
		t.Fatalf("ExecuteWithArgs() error = %v", err)
	}
	var result map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("parse JSON: %v\noutput: %s", err, stdout.String())
	}
	if result["count"].(float64) != 1 {
		t.Errorf("count = %v", result["count"])
	}
}
