package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	classifySystem = "You are a Document Classification Agent for software documentation analysis."
	changesSystem  = "You are a Change Detection Agent for software update documents."
)

func TestLoadFixtures_BaseOnly(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "classify.json", `{"document_type":"tutorial"}`)
	writeFixture(t, dir, "ui_elements.json", `{"ui_elements":[]}`)

	fixtures, err := loadFixtures(dir)
	if err != nil {
		t.Fatalf("loadFixtures: %v", err)
	}

	if len(fixtures) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(fixtures))
	}

	// Each operation should have exactly 1 fixture (the base)
	for op, seq := range fixtures {
		if len(seq) != 1 {
			t.Errorf("operation %q: expected 1 fixture, got %d", op, len(seq))
		}
	}
}

func TestLoadFixtures_Sequential(t *testing.T) {
	dir := t.TempDir()

	// Numbered fixtures: first document is a tutorial, second release notes
	writeFixture(t, dir, "classify.1.json", `{"document_type":"tutorial"}`)
	writeFixture(t, dir, "classify.2.json", `{"document_type":"release_notes"}`)
	// Base fallback
	writeFixture(t, dir, "classify.json", `{"document_type":"unknown"}`)

	// Non-sequential operation
	writeFixture(t, dir, "changes.json", `{"version":"2.0","changes":[]}`)

	fixtures, err := loadFixtures(dir)
	if err != nil {
		t.Fatalf("loadFixtures: %v", err)
	}

	// classify should have 3 entries: .1, .2, base
	classifySeq := fixtures["classify"]
	if len(classifySeq) != 3 {
		t.Fatalf("classify: expected 3 fixtures, got %d", len(classifySeq))
	}

	// Verify order: numbered first (sorted), then base
	if !strings.Contains(classifySeq[0], "tutorial") {
		t.Errorf("fixture[0] should be tutorial, got: %s", classifySeq[0])
	}
	if !strings.Contains(classifySeq[1], "release_notes") {
		t.Errorf("fixture[1] should be release_notes, got: %s", classifySeq[1])
	}
	if !strings.Contains(classifySeq[2], "unknown") {
		t.Errorf("fixture[2] should be unknown, got: %s", classifySeq[2])
	}

	changesSeq := fixtures["changes"]
	if len(changesSeq) != 1 {
		t.Fatalf("changes: expected 1 fixture, got %d", len(changesSeq))
	}
}

func TestLoadFixtures_NumberedOnly(t *testing.T) {
	dir := t.TempDir()

	writeFixture(t, dir, "impact.1.json", `{"affected_triples":[]}`)
	writeFixture(t, dir, "impact.2.json", `{"affected_triples":[{"triple_index":0}]}`)

	fixtures, err := loadFixtures(dir)
	if err != nil {
		t.Fatalf("loadFixtures: %v", err)
	}

	seq := fixtures["impact"]
	if len(seq) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(seq))
	}
}

func TestLoadFixtures_EmptyDir(t *testing.T) {
	dir := t.TempDir()

	_, err := loadFixtures(dir)
	if err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestDetectOp(t *testing.T) {
	tests := []struct {
		system string
		want   string
	}{
		{classifySystem, "classify"},
		{"You are a UI Element Extraction Agent for software documentation.", "ui_elements"},
		{"You are a Feature Extraction Agent for software documentation.", "features"},
		{"You are a Procedure Extraction Agent for software documentation.", "procedures"},
		{"You are a Relationship Extraction Agent for software documentation.", "relationships"},
		{"You are a Version Resolution Agent for software documentation.", "versions"},
		{changesSystem, "changes"},
		{"You are an Impact Analysis Agent for knowledge graph maintenance.", "impact"},
		{"You are a helpful assistant.", ""},
	}

	for _, tt := range tests {
		got := detectOp([]chatMessage{
			{Role: "system", Content: tt.system},
			{Role: "user", Content: "some document text"},
		})
		if got != tt.want {
			t.Errorf("detectOp(%q) = %q, want %q", tt.system, got, tt.want)
		}
	}
}

func TestSequentialFixtureSelection(t *testing.T) {
	fixtures := map[string][]string{
		"classify": {
			`{"document_type":"tutorial"}`,
			`{"document_type":"release_notes"}`,
		},
		"changes": {
			`{"version":"2.0","changes":[]}`,
		},
	}

	s := newServer(fixtures)

	// First classify call → tutorial
	resp1 := doCompletion(t, s, classifySystem)
	if !strings.Contains(resp1, "tutorial") {
		t.Errorf("call 1: expected tutorial, got: %s", resp1)
	}

	// Second classify call → release_notes
	resp2 := doCompletion(t, s, classifySystem)
	if !strings.Contains(resp2, "release_notes") {
		t.Errorf("call 2: expected release_notes, got: %s", resp2)
	}

	// Third call (beyond sequence) → repeats last
	resp3 := doCompletion(t, s, classifySystem)
	if !strings.Contains(resp3, "release_notes") {
		t.Errorf("call 3: expected release_notes (repeat last), got: %s", resp3)
	}

	// Other operations are independent
	changesResp := doCompletion(t, s, changesSystem)
	if !strings.Contains(changesResp, "2.0") {
		t.Errorf("changes: expected version 2.0, got: %s", changesResp)
	}
}

func TestUnknownOperation(t *testing.T) {
	s := newServer(map[string][]string{
		"classify": {`{"document_type":"tutorial"}`},
	})

	body := strings.NewReader(`{"model":"m","messages":[{"role":"system","content":"You are a helpful assistant."},{"role":"user","content":"hi"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", body)
	w := httptest.NewRecorder()
	s.handleChatCompletions(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for undetectable operation, got %d", w.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	fixtures := map[string][]string{
		"classify": {`{"document_type":"tutorial"}`},
		"changes":  {`{"version":"2.0","changes":[]}`},
	}

	s := newServer(fixtures)

	doCompletion(t, s, classifySystem)
	doCompletion(t, s, classifySystem)
	doCompletion(t, s, changesSystem)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	s.handleStats(w, req)

	var stats struct {
		TotalCalls int64            `json:"total_calls"`
		CallsByOp  map[string]int64 `json:"calls_by_op"`
	}
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}

	if stats.TotalCalls != 3 {
		t.Errorf("total_calls: expected 3, got %d", stats.TotalCalls)
	}
	if stats.CallsByOp["classify"] != 2 {
		t.Errorf("classify calls: expected 2, got %d", stats.CallsByOp["classify"])
	}
	if stats.CallsByOp["changes"] != 1 {
		t.Errorf("changes calls: expected 1, got %d", stats.CallsByOp["changes"])
	}
}

func TestRequestsEndpoint(t *testing.T) {
	s := newServer(map[string][]string{
		"classify": {`{"document_type":"tutorial"}`},
	})

	doCompletion(t, s, classifySystem)

	req := httptest.NewRequest(http.MethodGet, "/requests?op=classify", nil)
	w := httptest.NewRecorder()
	s.handleRequests(w, req)

	var captured struct {
		RequestsByOp map[string][]capturedRequest `json:"requests_by_op"`
	}
	if err := json.NewDecoder(w.Body).Decode(&captured); err != nil {
		t.Fatalf("decode requests: %v", err)
	}

	reqs := captured.RequestsByOp["classify"]
	if len(reqs) != 1 {
		t.Fatalf("expected 1 captured request, got %d", len(reqs))
	}
	if reqs[0].CallIndex != 1 {
		t.Errorf("call_index: expected 1, got %d", reqs[0].CallIndex)
	}
	if len(reqs[0].Messages) != 2 {
		t.Errorf("expected 2 captured messages, got %d", len(reqs[0].Messages))
	}
}

func TestNumberedFileRegex(t *testing.T) {
	tests := []struct {
		filename string
		wantBase string
		wantNum  string
		match    bool
	}{
		{"classify.1.json", "classify", "1", true},
		{"classify.2.json", "classify", "2", true},
		{"classify.10.json", "classify", "10", true},
		{"classify.json", "", "", false},
		{"ui_elements.json", "", "", false},
	}

	for _, tt := range tests {
		matches := numberedFileRe.FindStringSubmatch(tt.filename)
		if tt.match {
			if matches == nil {
				t.Errorf("%s: expected match, got nil", tt.filename)
				continue
			}
			if matches[1] != tt.wantBase {
				t.Errorf("%s: base=%q, want %q", tt.filename, matches[1], tt.wantBase)
			}
			if matches[2] != tt.wantNum {
				t.Errorf("%s: num=%q, want %q", tt.filename, matches[2], tt.wantNum)
			}
		} else {
			if matches != nil {
				t.Errorf("%s: expected no match, got %v", tt.filename, matches)
			}
		}
	}
}

// --- helpers ---

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func doCompletion(t *testing.T, s *server, system string) string {
	t.Helper()
	payload, _ := json.Marshal(chatRequest{
		Model: "mock",
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: "document text"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(string(payload)))
	w := httptest.NewRecorder()
	s.handleChatCompletions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body: %s", w.Code, w.Body.String())
	}

	var resp chatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Choices) == 0 {
		t.Fatalf("no choices in response")
	}

	return resp.Choices[0].Message.Content
}
