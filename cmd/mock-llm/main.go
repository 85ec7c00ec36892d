// Package main implements a mock LLM server for offline pipeline testing.
// It serves OpenAI-compatible /v1/chat/completions responses from JSON
// fixture files, routing by the extraction operation detected in the system
// prompt. This eliminates the need for a real LLM when exercising the
// ingest and maintenance flows end to end, making runs fast, deterministic,
// and offline-capable.
//
// Usage:
//
//	mock-llm -fixtures /path/to/fixtures -port 11434
//
// Point karma at it with provider "ollama" and endpoint
// http://localhost:11434/v1; the model name is ignored for routing.
//
// Fixture files are JSON named by operation: classify.json, ui_elements.json,
// features.json, procedures.json, relationships.json, versions.json,
// changes.json, impact.json. The file content is returned verbatim as the
// assistant message.
//
// Sequential fixtures: if numbered files exist (e.g. "classify.1.json",
// "classify.2.json"), the Nth call for that operation returns the Nth
// fixture, then the base "classify.json" repeats as the fallback. This lets
// a test feed different classifications to successive documents.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// --- OpenAI-compatible types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// --- Operation routing ---

// opMarkers maps the agent-role line of each extraction system prompt to its
// operation name. Routing on the role line keeps the server decoupled from
// the rest of the prompt text.
var opMarkers = []struct {
	marker string
	op     string
}{
	{"Document Classification Agent", "classify"},
	{"UI Element Extraction Agent", "ui_elements"},
	{"Feature Extraction Agent", "features"},
	{"Procedure Extraction Agent", "procedures"},
	{"Relationship Extraction Agent", "relationships"},
	{"Version Resolution Agent", "versions"},
	{"Change Detection Agent", "changes"},
	{"Impact Analysis Agent", "impact"},
}

// detectOp identifies the extraction operation from the system message.
func detectOp(messages []chatMessage) string {
	for _, m := range messages {
		if m.Role != "system" {
			continue
		}
		for _, om := range opMarkers {
			if strings.Contains(m.Content, om.marker) {
				return om.op
			}
		}
	}
	return ""
}

// --- Server ---

// capturedRequest stores the key fields of an incoming request for test
// verification.
type capturedRequest struct {
	Op        string        `json:"op"`
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	CallIndex int           `json:"call_index"` // 1-indexed per-operation call number
	Timestamp int64         `json:"timestamp"`
}

type server struct {
	fixtures map[string][]string // operation → ordered fixture contents
	calls    atomic.Int64        // total calls served

	// Per-operation call counters for sequential fixture selection.
	opCalls   map[string]*atomic.Int64
	opCallsMu sync.Mutex // protects lazy init of opCalls entries

	// Per-operation request capture for prompt verification.
	opRequests   map[string][]capturedRequest
	opRequestsMu sync.Mutex
}

func newServer(fixtures map[string][]string) *server {
	return &server{
		fixtures:   fixtures,
		opCalls:    make(map[string]*atomic.Int64),
		opRequests: make(map[string][]capturedRequest),
	}
}

// captureRequest stores a request for later retrieval via the /requests
// endpoint.
func (s *server) captureRequest(op string, req chatRequest, callIndex int) {
	s.opRequestsMu.Lock()
	defer s.opRequestsMu.Unlock()
	s.opRequests[op] = append(s.opRequests[op], capturedRequest{
		Op:        op,
		Model:     req.Model,
		Messages:  req.Messages,
		CallIndex: callIndex,
		Timestamp: time.Now().UnixMilli(),
	})
}

// getOpCounter returns the call counter for an operation, creating it lazily.
func (s *server) getOpCounter(op string) *atomic.Int64 {
	s.opCallsMu.Lock()
	defer s.opCallsMu.Unlock()
	if c, ok := s.opCalls[op]; ok {
		return c
	}
	c := &atomic.Int64{}
	s.opCalls[op] = c
	return c
}

func main() {
	fixtureDir := flag.String("fixtures", "", "directory containing fixture response files")
	port := flag.Int("port", 11434, "port to listen on")
	flag.Parse()

	// Allow env var override
	if envDir := os.Getenv("MOCK_LLM_FIXTURES"); envDir != "" && *fixtureDir == "" {
		*fixtureDir = envDir
	}
	if *fixtureDir == "" {
		*fixtureDir = "/fixtures"
	}

	fixtures, err := loadFixtures(*fixtureDir)
	if err != nil {
		log.Fatalf("Failed to load fixtures from %s: %v", *fixtureDir, err)
	}
	log.Printf("Loaded %d operation(s) from %s", len(fixtures), *fixtureDir)
	for op, seq := range fixtures {
		log.Printf("  operation: %s (%d fixture(s))", op, len(seq))
	}

	s := newServer(fixtures)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/chat/completions", s.handleChatCompletions)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/requests", s.handleRequests)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Mock LLM server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	callNum := s.calls.Add(1)

	op := detectOp(req.Messages)
	if op == "" {
		log.Printf("[call %d] WARNING: could not detect operation, returning error", callNum)
		http.Error(w, "could not detect extraction operation from system prompt", http.StatusNotFound)
		return
	}
	log.Printf("[call %d] op=%s model=%s messages=%d", callNum, op, req.Model, len(req.Messages))

	seq, ok := s.fixtures[op]
	if !ok {
		log.Printf("[call %d] WARNING: no fixture for op=%q, returning error", callNum, op)
		http.Error(w, fmt.Sprintf("no fixture for operation %q", op), http.StatusNotFound)
		return
	}

	// Select fixture from sequence based on per-operation call count
	counter := s.getOpCounter(op)
	callIndex := int(counter.Add(1) - 1) // 0-indexed

	s.captureRequest(op, req, callIndex+1)

	var content string
	if callIndex < len(seq) {
		content = seq[callIndex]
	} else {
		content = seq[len(seq)-1] // repeat last fixture
	}

	resp := chatResponse{
		ID:      fmt.Sprintf("mock-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []chatChoice{
			{
				Index: 0,
				Message: chatMessage{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: chatUsage{
			PromptTokens:     len(content) / 4, // rough estimate
			CompletionTokens: len(content) / 4,
			TotalTokens:      len(content) / 2,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
	log.Printf("[call %d] responded with %d bytes for op=%s", callNum, len(content), op)
}

// handleStats returns call counts for test assertions.
func (s *server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.opCallsMu.Lock()
	callsByOp := make(map[string]int64, len(s.opCalls))
	for op, counter := range s.opCalls {
		callsByOp[op] = counter.Load()
	}
	s.opCallsMu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total_calls": s.calls.Load(),
		"calls_by_op": callsByOp,
	})
}

// handleRequests returns captured request bodies for test assertions.
// Query params:
//   - op: filter by operation name (optional, returns all if omitted)
//   - call: filter by call index, 1-indexed (optional)
//
// Returns {"requests_by_op": {"classify": [...], ...}}
func (s *server) handleRequests(w http.ResponseWriter, r *http.Request) {
	opFilter := r.URL.Query().Get("op")
	callFilter := r.URL.Query().Get("call")

	s.opRequestsMu.Lock()
	result := make(map[string][]capturedRequest)
	for op, reqs := range s.opRequests {
		if opFilter != "" && op != opFilter {
			continue
		}
		if callFilter != "" {
			callIdx, err := strconv.Atoi(callFilter)
			if err == nil {
				for _, req := range reqs {
					if req.CallIndex == callIdx {
						result[op] = append(result[op], req)
					}
				}
				continue
			}
		}
		result[op] = reqs
	}
	s.opRequestsMu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"requests_by_op": result,
	})
}

// numberedFileRe matches files like "classify.1.json", "changes.2.json".
var numberedFileRe = regexp.MustCompile(`^(.+)\.(\d+)\.json$`)

// loadFixtures reads JSON files from dir and returns a map of
// operation → content sequence.
//
// For each operation, fixtures are ordered:
//  1. Numbered files (op.1.json, op.2.json, ...) in numeric order
//  2. Base file (op.json) appended as the final fallback
func loadFixtures(dir string) (map[string][]string, error) {
	baseFiles := make(map[string]string)             // op → content
	numberedFiles := make(map[string]map[int]string) // op → {index → content}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		if !json.Valid(data) {
			return fmt.Errorf("invalid JSON in %s", path)
		}

		content := string(data)

		if matches := numberedFileRe.FindStringSubmatch(info.Name()); matches != nil {
			op := matches[1]
			index, _ := strconv.Atoi(matches[2])
			if numberedFiles[op] == nil {
				numberedFiles[op] = make(map[int]string)
			}
			numberedFiles[op][index] = content
			return nil
		}

		op := strings.TrimSuffix(info.Name(), ".json")
		baseFiles[op] = content
		return nil
	})

	if err != nil {
		return nil, err
	}

	fixtures := make(map[string][]string)

	allOps := make(map[string]bool)
	for op := range baseFiles {
		allOps[op] = true
	}
	for op := range numberedFiles {
		allOps[op] = true
	}

	for op := range allOps {
		var seq []string

		if numbered, ok := numberedFiles[op]; ok {
			indices := make([]int, 0, len(numbered))
			for idx := range numbered {
				indices = append(indices, idx)
			}
			sort.Ints(indices)

			for _, idx := range indices {
				seq = append(seq, numbered[idx])
			}
		}

		if base, ok := baseFiles[op]; ok {
			seq = append(seq, base)
		}

		if len(seq) > 0 {
			fixtures[op] = seq
		}
	}

	if len(fixtures) == 0 {
		return nil, fmt.Errorf("no fixture files found in %s", dir)
	}

	return fixtures, nil
}
