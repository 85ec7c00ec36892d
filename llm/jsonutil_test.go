package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare object",
			content: `{"software": "Photoshop"}`,
			want:    `{"software": "Photoshop"}`,
		},
		{
			name:    "markdown code block",
			content: "Here you go:\n```json\n{\"software\": \"Photoshop\"}\n```\nDone.",
			want:    `{"software": "Photoshop"}`,
		},
		{
			name:    "code block without language tag",
			content: "```\n{\"a\": 1}\n```",
			want:    `{"a": 1}`,
		},
		{
			name:    "surrounding prose",
			content: `The classification is {"doc_type": "manual"} as requested.`,
			want:    `{"doc_type": "manual"}`,
		},
		{
			name:    "no json at all",
			content: "I could not produce a result.",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.content))
		})
	}
}

func TestExtractJSON_CleansArtifacts(t *testing.T) {
	content := `{
	"name": "Crop Tool", // the tool name
	"aliases": ["crop",],
}`

	got := ExtractJSON(content)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Equal(t, "Crop Tool", parsed["name"])
}

func TestExtractJSON_CommentInsideStringSurvives(t *testing.T) {
	content := `{"url": "http://example.com/docs"}`

	got := ExtractJSON(content)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Equal(t, "http://example.com/docs", parsed["url"])
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare array",
			content: `[{"head": "A"}]`,
			want:    `[{"head": "A"}]`,
		},
		{
			name:    "markdown code block",
			content: "```json\n[1, 2, 3]\n```",
			want:    "[1, 2, 3]",
		},
		{
			name:    "trailing comma removed",
			content: `[1, 2, 3,]`,
			want:    "[1, 2, 3]",
		},
		{
			name:    "no array",
			content: "nothing here",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONArray(tt.content))
		})
	}
}
