package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/c360studio/karma/graph"
	"github.com/c360studio/karma/impact"
	"github.com/c360studio/karma/llm"
	"github.com/c360studio/karma/vocabulary/usage"
)

// Prompt truncation limits, in characters. Classification only needs the
// document head; version resolution only needs enough context to spot
// version mentions.
const (
	classifyPreviewLimit = 3000
	versionContextLimit  = 2000
	impactTripleLimit    = 50
)

// Extractor is the LLM-backed extraction service.
type Extractor struct {
	client      llm.Completer
	logger      *slog.Logger
	temperature *float64
	tokens      atomic.Int64
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(x *Extractor) {
		x.logger = logger
	}
}

// WithTemperature sets the sampling temperature for all extraction calls.
// Unset uses the endpoint default.
func WithTemperature(t float64) ExtractorOption {
	return func(x *Extractor) {
		x.temperature = &t
	}
}

// NewExtractor creates an extraction service backed by the given completer.
func NewExtractor(client llm.Completer, opts ...ExtractorOption) *Extractor {
	x := &Extractor{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

var _ Service = (*Extractor)(nil)

// complete sends a system+user message pair and returns the raw content.
func (x *Extractor) complete(ctx context.Context, op, system, user string) (string, error) {
	resp, err := x.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: x.temperature,
	})
	if err != nil {
		return "", unavailable(op, err)
	}

	x.tokens.Add(int64(resp.Usage.TotalTokens))
	x.logger.Debug("Extraction call completed",
		"op", op,
		"request_id", resp.RequestID,
		"model", resp.Model,
		"tokens", resp.Usage.TotalTokens)

	return resp.Content, nil
}

// TokensUsed reports the cumulative tokens consumed across all calls.
func (x *Extractor) TokensUsed() int64 {
	return x.tokens.Load()
}

// truncate cuts s to at most limit characters.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// softwareContext renders the optional software hint line for prompts.
func softwareContext(software string) string {
	if software == "" {
		return ""
	}
	return "Software: " + software + "\n"
}

// Classify determines document type, software, and version.
func (x *Extractor) Classify(ctx context.Context, text string) (Classification, error) {
	prompt := fmt.Sprintf(`Analyze this document and provide classification in JSON format:

Document (first 3000 chars):
%s

Return a JSON object with these fields:
- document_type: One of [tutorial, reference, release_notes, faq, troubleshooting, quick_start, unknown]
- software: Name of the software product
- version: Version number or "N/A" if not found
- date: Publication date or "N/A" if not found
- relevance_score: 0.0 to 1.0 for how useful this is for usage knowledge extraction
- main_topics: List of main features/topics covered
- rationale: Brief explanation of your classification

Return only valid JSON, no other text.`, truncate(text, classifyPreviewLimit))

	content, err := x.complete(ctx, "classify", classifySystemPrompt, prompt)
	if err != nil {
		return Classification{}, err
	}

	var parsed struct {
		DocumentType   string   `json:"document_type"`
		Software       string   `json:"software"`
		Version        string   `json:"version"`
		Date           string   `json:"date"`
		RelevanceScore float64  `json:"relevance_score"`
		MainTopics     []string `json:"main_topics"`
		Rationale      string   `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &parsed); err != nil {
		return Classification{}, malformed("classify", err)
	}

	c := Classification{
		DocumentType:   usage.ParseDocumentType(parsed.DocumentType),
		Software:       parsed.Software,
		Version:        parsed.Version,
		Date:           parsed.Date,
		RelevanceScore: parsed.RelevanceScore,
		MainTopics:     parsed.MainTopics,
		Rationale:      parsed.Rationale,
	}

	// "N/A" is the prompt's explicit not-found marker, not a version label.
	if strings.EqualFold(c.Version, "N/A") {
		c.Version = ""
	}
	if strings.EqualFold(c.Date, "N/A") {
		c.Date = ""
	}

	return c, nil
}

// ExtractUIElements finds UI elements in a text segment. All results carry
// the UIElement entity type; the finer sub-type (Button, Panel, Slider)
// stays in the description the model provides.
func (x *Extractor) ExtractUIElements(ctx context.Context, text, software string) ([]graph.Entity, error) {
	prompt := fmt.Sprintf(`%sExtract all UI elements from this text.

Text:
%s

Return a JSON object with an "ui_elements" array. Each element should have:
- name: Element name
- type: One of [Button, Menu, MenuItem, Panel, Tool, Dialog, Tab, Slider, Checkbox, Dropdown, Toolbar, Field, Icon]
- parent_path: Navigation path (e.g., "Edit menu" or "Window > Properties")
- description: What it does (brief, or empty string if not described)

Return only valid JSON.`, softwareContext(software), text)

	content, err := x.complete(ctx, "ui_elements", uiElementsSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		UIElements []struct {
			Name        string `json:"name"`
			Type        string `json:"type"`
			ParentPath  string `json:"parent_path"`
			Description string `json:"description"`
		} `json:"ui_elements"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &parsed); err != nil {
		return nil, malformed("ui_elements", err)
	}

	var entities []graph.Entity
	for _, elem := range parsed.UIElements {
		if elem.Name == "" {
			continue
		}
		e := graph.NewEntity(usage.EntityUIElement, elem.Name)
		e.Description = elem.Description
		e.ParentPath = elem.ParentPath
		e.Software = software
		entities = append(entities, e)
	}

	return entities, nil
}

// ExtractFeatures finds features, concepts, settings, file formats,
// shortcuts, and outcomes in a text segment.
func (x *Extractor) ExtractFeatures(ctx context.Context, text, software string) ([]graph.Entity, error) {
	prompt := fmt.Sprintf(`%sExtract all features, concepts, settings, file formats, shortcuts, and outcomes from this text.

Text:
%s

Return a JSON object with an "entities" array. Each entity should have:
- name: Entity name
- type: One of [Feature, Concept, Setting, FileFormat, Constraint, Shortcut, Outcome]
- description: What it is/does
- related_to: List of related entity names (can be empty)

Return only valid JSON.`, softwareContext(software), text)

	content, err := x.complete(ctx, "features", featuresSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Entities []struct {
			Name        string `json:"name"`
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &parsed); err != nil {
		return nil, malformed("features", err)
	}

	var entities []graph.Entity
	for _, elem := range parsed.Entities {
		if elem.Name == "" {
			continue
		}
		e := graph.NewEntity(usage.ParseEntityType(elem.Type), elem.Name)
		e.Description = elem.Description
		e.Software = software
		entities = append(entities, e)
	}

	return entities, nil
}

// ExtractProcedures finds step-by-step procedures in a text segment.
// Results without a name or without steps are discarded.
func (x *Extractor) ExtractProcedures(ctx context.Context, text, software string) ([]graph.Procedure, error) {
	prompt := fmt.Sprintf(`%sExtract all step-by-step procedures from this text.

Text:
%s

Return a JSON object with a "procedures" array. Each procedure should have:
- name: Descriptive procedure name
- description: What it accomplishes
- prerequisites: List of requirements before starting (can be empty)
- steps: Ordered list of step instructions
- outcome: What user achieves at the end

Only extract actual procedures with clear sequential steps. Don't invent steps that aren't in the text.
Return only valid JSON. Return empty array if no clear procedures are found.`, softwareContext(software), text)

	content, err := x.complete(ctx, "procedures", proceduresSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Procedures []struct {
			Name          string   `json:"name"`
			Description   string   `json:"description"`
			Prerequisites []string `json:"prerequisites"`
			Steps         []string `json:"steps"`
			Outcome       string   `json:"outcome"`
		} `json:"procedures"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &parsed); err != nil {
		return nil, malformed("procedures", err)
	}

	var procedures []graph.Procedure
	for _, p := range parsed.Procedures {
		if p.Name == "" || len(p.Steps) == 0 {
			continue
		}
		procedures = append(procedures, graph.Procedure{
			ID:            graph.ProcedureID(p.Name, software),
			Name:          p.Name,
			Description:   p.Description,
			Steps:         p.Steps,
			Prerequisites: p.Prerequisites,
			Outcome:       p.Outcome,
			Software:      software,
		})
	}

	return procedures, nil
}

// ExtractRelationships finds relationships between the given entities.
// Heads and tails resolve their entity types from the supplied entity list;
// names the list does not hold are typed Unknown. Unrecognized relation
// strings map to the generic related_to.
func (x *Extractor) ExtractRelationships(ctx context.Context, text string, entities []graph.Entity) ([]graph.Triple, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	var entityList strings.Builder
	byName := make(map[string]graph.Entity, len(entities))
	for _, e := range entities {
		fmt.Fprintf(&entityList, "- %s (%s)\n", e.Name, e.Type)
		byName[strings.ToLower(e.Name)] = e
	}

	prompt := fmt.Sprintf(`Given this text and list of entities, extract relationships between them.

Text:
%s

Entities:
%s
Valid relationship types:
- located_in, accessed_via, contains (UI navigation)
- activates, requires, enables, enhances, conflicts_with, alternative_to (features)
- achieves, prerequisite_for (procedures)
- shortcut_for, configured_by (shortcuts/settings)

Return a JSON object with a "relationships" array. Each relationship:
- head: Subject entity name (must be from entity list)
- relation: One of the valid relationship types
- tail: Object entity name (must be from entity list)
- confidence: 0.0 to 1.0

Only extract relationships explicitly supported by the text.
Return only valid JSON.`, text, entityList.String())

	content, err := x.complete(ctx, "relationships", relationshipsSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Relationships []struct {
			Head       string  `json:"head"`
			Relation   string  `json:"relation"`
			Tail       string  `json:"tail"`
			Confidence float64 `json:"confidence"`
		} `json:"relationships"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &parsed); err != nil {
		return nil, malformed("relationships", err)
	}

	var triples []graph.Triple
	for _, rel := range parsed.Relationships {
		if rel.Head == "" || rel.Tail == "" {
			continue
		}

		headType := usage.EntityUnknown
		if e, ok := byName[strings.ToLower(rel.Head)]; ok {
			headType = e.Type
		}
		tailType := usage.EntityUnknown
		if e, ok := byName[strings.ToLower(rel.Tail)]; ok {
			tailType = e.Type
		}

		confidence := rel.Confidence
		if confidence == 0 {
			confidence = 0.5
		}

		triples = append(triples, graph.Triple{
			Head:       rel.Head,
			Relation:   usage.ParseRelationType(rel.Relation),
			Tail:       rel.Tail,
			HeadType:   headType,
			TailType:   tailType,
			Confidence: confidence,
			Status:     usage.StatusActive,
		})
	}

	return triples, nil
}

// ResolveVersions assigns version metadata to triples. Triples without
// explicit version evidence fall back to "<detectedVersion>+" when a
// document version is known; a malformed response degrades to that fallback
// for every triple rather than failing.
func (x *Extractor) ResolveVersions(ctx context.Context, triples []graph.Triple, contextText, detectedVersion string) ([]graph.Triple, error) {
	if len(triples) == 0 {
		return nil, nil
	}

	var descriptions strings.Builder
	for i, t := range triples {
		fmt.Fprintf(&descriptions, "%d. %s\n", i+1, t)
	}

	versionContext := ""
	if detectedVersion != "" {
		versionContext = "Document version: " + detectedVersion + "\n"
	}

	prompt := fmt.Sprintf(`%sAnalyze these knowledge triples and determine version information for each.

Triples:
%s
Context from document:
%s

For each triple (numbered), provide:
- introduced_version: Version when this became true (empty string if unknown)
- valid_range: Version range like "2020+", "2019-2023", or "unknown"
- version_notes: Brief note about version applicability

Return JSON with "versions" array, one entry per triple in order:
{"versions": [{"introduced_version": "...", "valid_range": "...", "version_notes": "..."}, ...]}

Return only valid JSON.`, versionContext, descriptions.String(), truncate(contextText, versionContextLimit))

	content, err := x.complete(ctx, "versions", versionsSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	resolved := make([]graph.Triple, len(triples))
	copy(resolved, triples)

	var parsed struct {
		Versions []struct {
			IntroducedVersion string `json:"introduced_version"`
			ValidRange        string `json:"valid_range"`
		} `json:"versions"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &parsed); err != nil {
		x.logger.Warn("Failed to parse version resolution response, using document version fallback",
			"error", err)
		for i := range resolved {
			if detectedVersion != "" {
				resolved[i].ValidRange = detectedVersion + "+"
			}
		}
		return resolved, nil
	}

	for i := range resolved {
		if i < len(parsed.Versions) {
			v := parsed.Versions[i]
			resolved[i].IntroducedVersion = v.IntroducedVersion
			resolved[i].ValidRange = v.ValidRange
			if resolved[i].ValidRange == "" {
				resolved[i].ValidRange = "unknown"
			}
		}

		// No specific version found: anchor to the document's version.
		if resolved[i].IntroducedVersion == "" && detectedVersion != "" {
			resolved[i].ValidRange = detectedVersion + "+"
		}
	}

	return resolved, nil
}

// DetectChanges extracts structured change records from release notes.
// Records without an entity name are discarded; each record inherits the
// detected release version.
func (x *Extractor) DetectChanges(ctx context.Context, text string) (ChangeSet, error) {
	prompt := fmt.Sprintf(`Extract all changes from this release notes / changelog document.

Document:
%s

Return a JSON object with:
- changes: Array of change records
- version: The version these changes apply to

Each change should have:
- change_type: One of [added, removed, changed, moved, renamed, fixed]
- entity_name: What was changed
- entity_type: One of [Feature, UIElement, Setting, Shortcut, FileFormat, Concept]
- old_value: Previous state (empty for added)
- new_value: New state (empty for removed, or replacement for removed items)
- description: Details

Return only valid JSON.`, text)

	content, err := x.complete(ctx, "changes", changesSystemPrompt, prompt)
	if err != nil {
		return ChangeSet{}, err
	}

	var parsed struct {
		Version string `json:"version"`
		Changes []struct {
			ChangeType  string `json:"change_type"`
			EntityName  string `json:"entity_name"`
			EntityType  string `json:"entity_type"`
			OldValue    string `json:"old_value"`
			NewValue    string `json:"new_value"`
			Description string `json:"description"`
		} `json:"changes"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &parsed); err != nil {
		return ChangeSet{}, malformed("changes", err)
	}

	set := ChangeSet{Version: parsed.Version}
	for _, c := range parsed.Changes {
		if c.EntityName == "" {
			continue
		}
		set.Changes = append(set.Changes, graph.ChangeRecord{
			ChangeType:  usage.ParseChangeType(c.ChangeType),
			EntityName:  c.EntityName,
			EntityType:  usage.ParseEntityType(c.EntityType),
			OldValue:    c.OldValue,
			NewValue:    c.NewValue,
			Version:     parsed.Version,
			Description: c.Description,
		})
	}

	return set, nil
}

// AnalyzeImpact judges how changes affect existing triples. The prompt
// carries at most impactTripleLimit existing triples; assessments reference
// triples by index into existing.
func (x *Extractor) AnalyzeImpact(ctx context.Context, changes []graph.ChangeRecord, existing []graph.Triple) ([]impact.Assessment, error) {
	if len(changes) == 0 || len(existing) == 0 {
		return nil, nil
	}

	var changesDesc strings.Builder
	for _, c := range changes {
		fmt.Fprintf(&changesDesc, "- %s: %s (%s)", strings.ToUpper(string(c.ChangeType)), c.EntityName, c.EntityType)
		if c.OldValue != "" || c.NewValue != "" {
			fmt.Fprintf(&changesDesc, " from '%s' to '%s'", c.OldValue, c.NewValue)
		}
		if c.Description != "" {
			fmt.Fprintf(&changesDesc, " - %s", c.Description)
		}
		changesDesc.WriteByte('\n')
	}

	limited := existing
	if len(limited) > impactTripleLimit {
		limited = limited[:impactTripleLimit]
	}
	var triplesDesc strings.Builder
	for _, t := range limited {
		fmt.Fprintf(&triplesDesc, "- %s\n", t)
	}

	prompt := fmt.Sprintf(`Analyze how these changes affect the existing knowledge triples.

Changes in this update:
%s
Existing knowledge triples:
%s
For each affected triple, provide:
- triple_index: Index in the triples list (0-based)
- impact: One of [deprecated, needs_update, unaffected]
- reason: Why it's affected
- suggested_update: New triple if needs_update, or empty

Return JSON: {"affected_triples": [...]}
Only include triples that are deprecated or need updates.
Return only valid JSON.`, changesDesc.String(), triplesDesc.String())

	content, err := x.complete(ctx, "impact", impactSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		AffectedTriples []impact.Assessment `json:"affected_triples"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &parsed); err != nil {
		return nil, malformed("impact", err)
	}

	return parsed.AffectedTriples, nil
}
