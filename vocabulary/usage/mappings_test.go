package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		input string
		want  EntityType
	}{
		{"UIElement", EntityUIElement},
		{"Feature", EntityFeature},
		{"Procedure", EntityProcedure},
		{"Version", EntityVersion},
		{"Unknown", EntityUnknown},
		{"", EntityUnknown},
		{"Widget", EntityUnknown},
		{"feature", EntityUnknown}, // wire strings are case-sensitive
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseEntityType(tt.input), "input %q", tt.input)
	}
}

func TestParseRelationType(t *testing.T) {
	assert.Equal(t, RelationLocatedIn, ParseRelationType("located_in"))
	assert.Equal(t, RelationIntroducedIn, ParseRelationType("introduced_in"))
	assert.Equal(t, RelationShortcutFor, ParseRelationType("shortcut_for"))

	// Unknown relations fall back to the generic relation.
	assert.Equal(t, RelationRelatedTo, ParseRelationType("is"))
	assert.Equal(t, RelationRelatedTo, ParseRelationType(""))
}

func TestParseDocumentType(t *testing.T) {
	assert.Equal(t, DocReleaseNotes, ParseDocumentType("release_notes"))
	assert.Equal(t, DocTutorial, ParseDocumentType("tutorial"))
	assert.Equal(t, DocUnknown, ParseDocumentType("financial_report"))
}

func TestParseTripleStatus(t *testing.T) {
	assert.Equal(t, StatusDeprecated, ParseTripleStatus("deprecated"))
	assert.Equal(t, StatusNeedsReview, ParseTripleStatus("needs_review"))
	assert.Equal(t, StatusActive, ParseTripleStatus("bogus"))
}

func TestParseChangeType(t *testing.T) {
	assert.Equal(t, ChangeAdded, ParseChangeType("added"))
	assert.Equal(t, ChangeMoved, ParseChangeType("moved"))
	assert.Equal(t, ChangeChanged, ParseChangeType("deleted"))
}

func TestValidRelation(t *testing.T) {
	assert.True(t, ValidRelation("requires"))
	assert.True(t, ValidRelation("related_to"))
	assert.False(t, ValidRelation("REQUIRES"))
	assert.False(t, ValidRelation("is"))
}

func TestTripleStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDeprecated.Terminal())
	assert.True(t, StatusNeedsReview.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.False(t, StatusPending.Terminal())
}
