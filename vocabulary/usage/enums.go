package usage

// EntityType classifies a named object in the software's usage domain.
type EntityType string

const (
	// EntityUIElement covers buttons, menus, panels, tools, sliders, dialogs.
	EntityUIElement EntityType = "UIElement"

	// EntityFeature is a capability or function of the software.
	EntityFeature EntityType = "Feature"

	// EntityProcedure is a multi-step workflow.
	EntityProcedure EntityType = "Procedure"

	// EntityStep is an individual step within a procedure.
	EntityStep EntityType = "Step"

	// EntityOutcome is the result of an action or procedure.
	EntityOutcome EntityType = "Outcome"

	// EntityConcept is domain terminology users need to understand.
	EntityConcept EntityType = "Concept"

	// EntityShortcut is a keyboard or mouse shortcut.
	EntityShortcut EntityType = "Shortcut"

	// EntitySetting is a configuration option.
	EntitySetting EntityType = "Setting"

	// EntityFileFormat is a supported file type.
	EntityFileFormat EntityType = "FileFormat"

	// EntityVersion is a software version label.
	EntityVersion EntityType = "Version"

	// EntityConstraint is a limitation or requirement.
	EntityConstraint EntityType = "Constraint"

	// EntitySoftware is the software product itself.
	EntitySoftware EntityType = "Software"

	// EntityUnknown is the fallback for unclassified entities.
	EntityUnknown EntityType = "Unknown"
)

// RelationType classifies the edge between two entities in a triple.
type RelationType string

// UI navigation relations.
const (
	RelationLocatedIn   RelationType = "located_in"
	RelationAccessedVia RelationType = "accessed_via"
	RelationContains    RelationType = "contains"
)

// Feature relations.
const (
	RelationActivates     RelationType = "activates"
	RelationRequires      RelationType = "requires"
	RelationEnables       RelationType = "enables"
	RelationEnhances      RelationType = "enhances"
	RelationConflictsWith RelationType = "conflicts_with"
	RelationAlternativeTo RelationType = "alternative_to"
)

// Procedure relations.
const (
	RelationPartOf          RelationType = "part_of"
	RelationNextStep        RelationType = "next_step"
	RelationAchieves        RelationType = "achieves"
	RelationPrerequisiteFor RelationType = "prerequisite_for"
)

// Shortcut and setting relations.
const (
	RelationShortcutFor  RelationType = "shortcut_for"
	RelationConfiguredBy RelationType = "configured_by"
	RelationDefaultValue RelationType = "default_value"
)

// File format relations.
const (
	RelationSupports    RelationType = "supports"
	RelationExportsTo   RelationType = "exports_to"
	RelationImportsFrom RelationType = "imports_from"
)

// Version relations.
const (
	RelationIntroducedIn RelationType = "introduced_in"
	RelationRemovedIn    RelationType = "removed_in"
	RelationChangedIn    RelationType = "changed_in"
	RelationReplacedBy   RelationType = "replaced_by"
	RelationRenamedTo    RelationType = "renamed_to"
	RelationMovedTo      RelationType = "moved_to"
)

// RelationRelatedTo is the generic catch-all relation.
const RelationRelatedTo RelationType = "related_to"

// DocumentType classifies an incoming document.
type DocumentType string

const (
	// DocTutorial is a step-by-step guide.
	DocTutorial DocumentType = "tutorial"

	// DocReference is feature or API reference documentation.
	DocReference DocumentType = "reference"

	// DocReleaseNotes is a changelog or "what's new" document.
	// Release notes route the pipeline into maintenance mode.
	DocReleaseNotes DocumentType = "release_notes"

	// DocFAQ is a frequently-asked-questions document.
	DocFAQ DocumentType = "faq"

	// DocTroubleshooting is a problem-solving guide.
	DocTroubleshooting DocumentType = "troubleshooting"

	// DocQuickStart is a getting-started guide.
	DocQuickStart DocumentType = "quick_start"

	// DocUnknown is the fallback classification.
	DocUnknown DocumentType = "unknown"
)

// TripleStatus is the lifecycle state of a knowledge triple.
//
// Active and Pending are initial states. Deprecated and NeedsReview are
// terminal: no operation transitions a triple back to Active. A fact that
// becomes true again in a later version is represented by a new triple.
type TripleStatus string

const (
	// StatusActive marks a triple as currently valid.
	StatusActive TripleStatus = "active"

	// StatusDeprecated marks a triple invalidated by a change.
	StatusDeprecated TripleStatus = "deprecated"

	// StatusNeedsReview marks a triple flagged for human verification.
	StatusNeedsReview TripleStatus = "needs_review"

	// StatusPending marks a triple awaiting verification. Reserved for
	// human-curated workflows; extraction never produces it.
	StatusPending TripleStatus = "pending"
)

// ChangeType classifies a single difference introduced by a software update.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
	ChangeMoved   ChangeType = "moved"
	ChangeRenamed ChangeType = "renamed"
	ChangeFixed   ChangeType = "fixed"
)
