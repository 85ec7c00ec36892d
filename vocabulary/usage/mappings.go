package usage

// entityTypes is the set of valid entity type wire strings.
var entityTypes = map[EntityType]struct{}{
	EntityUIElement:  {},
	EntityFeature:    {},
	EntityProcedure:  {},
	EntityStep:       {},
	EntityOutcome:    {},
	EntityConcept:    {},
	EntityShortcut:   {},
	EntitySetting:    {},
	EntityFileFormat: {},
	EntityVersion:    {},
	EntityConstraint: {},
	EntitySoftware:   {},
	EntityUnknown:    {},
}

// relationTypes is the set of valid relation wire strings.
var relationTypes = map[RelationType]struct{}{
	RelationLocatedIn:       {},
	RelationAccessedVia:     {},
	RelationContains:        {},
	RelationActivates:       {},
	RelationRequires:        {},
	RelationEnables:         {},
	RelationEnhances:        {},
	RelationConflictsWith:   {},
	RelationAlternativeTo:   {},
	RelationPartOf:          {},
	RelationNextStep:        {},
	RelationAchieves:        {},
	RelationPrerequisiteFor: {},
	RelationShortcutFor:     {},
	RelationConfiguredBy:    {},
	RelationDefaultValue:    {},
	RelationSupports:        {},
	RelationExportsTo:       {},
	RelationImportsFrom:     {},
	RelationIntroducedIn:    {},
	RelationRemovedIn:       {},
	RelationChangedIn:       {},
	RelationReplacedBy:      {},
	RelationRenamedTo:       {},
	RelationMovedTo:         {},
	RelationRelatedTo:       {},
}

// documentTypes is the set of valid document type wire strings.
var documentTypes = map[DocumentType]struct{}{
	DocTutorial:        {},
	DocReference:       {},
	DocReleaseNotes:    {},
	DocFAQ:             {},
	DocTroubleshooting: {},
	DocQuickStart:      {},
	DocUnknown:         {},
}

// tripleStatuses is the set of valid triple status wire strings.
var tripleStatuses = map[TripleStatus]struct{}{
	StatusActive:      {},
	StatusDeprecated:  {},
	StatusNeedsReview: {},
	StatusPending:     {},
}

// changeTypes is the set of valid change type wire strings.
var changeTypes = map[ChangeType]struct{}{
	ChangeAdded:   {},
	ChangeRemoved: {},
	ChangeChanged: {},
	ChangeMoved:   {},
	ChangeRenamed: {},
	ChangeFixed:   {},
}

// ParseEntityType maps a wire string to an EntityType.
// Unrecognized strings map to EntityUnknown.
func ParseEntityType(s string) EntityType {
	t := EntityType(s)
	if _, ok := entityTypes[t]; ok {
		return t
	}
	return EntityUnknown
}

// ParseRelationType maps a wire string to a RelationType.
// Unrecognized strings map to RelationRelatedTo.
func ParseRelationType(s string) RelationType {
	r := RelationType(s)
	if _, ok := relationTypes[r]; ok {
		return r
	}
	return RelationRelatedTo
}

// ParseDocumentType maps a wire string to a DocumentType.
// Unrecognized strings map to DocUnknown.
func ParseDocumentType(s string) DocumentType {
	d := DocumentType(s)
	if _, ok := documentTypes[d]; ok {
		return d
	}
	return DocUnknown
}

// ParseTripleStatus maps a wire string to a TripleStatus.
// Unrecognized strings map to StatusActive, matching the creation default.
func ParseTripleStatus(s string) TripleStatus {
	st := TripleStatus(s)
	if _, ok := tripleStatuses[st]; ok {
		return st
	}
	return StatusActive
}

// ParseChangeType maps a wire string to a ChangeType.
// Unrecognized strings map to ChangeChanged, the least destructive kind.
func ParseChangeType(s string) ChangeType {
	c := ChangeType(s)
	if _, ok := changeTypes[c]; ok {
		return c
	}
	return ChangeChanged
}

// ValidRelation reports whether s is a known relation wire string.
func ValidRelation(s string) bool {
	_, ok := relationTypes[RelationType(s)]
	return ok
}

// Terminal reports whether a status admits no further transitions.
func (s TripleStatus) Terminal() bool {
	return s == StatusDeprecated || s == StatusNeedsReview
}
