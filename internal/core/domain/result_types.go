package domain

type Classification string

const (
	ClassificationIdentical        Classification = "IDENTICAL"
	ClassificationDivergent        Classification = "DIVERGENT"
	ClassificationPresenceMismatch Classification = "PRESENCE_MISMATCH"
)

// SourceValue is one member's value for an attribute key. Absent is true when
// the member does not carry the key at all, which is distinct from carrying an
// empty value.
type SourceValue struct {
	Source Source
	Value  AttributeValue
	Absent bool
}

// AttributeDiff describes one attribute key whose values or presence differ
// across the members of a duplicate group.
type AttributeDiff struct {
	Key              string
	Values           []SourceValue
	PresenceMismatch bool
}

// ComparisonResult classifies one duplicate group (two or more members).
// Identical results carry no diffs; divergent and presence-mismatch results
// carry at least one.
type ComparisonResult struct {
	Type           ObjectType
	Name           string
	Classification Classification
	MemberCount    int
	Diffs          []AttributeDiff
}

// TypeSummary totals the groups of one object type.
type TypeSummary struct {
	Type             ObjectType
	Total            int
	Identical        int
	Divergent        int
	PresenceMismatch int
	Unique           int
}

// DetailRow is one actionable report row. Identical and unique groups are
// counted in the summaries but never itemized.
type DetailRow struct {
	Type           ObjectType
	Name           string
	Classification Classification
	MemberCount    int
	Diffs          []AttributeDiff
}

// FileStatus reports per-file parse outcomes, including unreadable files. An
// unreadable file does not abort the run.
type FileStatus struct {
	Path            string
	Records         int
	Warnings        []ParseWarning
	SkippedSections map[string]int
	Error           string
}

// Report is the serializable result handed to the rendering side.
type Report struct {
	Summaries []TypeSummary
	Details   []DetailRow
	Files     []FileStatus
}
