package text

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/log"
)

func newBufferedReporter(t *testing.T) (*Reporter, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	reporter, err := NewReporter(Config{NoColor: true}, log.NewNop())
	require.NoError(t, err)
	var buf bytes.Buffer
	reporter.writer = &buf
	return reporter, &buf
}

func TestReporter_RendersSummaryAndDetails(t *testing.T) {
	reporter, buf := newBufferedReporter(t)

	report := &domain.Report{
		Summaries: []domain.TypeSummary{
			{Type: domain.TypeAddress, Total: 2, Identical: 1, PresenceMismatch: 1},
			{Type: domain.TypeServiceGroup, Total: 1, Divergent: 1},
		},
		Details: []domain.DetailRow{
			{
				Type:           domain.TypeAddress,
				Name:           "DB1",
				Classification: domain.ClassificationPresenceMismatch,
				MemberCount:    2,
				Diffs: []domain.AttributeDiff{
					{
						Key:              "comment",
						PresenceMismatch: true,
						Values: []domain.SourceValue{
							{Source: domain.Source{File: "a.conf", Partition: "root"}, Value: domain.ScalarValue("prod")},
							{Source: domain.Source{File: "b.conf", Partition: "root"}, Absent: true},
						},
					},
				},
			},
			{
				Type:           domain.TypeServiceGroup,
				Name:           "SG1",
				Classification: domain.ClassificationDivergent,
				MemberCount:    2,
				Diffs: []domain.AttributeDiff{
					{
						Key: "member",
						Values: []domain.SourceValue{
							{Source: domain.Source{File: "a.conf", Partition: "root"}, Value: domain.ListValue("HTTP", "HTTPS")},
							{Source: domain.Source{File: "b.conf", Partition: "root"}, Value: domain.ListValue("HTTPS", "HTTP")},
						},
					},
				},
			},
		},
		Files: []domain.FileStatus{
			{Path: "a.conf", Records: 3},
			{Path: "b.conf", Records: 3},
		},
	}

	require.NoError(t, reporter.Report(context.Background(), report))
	out := buf.String()

	assert.Contains(t, out, "Duplicate Object Report")
	assert.Contains(t, out, "[PARSED]")
	assert.Contains(t, out, "a.conf")
	assert.Contains(t, out, "Summary:")
	assert.Contains(t, out, "address")
	assert.Contains(t, out, "Conflicting definitions:")
	assert.Contains(t, out, "[PRESENCE]")
	assert.Contains(t, out, "[DIVERGENT]")
	assert.Contains(t, out, "comment=[a.conf [root]: prod, b.conf [root]: <absent>]")
	assert.Contains(t, out, "member=[a.conf [root]: HTTP HTTPS, b.conf [root]: HTTPS HTTP]")
}

func TestReporter_SkippedFileAndWarnings(t *testing.T) {
	reporter, buf := newBufferedReporter(t)

	report := &domain.Report{
		Files: []domain.FileStatus{
			{Path: "missing.conf", Error: "open missing.conf: no such file or directory"},
			{
				Path:            "ok.conf",
				Records:         1,
				Warnings:        []domain.ParseWarning{{File: "ok.conf", Line: 4, Message: "unterminated block"}},
				SkippedSections: map[string]int{"system global": 1},
			},
		},
	}

	require.NoError(t, reporter.Report(context.Background(), report))
	out := buf.String()

	assert.Contains(t, out, "[SKIPPED]")
	assert.Contains(t, out, "missing.conf")
	assert.Contains(t, out, "line 4")
	assert.Contains(t, out, "unterminated block")
	assert.Contains(t, out, "system global (1)")
	assert.Contains(t, out, "No objects found")
}

func TestReporter_NoConflicts(t *testing.T) {
	reporter, buf := newBufferedReporter(t)

	report := &domain.Report{
		Summaries: []domain.TypeSummary{{Type: domain.TypeAddress, Total: 1, Identical: 1}},
		Files:     []domain.FileStatus{{Path: "a.conf", Records: 2}},
	}

	require.NoError(t, reporter.Report(context.Background(), report))
	assert.Contains(t, buf.String(), "No conflicting definitions found.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 80))
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	got := truncate(string(long), 80)
	assert.Len(t, got, 80)
	assert.Equal(t, "...", got[77:])
}
