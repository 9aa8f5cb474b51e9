package json

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/log"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Summaries: []domain.TypeSummary{
			{Type: domain.TypeAddress, Total: 2, Identical: 1, PresenceMismatch: 1},
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
		},
		Files: []domain.FileStatus{
			{Path: "a.conf", Records: 3},
			{Path: "b.conf", Records: 3, Warnings: []domain.ParseWarning{{File: "b.conf", Line: 7, Message: "unterminated block"}}},
		},
	}
}

func TestReporter_EncodesReportShape(t *testing.T) {
	var buf bytes.Buffer
	reporter, err := NewReporter(Config{}, log.NewNop())
	require.NoError(t, err)
	reporter.writer = &buf

	require.NoError(t, reporter.Report(context.Background(), sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	summaries, ok := decoded["summaries"].([]any)
	require.True(t, ok)
	require.Len(t, summaries, 1)
	summary := summaries[0].(map[string]any)
	assert.Equal(t, "address", summary["object_type"])
	assert.Equal(t, float64(2), summary["total"])

	details := decoded["details"].([]any)
	require.Len(t, details, 1)
	detail := details[0].(map[string]any)
	assert.Equal(t, "DB1", detail["name"])
	assert.Equal(t, string(domain.ClassificationPresenceMismatch), detail["classification"])

	diffs := detail["attribute_diffs"].([]any)
	require.Len(t, diffs, 1)
	diff := diffs[0].(map[string]any)
	assert.Equal(t, "comment", diff["key"])
	values := diff["per_source_values"].([]any)
	require.Len(t, values, 2)

	present := values[0].(map[string]any)
	assert.Equal(t, []any{"prod"}, present["value"])
	_, hasAbsent := present["absent"]
	assert.False(t, hasAbsent)

	absent := values[1].(map[string]any)
	assert.Equal(t, true, absent["absent"])
	_, hasValue := absent["value"]
	assert.False(t, hasValue)

	files := decoded["files"].([]any)
	require.Len(t, files, 2)
	withWarning := files[1].(map[string]any)
	warnings := withWarning["warnings"].([]any)
	require.Len(t, warnings, 1)
	assert.Equal(t, float64(7), warnings[0].(map[string]any)["line"])
}

func TestReporter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	reporter, err := NewReporter(Config{}, log.NewNop())
	require.NoError(t, err)
	reporter.writer = &buf

	require.NoError(t, reporter.Report(context.Background(), &domain.Report{}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []any{}, decoded["summaries"])
	assert.Equal(t, []any{}, decoded["details"])
}

func TestReporter_CancelledContext(t *testing.T) {
	reporter, err := NewReporter(Config{}, log.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, reporter.Report(ctx, &domain.Report{}), context.Canceled)
}
