package yaml

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goyaml "gopkg.in/yaml.v3"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/log"
)

func TestReporter_EncodesReport(t *testing.T) {
	var buf bytes.Buffer
	reporter, err := NewReporter(Config{}, log.NewNop())
	require.NoError(t, err)
	reporter.writer = &buf

	report := &domain.Report{
		Summaries: []domain.TypeSummary{
			{Type: domain.TypeService, Total: 3, Identical: 2, Unique: 1},
		},
		Details: []domain.DetailRow{
			{
				Type:           domain.TypeService,
				Name:           "HTTP",
				Classification: domain.ClassificationDivergent,
				MemberCount:    2,
				Diffs: []domain.AttributeDiff{
					{
						Key: "tcp-portrange",
						Values: []domain.SourceValue{
							{Source: domain.Source{File: "a.conf", Partition: "root"}, Value: domain.ScalarValue("80")},
							{Source: domain.Source{File: "b.conf", Partition: "root"}, Value: domain.ScalarValue("8080")},
						},
					},
				},
			},
		},
		Files: []domain.FileStatus{{Path: "a.conf", Records: 2}},
	}

	require.NoError(t, reporter.Report(context.Background(), report))

	var decoded yamlReport
	require.NoError(t, goyaml.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Summaries, 1)
	assert.Equal(t, "service", decoded.Summaries[0].ObjectType)
	assert.Equal(t, 3, decoded.Summaries[0].Total)

	require.Len(t, decoded.Details, 1)
	assert.Equal(t, "HTTP", decoded.Details[0].Name)
	require.Len(t, decoded.Details[0].AttributeDiffs, 1)
	diff := decoded.Details[0].AttributeDiffs[0]
	assert.Equal(t, "tcp-portrange", diff.Key)
	require.Len(t, diff.PerSourceValues, 2)
	assert.Equal(t, []string{"80"}, diff.PerSourceValues[0].Value)
	assert.Equal(t, []string{"8080"}, diff.PerSourceValues[1].Value)

	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "a.conf", decoded.Files[0].Path)
}
