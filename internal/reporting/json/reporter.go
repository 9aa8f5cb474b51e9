package json

import (
	"context"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
	"github.com/netcfgtools/fgt-dup-detector/internal/errors"
)

const ReporterTypeJSON = "json"

type Config struct{}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func (r *Reporter) Type() string {
	return ReporterTypeJSON
}

type jsonReport struct {
	Summaries []jsonSummary   `json:"summaries"`
	Details   []jsonDetailRow `json:"details"`
	Files     []jsonFile      `json:"files"`
}

type jsonSummary struct {
	ObjectType       string `json:"object_type"`
	Total            int    `json:"total"`
	Identical        int    `json:"identical"`
	Divergent        int    `json:"divergent"`
	PresenceMismatch int    `json:"presence_mismatch"`
	Unique           int    `json:"unique"`
}

type jsonDetailRow struct {
	ObjectType     string              `json:"object_type"`
	Name           string              `json:"name"`
	Classification string              `json:"classification"`
	MemberCount    int                 `json:"member_count"`
	AttributeDiffs []jsonAttributeDiff `json:"attribute_diffs"`
}

type jsonAttributeDiff struct {
	Key              string            `json:"key"`
	PresenceMismatch bool              `json:"presence_mismatch"`
	PerSourceValues  []jsonSourceValue `json:"per_source_values"`
}

type jsonSourceValue struct {
	SourceFile string   `json:"source_file"`
	Partition  string   `json:"partition"`
	Value      []string `json:"value,omitempty"`
	Absent     bool     `json:"absent,omitempty"`
}

type jsonFile struct {
	Path            string         `json:"path"`
	Records         int            `json:"records"`
	Warnings        []jsonWarning  `json:"warnings,omitempty"`
	SkippedSections map[string]int `json:"skipped_sections,omitempty"`
	Error           string         `json:"error,omitempty"`
}

type jsonWarning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (r *Reporter) Report(ctx context.Context, report *domain.Report) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := jsonReport{
		Summaries: make([]jsonSummary, 0, len(report.Summaries)),
		Details:   make([]jsonDetailRow, 0, len(report.Details)),
		Files:     make([]jsonFile, 0, len(report.Files)),
	}

	for _, s := range report.Summaries {
		out.Summaries = append(out.Summaries, jsonSummary{
			ObjectType:       string(s.Type),
			Total:            s.Total,
			Identical:        s.Identical,
			Divergent:        s.Divergent,
			PresenceMismatch: s.PresenceMismatch,
			Unique:           s.Unique,
		})
	}

	for _, row := range report.Details {
		item := jsonDetailRow{
			ObjectType:     string(row.Type),
			Name:           row.Name,
			Classification: string(row.Classification),
			MemberCount:    row.MemberCount,
			AttributeDiffs: make([]jsonAttributeDiff, 0, len(row.Diffs)),
		}
		for _, diff := range row.Diffs {
			jd := jsonAttributeDiff{
				Key:              diff.Key,
				PresenceMismatch: diff.PresenceMismatch,
				PerSourceValues:  make([]jsonSourceValue, 0, len(diff.Values)),
			}
			for _, sv := range diff.Values {
				entry := jsonSourceValue{
					SourceFile: sv.Source.File,
					Partition:  sv.Source.Partition,
					Absent:     sv.Absent,
				}
				if !sv.Absent {
					entry.Value = sv.Value.Flatten()
				}
				jd.PerSourceValues = append(jd.PerSourceValues, entry)
			}
			item.AttributeDiffs = append(item.AttributeDiffs, jd)
		}
		out.Details = append(out.Details, item)
	}

	for _, f := range report.Files {
		jf := jsonFile{
			Path:            f.Path,
			Records:         f.Records,
			SkippedSections: f.SkippedSections,
			Error:           f.Error,
		}
		for _, w := range f.Warnings {
			jf.Warnings = append(jf.Warnings, jsonWarning{Line: w.Line, Message: w.Message})
		}
		out.Files = append(out.Files, jf)
	}

	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return errors.Wrap(err, errors.CodeReportError, "failed to encode JSON report")
	}
	return nil
}
