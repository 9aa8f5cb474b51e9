package yaml

import (
	"context"
	"io"
	"os"

	goyaml "gopkg.in/yaml.v3"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
	"github.com/netcfgtools/fgt-dup-detector/internal/errors"
)

const ReporterTypeYAML = "yaml"

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
	return ReporterTypeYAML
}

type yamlReport struct {
	Summaries []yamlSummary   `yaml:"summaries"`
	Details   []yamlDetailRow `yaml:"details"`
	Files     []yamlFile      `yaml:"files"`
}

type yamlSummary struct {
	ObjectType       string `yaml:"object_type"`
	Total            int    `yaml:"total"`
	Identical        int    `yaml:"identical"`
	Divergent        int    `yaml:"divergent"`
	PresenceMismatch int    `yaml:"presence_mismatch"`
	Unique           int    `yaml:"unique"`
}

type yamlDetailRow struct {
	ObjectType     string              `yaml:"object_type"`
	Name           string              `yaml:"name"`
	Classification string              `yaml:"classification"`
	MemberCount    int                 `yaml:"member_count"`
	AttributeDiffs []yamlAttributeDiff `yaml:"attribute_diffs"`
}

type yamlAttributeDiff struct {
	Key              string            `yaml:"key"`
	PresenceMismatch bool              `yaml:"presence_mismatch"`
	PerSourceValues  []yamlSourceValue `yaml:"per_source_values"`
}

type yamlSourceValue struct {
	SourceFile string   `yaml:"source_file"`
	Partition  string   `yaml:"partition"`
	Value      []string `yaml:"value,omitempty"`
	Absent     bool     `yaml:"absent,omitempty"`
}

type yamlFile struct {
	Path            string         `yaml:"path"`
	Records         int            `yaml:"records"`
	Warnings        []yamlWarning  `yaml:"warnings,omitempty"`
	SkippedSections map[string]int `yaml:"skipped_sections,omitempty"`
	Error           string         `yaml:"error,omitempty"`
}

type yamlWarning struct {
	Line    int    `yaml:"line"`
	Message string `yaml:"message"`
}

func (r *Reporter) Report(ctx context.Context, report *domain.Report) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := yamlReport{}

	for _, s := range report.Summaries {
		out.Summaries = append(out.Summaries, yamlSummary{
			ObjectType:       string(s.Type),
			Total:            s.Total,
			Identical:        s.Identical,
			Divergent:        s.Divergent,
			PresenceMismatch: s.PresenceMismatch,
			Unique:           s.Unique,
		})
	}

	for _, row := range report.Details {
		item := yamlDetailRow{
			ObjectType:     string(row.Type),
			Name:           row.Name,
			Classification: string(row.Classification),
			MemberCount:    row.MemberCount,
		}
		for _, diff := range row.Diffs {
			yd := yamlAttributeDiff{
				Key:              diff.Key,
				PresenceMismatch: diff.PresenceMismatch,
			}
			for _, sv := range diff.Values {
				entry := yamlSourceValue{
					SourceFile: sv.Source.File,
					Partition:  sv.Source.Partition,
					Absent:     sv.Absent,
				}
				if !sv.Absent {
					entry.Value = sv.Value.Flatten()
				}
				yd.PerSourceValues = append(yd.PerSourceValues, entry)
			}
			item.AttributeDiffs = append(item.AttributeDiffs, yd)
		}
		out.Details = append(out.Details, item)
	}

	for _, f := range report.Files {
		yf := yamlFile{
			Path:            f.Path,
			Records:         f.Records,
			SkippedSections: f.SkippedSections,
			Error:           f.Error,
		}
		for _, w := range f.Warnings {
			yf.Warnings = append(yf.Warnings, yamlWarning{Line: w.Line, Message: w.Message})
		}
		out.Files = append(out.Files, yf)
	}

	encoder := goyaml.NewEncoder(r.writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(out); err != nil {
		return errors.Wrap(err, errors.CodeReportError, "failed to encode YAML report")
	}
	return nil
}
