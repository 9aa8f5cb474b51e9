package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Type() string {
	return ReporterTypeText
}

func (r *Reporter) Report(ctx context.Context, report *domain.Report) error {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "Duplicate Object Report")
	fmt.Fprintln(tw, "=======================")

	for _, f := range report.Files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		switch {
		case f.Error != "":
			fmt.Fprintf(tw, "%s\t%s\t%s\n", yellow("[SKIPPED]"), f.Path, f.Error)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%d object(s), %d warning(s)\n", cyan("[PARSED]"), f.Path, f.Records, len(f.Warnings))
			for _, w := range f.Warnings {
				fmt.Fprintf(tw, "\tline %d\t%s\n", w.Line, w.Message)
			}
			for _, section := range sortedSections(f.SkippedSections) {
				fmt.Fprintf(tw, "\tskipped section\t%s (%d)\n", section, f.SkippedSections[section])
			}
		}
	}

	if len(report.Summaries) == 0 {
		fmt.Fprintln(tw, "\nNo objects found in the selected files.")
		return nil
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "Type\tGroups\tIdentical\tDivergent\tPresence mismatch\tUnique")
	fmt.Fprintln(tw, "----\t------\t---------\t---------\t-----------------\t------")
	for _, s := range report.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%d\n",
			s.Type, s.Total, green(s.Identical), red(s.Divergent), yellow(s.PresenceMismatch), s.Unique)
	}

	if len(report.Details) == 0 {
		fmt.Fprintln(tw, "\nNo conflicting definitions found.")
		return nil
	}

	fmt.Fprintln(tw, "\nConflicting definitions:")
	fmt.Fprintln(tw, "Status\tType\tName\tAttributes")
	fmt.Fprintln(tw, "------\t----\t----\t----------")
	for _, row := range report.Details {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		statusStr := red("[DIVERGENT]")
		if row.Classification == domain.ClassificationPresenceMismatch {
			statusStr = yellow("[PRESENCE]")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", statusStr, row.Type, row.Name, formatDiffs(row.Diffs))
	}

	return nil
}

func formatDiffs(diffs []domain.AttributeDiff) string {
	var builder strings.Builder
	for i, diff := range diffs {
		if i > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(diff.Key)
		builder.WriteString("=[")
		for j, sv := range diff.Values {
			if j > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(sv.Source.String())
			builder.WriteString(": ")
			if sv.Absent {
				builder.WriteString("<absent>")
			} else {
				builder.WriteString(truncate(sv.Value.String(), 80))
			}
		}
		builder.WriteString("]")
	}
	return builder.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func sortedSections(sections map[string]int) []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
