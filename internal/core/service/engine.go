package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
	"github.com/netcfgtools/fgt-dup-detector/internal/errors"
)

// DuplicateAnalysisEngine runs the pipeline: parse every input file, index
// records by (type, name) across all of them, diff each group with two or
// more members, assemble the report and hand it to the reporter.
//
// Files parse concurrently; indexing only starts after every parse has
// joined, since group membership is defined over the full input set.
type DuplicateAnalysisEngine struct {
	parser      ports.ConfigParser
	comparer    ports.GroupComparer
	reporter    ports.Reporter
	logger      ports.Logger
	concurrency int
}

func NewDuplicateAnalysisEngine(
	parser ports.ConfigParser,
	comparer ports.GroupComparer,
	reporter ports.Reporter,
	logger ports.Logger,
	concurrency int,
) (*DuplicateAnalysisEngine, error) {
	if parser == nil {
		return nil, errors.New(errors.CodeConfigValidation, "parser cannot be nil")
	}
	if comparer == nil {
		return nil, errors.New(errors.CodeConfigValidation, "comparer cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &DuplicateAnalysisEngine{
		parser:      parser,
		comparer:    comparer,
		reporter:    reporter,
		logger:      logger,
		concurrency: concurrency,
	}, nil
}

func (e *DuplicateAnalysisEngine) Run(ctx context.Context, paths []string) error {
	report, err := e.Analyze(ctx, paths)
	if err != nil {
		return err
	}
	if err := e.reporter.Report(ctx, report); err != nil {
		return errors.Wrap(err, errors.CodeReportError, "failed to write report")
	}
	return nil
}

// Analyze produces the report without writing it anywhere.
func (e *DuplicateAnalysisEngine) Analyze(ctx context.Context, paths []string) (*domain.Report, error) {
	e.logger.Infof(ctx, "Starting duplicate analysis of %d file(s)", len(paths))

	if len(paths) == 0 {
		e.logger.Infof(ctx, "No input files given; reporting empty result")
		return AssembleReport(nil, nil, nil), nil
	}

	parseResults, fileStatuses, err := e.parseAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	readable := 0
	for _, pr := range parseResults {
		if pr != nil {
			readable++
		}
	}
	if readable == 0 {
		return nil, errors.NewUserFacing(errors.CodeInputReadError,
			"none of the input files could be read",
			"Check the file paths and permissions.")
	}

	groups := BuildGroups(parseResults)
	e.logger.Debugf(ctx, "Indexed %d object group(s) across %d readable file(s)", len(groups), readable)

	var results []domain.ComparisonResult
	for _, g := range groups {
		if len(g.Members) < 2 {
			continue
		}
		res, cmpErr := e.comparer.Compare(g)
		if cmpErr != nil {
			return nil, errors.Wrap(cmpErr, errors.CodeComparisonError, "group comparison failed")
		}
		results = append(results, res)
		if res.Classification != domain.ClassificationIdentical {
			e.logger.Debugf(ctx, "Group %s %q classified %s (%d members, %d attribute diffs)",
				g.Type, g.Name, res.Classification, res.MemberCount, len(res.Diffs))
		}
	}

	report := AssembleReport(groups, results, fileStatuses)
	e.logger.Infof(ctx, "Analysis complete: %d group(s), %d actionable row(s)", len(groups), len(report.Details))
	return report, nil
}

// parseAll parses every file concurrently and joins before returning. A file
// that cannot be read yields a nil result and an error on its FileStatus; it
// never fails the other files.
func (e *DuplicateAnalysisEngine) parseAll(ctx context.Context, paths []string) ([]*domain.ParseResult, []domain.FileStatus, error) {
	parseResults := make([]*domain.ParseResult, len(paths))
	parseErrs := make([]error, len(paths))

	g, childCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if childCtx.Err() != nil {
				return childCtx.Err()
			}
			result, err := e.parser.Parse(childCtx, path)
			if err != nil {
				parseErrs[i] = err
				e.logger.Errorf(childCtx, err, "skipping unreadable file %s", path)
				return nil
			}
			parseResults[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	fileStatuses := make([]domain.FileStatus, len(paths))
	for i, path := range paths {
		status := domain.FileStatus{Path: path}
		if parseErrs[i] != nil {
			status.Error = parseErrs[i].Error()
		} else if pr := parseResults[i]; pr != nil {
			status.Records = len(pr.Records)
			status.Warnings = pr.Warnings
			status.SkippedSections = pr.SkippedSections
			for _, w := range pr.Warnings {
				e.logger.Warnf(ctx, "parse warning in %s line %d: %s", w.File, w.Line, w.Message)
			}
		}
		fileStatuses[i] = status
	}

	return parseResults, fileStatuses, nil
}
