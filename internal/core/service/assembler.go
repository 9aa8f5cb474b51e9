package service

import (
	"sort"
	"strings"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
)

// AssembleReport turns the classified groups into the serializable report.
// Summary rows count every group of a type; detail rows itemize only the
// divergent and presence-mismatch groups. Details are ordered by the
// canonical object-type order, then name, so output is stable regardless of
// the order files were supplied in.
func AssembleReport(
	groups []domain.ObjectGroup,
	results []domain.ComparisonResult,
	files []domain.FileStatus,
) *domain.Report {
	summariesByType := make(map[domain.ObjectType]*domain.TypeSummary)
	summaryFor := func(t domain.ObjectType) *domain.TypeSummary {
		s, ok := summariesByType[t]
		if !ok {
			s = &domain.TypeSummary{Type: t}
			summariesByType[t] = s
		}
		return s
	}

	for _, g := range groups {
		s := summaryFor(g.Type)
		s.Total++
		if len(g.Members) == 1 {
			s.Unique++
		}
	}

	report := &domain.Report{Files: files}

	for _, res := range results {
		s := summaryFor(res.Type)
		switch res.Classification {
		case domain.ClassificationIdentical:
			s.Identical++
		case domain.ClassificationDivergent:
			s.Divergent++
		case domain.ClassificationPresenceMismatch:
			s.PresenceMismatch++
		}

		if res.Classification == domain.ClassificationIdentical {
			continue
		}
		report.Details = append(report.Details, domain.DetailRow{
			Type:           res.Type,
			Name:           res.Name,
			Classification: res.Classification,
			MemberCount:    res.MemberCount,
			Diffs:          res.Diffs,
		})
	}

	var types []domain.ObjectType
	for t := range summariesByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		oi, oj := domain.TypeOrderIndex(types[i]), domain.TypeOrderIndex(types[j])
		if oi != oj {
			return oi < oj
		}
		return types[i] < types[j]
	})
	for _, t := range types {
		report.Summaries = append(report.Summaries, *summariesByType[t])
	}

	sort.SliceStable(report.Details, func(i, j int) bool {
		oi, oj := domain.TypeOrderIndex(report.Details[i].Type), domain.TypeOrderIndex(report.Details[j].Type)
		if oi != oj {
			return oi < oj
		}
		return strings.ToLower(report.Details[i].Name) < strings.ToLower(report.Details[j].Name)
	})

	return report
}
