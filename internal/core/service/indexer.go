package service

import "github.com/netcfgtools/fgt-dup-detector/internal/core/domain"

type groupKey struct {
	Type domain.ObjectType
	Name string
}

// BuildGroups indexes every record from every parsed file by (type, name).
// The key deliberately excludes file and partition: an object defined under
// the same name in two places is exactly the ambiguity being surfaced.
//
// parseResults must be in input-file order; records within a result are in
// appearance order. Members therefore end up ordered by file, then partition
// appearance, then record appearance, and groups are emitted in first-seen
// order, so output is reproducible for identical inputs.
func BuildGroups(parseResults []*domain.ParseResult) []domain.ObjectGroup {
	byKey := make(map[groupKey]int)
	var groups []domain.ObjectGroup

	for _, result := range parseResults {
		if result == nil {
			continue
		}
		for _, rec := range result.Records {
			key := groupKey{Type: rec.Type, Name: rec.Name}
			idx, seen := byKey[key]
			if !seen {
				idx = len(groups)
				byKey[key] = idx
				groups = append(groups, domain.ObjectGroup{Type: rec.Type, Name: rec.Name})
			}
			groups[idx].Members = append(groups[idx].Members, rec)
		}
	}

	return groups
}
