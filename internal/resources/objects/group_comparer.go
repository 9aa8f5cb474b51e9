// Package objects compares the members of a duplicate object group attribute
// by attribute.
package objects

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
	"github.com/netcfgtools/fgt-dup-detector/internal/errors"
)

type Config struct {
	// UnorderedAttributes lists attribute keys whose list values compare as
	// multisets instead of ordered sequences. Everything else is
	// order-sensitive, since the target system may care about element order.
	UnorderedAttributes []string `mapstructure:"unordered_attributes"`
}

type GroupComparer struct {
	unordered map[string]struct{}
}

func NewGroupComparer(cfg Config) *GroupComparer {
	unordered := make(map[string]struct{}, len(cfg.UnorderedAttributes))
	for _, attr := range cfg.UnorderedAttributes {
		unordered[strings.ToLower(attr)] = struct{}{}
	}
	return &GroupComparer{unordered: unordered}
}

// Compare classifies a group of two or more same-named records.
//
// The attribute key universe is the union across members, in first-seen
// order. For each key, members split into those carrying it and those not;
// a key present on some but not all members is a presence mismatch, which
// outranks plain value divergence: it signals a structurally different
// definition, not merely a differing value.
func (c *GroupComparer) Compare(group domain.ObjectGroup) (domain.ComparisonResult, error) {
	if len(group.Members) < 2 {
		return domain.ComparisonResult{}, errors.New(errors.CodeComparisonError,
			fmt.Sprintf("group %s %q has %d member(s); need at least 2", group.Type, group.Name, len(group.Members)))
	}

	result := domain.ComparisonResult{
		Type:           group.Type,
		Name:           group.Name,
		Classification: domain.ClassificationIdentical,
		MemberCount:    len(group.Members),
	}

	anyPresenceMismatch := false
	anyDivergence := false

	for _, key := range unionKeys(group.Members) {
		present := 0
		absent := 0
		values := make([]domain.SourceValue, 0, len(group.Members))
		for _, member := range group.Members {
			v, ok := member.Attributes.Get(key)
			values = append(values, domain.SourceValue{
				Source: member.Source,
				Value:  v,
				Absent: !ok,
			})
			if ok {
				present++
			} else {
				absent++
			}
		}

		presenceMismatch := present > 0 && absent > 0
		diverged := c.valuesDiverge(key, values)

		if presenceMismatch {
			anyPresenceMismatch = true
		}
		if diverged {
			anyDivergence = true
		}
		if presenceMismatch || diverged {
			result.Diffs = append(result.Diffs, domain.AttributeDiff{
				Key:              key,
				Values:           values,
				PresenceMismatch: presenceMismatch,
			})
		}
	}

	switch {
	case anyPresenceMismatch:
		result.Classification = domain.ClassificationPresenceMismatch
	case anyDivergence:
		result.Classification = domain.ClassificationDivergent
	}

	return result, nil
}

// valuesDiverge reports whether the present values for key differ. Values are
// flattened to string sequences so a scalar and a one-element list of the
// same text compare equal.
func (c *GroupComparer) valuesDiverge(key string, values []domain.SourceValue) bool {
	var opts []cmp.Option
	if _, ok := c.unordered[strings.ToLower(key)]; ok {
		opts = append(opts, cmpopts.SortSlices(func(a, b string) bool { return a < b }))
	}

	var first []string
	seen := false
	for _, sv := range values {
		if sv.Absent {
			continue
		}
		flat := sv.Value.Flatten()
		if !seen {
			first = flat
			seen = true
			continue
		}
		if !cmp.Equal(first, flat, opts...) {
			return true
		}
	}
	return false
}

// unionKeys walks every member in group order and collects attribute keys in
// first-seen order, mirroring how the configuration exposes related
// attributes together.
func unionKeys(members []domain.ObjectRecord) []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, member := range members {
		for _, key := range member.Attributes.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}
