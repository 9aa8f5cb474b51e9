package ports

import "github.com/netcfgtools/fgt-dup-detector/internal/core/domain"

// GroupComparer computes the attribute-level comparison for one duplicate
// group. Pure: no side effects, identical inputs give identical results.
type GroupComparer interface {
	Compare(group domain.ObjectGroup) (domain.ComparisonResult, error)
}
