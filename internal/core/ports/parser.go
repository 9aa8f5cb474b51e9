package ports

import (
	"context"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
)

// ConfigParser turns one configuration export into partition-scoped object
// records. Structural problems inside the file surface as ParseWarnings on the
// result; the returned error is reserved for I/O-level failures.
type ConfigParser interface {
	Type() string
	Parse(ctx context.Context, path string) (*domain.ParseResult, error)
}
