package ports

import (
	"context"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/domain"
)

type Reporter interface {
	Type() string
	Report(ctx context.Context, report *domain.Report) error
}
