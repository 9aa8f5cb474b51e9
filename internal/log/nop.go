package log

import (
	"context"

	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
)

type nopLogger struct{}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() ports.Logger {
	return nopLogger{}
}

func (nopLogger) Debugf(context.Context, string, ...any)        {}
func (nopLogger) Infof(context.Context, string, ...any)         {}
func (nopLogger) Warnf(context.Context, string, ...any)         {}
func (nopLogger) Errorf(context.Context, error, string, ...any) {}
func (n nopLogger) WithFields(map[string]any) ports.Logger      { return n }
