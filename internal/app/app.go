package app

import (
	"context"

	"github.com/netcfgtools/fgt-dup-detector/internal/config"
	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
)

// Application ties the analysis engine to the CLI entry point.
type Application struct {
	Engine ports.AnalysisEngine
	Logger ports.Logger
	Config *config.Config
}

// Run analyzes the given config files and writes the report.
func (a *Application) Run(ctx context.Context, paths []string) error {
	err := a.Engine.Run(ctx, paths)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Duplicate analysis failed")
		return err
	}
	return nil
}
