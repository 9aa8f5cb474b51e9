package ports

import "context"

type AnalysisEngine interface {
	Run(ctx context.Context, paths []string) error
}
