package input

import (
	"context"

	"marketing-crew/internal/domain/entity"
)

type PipelineRunner interface {
	Run(ctx context.Context, brief entity.ProductBrief) (*entity.RunResult, error)
}
