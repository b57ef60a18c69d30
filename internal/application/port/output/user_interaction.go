package output

import (
	"context"

	"marketing-crew/internal/domain/entity"
)

type StepObserver interface {
	OnStep(ctx context.Context, step entity.AgentStep)
}

type UserInteractionPort interface {
	StepObserver

	AskQuestion(ctx context.Context, question string) (string, error)

	ShowStage(ctx context.Context, stage entity.StageName, message string)
	ShowResult(ctx context.Context, title, content string)
	ShowError(ctx context.Context, err error)
}
