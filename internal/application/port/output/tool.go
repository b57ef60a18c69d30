package output

import (
	"context"

	"marketing-crew/internal/domain/entity"
)

// ToolPort is a capability an agent may invoke. Failures the agent should
// reason about are returned as *entity.ToolError; any other error aborts the task.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, arguments string) (string, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Subset(names []entity.ToolName) []ToolPort
	Definitions() []entity.ToolDefinition
}
