package agent

import (
	"fmt"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/infrastructure/logger"
	"marketing-crew/internal/infrastructure/prompts"
)

type FactoryOptions struct {
	Logger   output.LoggerPort
	Observer output.StepObserver
	Verbose  bool
}

// Factory binds role profiles to a model handle and the shared tool registry.
type Factory struct {
	llm      output.LLMPort
	tools    output.ToolRegistry
	logger   output.LoggerPort
	observer output.StepObserver
	verbose  bool
}

func NewFactory(llm output.LLMPort, tools output.ToolRegistry, opts FactoryOptions) (*Factory, error) {
	if llm == nil {
		return nil, fmt.Errorf("%w: no language model configured for agents", entity.ErrConfiguration)
	}
	if tools == nil {
		return nil, fmt.Errorf("%w: no tool registry configured for agents", entity.ErrConfiguration)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Factory{
		llm:      llm,
		tools:    tools,
		logger:   log,
		observer: opts.Observer,
		verbose:  opts.Verbose,
	}, nil
}

// Create builds the agent for role and adds it to crew. Agents allowed to
// delegate get delegation tools scoped to that crew.
func (f *Factory) Create(role entity.Role, crew *Crew) (*Agent, error) {
	profile, ok := Profile(role, f.verbose)
	if !ok {
		return nil, fmt.Errorf("unknown agent role %q", role)
	}

	a := &Agent{
		profile:  profile,
		llm:      f.llm,
		tools:    f.tools.Subset(profile.Tools),
		logger:   f.logger,
		observer: f.observer,
	}

	if profile.AllowDelegation && crew != nil {
		a.delegation = []output.ToolPort{
			NewDelegateWorkTool(role, crew, f.logger),
			NewAskQuestionTool(role, crew, f.logger),
		}
	}

	if crew != nil {
		crew.add(a)
	}
	return a, nil
}

// CreateCrew builds a crew holding the given roles in order.
func (f *Factory) CreateCrew(roles ...entity.Role) (*Crew, error) {
	crew := NewCrew()
	for _, role := range roles {
		if _, err := f.Create(role, crew); err != nil {
			return nil, err
		}
	}
	return crew, nil
}

func promptData(profile entity.AgentProfile, tools []output.ToolPort) prompts.AgentPromptData {
	infos := make([]prompts.ToolInfo, 0, len(tools))
	for _, t := range tools {
		infos = append(infos, prompts.ToolInfo{Name: string(t.Name()), Description: t.Description()})
	}
	return prompts.AgentPromptData{
		Role:      string(profile.Role),
		Goal:      profile.Goal,
		Backstory: profile.Backstory,
		Tools:     infos,
	}
}
