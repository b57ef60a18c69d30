package pipeline

import (
	"context"
	"fmt"
	"time"

	"marketing-crew/internal/application/port/input"
	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/infrastructure/logger"
	"marketing-crew/internal/usecase/agent"

	"github.com/google/uuid"
)

var _ input.PipelineRunner = (*UseCase)(nil)

type Config struct {
	LLM   output.LLMPort
	Tools output.ToolRegistry
	// NewLimiter is called once per stage; all agents of the stage share it.
	NewLimiter func() output.RateLimiter
	Logger     output.LoggerPort
	UI         output.UserInteractionPort
	Verbose    bool
}

// UseCase runs the copy crew, then the image crew, threading each task's
// result into the tasks that depend on it.
type UseCase struct {
	llm        output.LLMPort
	tools      output.ToolRegistry
	newLimiter func() output.RateLimiter
	logger     output.LoggerPort
	ui         output.UserInteractionPort
	verbose    bool
	newRunID   func() string
}

func New(cfg Config) (*UseCase, error) {
	if cfg.LLM == nil {
		return nil, fmt.Errorf("%w: pipeline needs a language model", entity.ErrConfiguration)
	}
	if cfg.Tools == nil {
		return nil, fmt.Errorf("%w: pipeline needs a tool registry", entity.ErrConfiguration)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	newLimiter := cfg.NewLimiter
	if newLimiter == nil {
		newLimiter = func() output.RateLimiter { return unlimited{} }
	}

	return &UseCase{
		llm:        cfg.LLM,
		tools:      cfg.Tools,
		newLimiter: newLimiter,
		logger:     log,
		ui:         cfg.UI,
		verbose:    cfg.Verbose,
		newRunID:   uuid.NewString,
	}, nil
}

// Run returns both artifacts or a single *entity.RunError. Nothing from a
// failed run is returned.
func (uc *UseCase) Run(ctx context.Context, brief entity.ProductBrief) (*entity.RunResult, error) {
	runID := uc.newRunID()
	log := uc.logger.WithField("run_id", runID)
	start := time.Now()

	log.Info("Run started", "website", brief.Website)

	results := make(map[entity.TaskName]string)
	run := &entity.RunResult{RunID: runID}

	for _, st := range stages(brief) {
		sr, err := uc.runStage(ctx, runID, log, st, results)
		if err != nil {
			log.Error("Run failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
			return nil, err
		}
		run.Stages = append(run.Stages, *sr)
	}

	run.Copy = run.Stages[0].Output
	run.Photos = run.Stages[1].Output

	log.Info("Run completed", "duration_ms", time.Since(start).Milliseconds())
	return run, nil
}

func (uc *UseCase) runStage(
	ctx context.Context,
	runID string,
	log output.LoggerPort,
	st stage,
	results map[entity.TaskName]string,
) (*entity.StageResult, error) {
	log = log.WithField("stage", st.name)
	fail := func(task entity.TaskName, err error) error {
		return &entity.RunError{RunID: runID, Stage: st.name, Task: task, Err: err}
	}

	if uc.ui != nil {
		uc.ui.ShowStage(ctx, st.name, stageMessage(st.name))
	}
	log.Info("Stage started", "agents", len(st.roles), "tasks", len(st.steps))

	opts := agent.FactoryOptions{Logger: log, Verbose: uc.verbose}
	if uc.ui != nil {
		opts.Observer = uc.ui
	}

	llm := &throttledLLM{llm: uc.llm, limiter: uc.newLimiter()}
	factory, err := agent.NewFactory(llm, uc.tools, opts)
	if err != nil {
		return nil, fail("", err)
	}
	crew, err := factory.CreateCrew(st.roles...)
	if err != nil {
		return nil, fail("", err)
	}

	sr := &entity.StageResult{Stage: st.name}
	for _, step := range st.steps {
		member, ok := crew.Get(step.role)
		if !ok {
			return nil, fail(step.name, fmt.Errorf("no %s in %s crew", step.role, st.name))
		}

		task, err := step.build(member.Profile(), results)
		if err != nil {
			return nil, fail(step.name, err)
		}

		result, err := member.Execute(ctx, task)
		if err != nil {
			return nil, fail(step.name, err)
		}
		if result.Exhausted {
			log.Warn("Task finished on forced answer", "task", step.name, "iterations", result.Iterations)
		}

		results[step.name] = result.Output
		sr.Tasks = append(sr.Tasks, *result)
		sr.Output = result.Output
	}

	log.Info("Stage completed")
	return sr, nil
}

func stageMessage(name entity.StageName) string {
	switch name {
	case entity.StageCopy:
		return "Starting copy generation..."
	case entity.StageImage:
		return "Starting image description generation..."
	default:
		return string(name)
	}
}

type unlimited struct{}

func (unlimited) Wait(context.Context) error { return nil }
