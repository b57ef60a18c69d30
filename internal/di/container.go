package di

import (
	"context"
	"errors"
	"fmt"

	"marketing-crew/internal/adapter/tool"
	"marketing-crew/internal/application/port/input"
	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/application/service"
	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/infrastructure/browser/rod"
	"marketing-crew/internal/infrastructure/llm/gemini"
	"marketing-crew/internal/infrastructure/llm/openai"
	"marketing-crew/internal/infrastructure/logger"
	"marketing-crew/internal/infrastructure/ratelimit"
	"marketing-crew/internal/infrastructure/serper"
	"marketing-crew/internal/usecase/pipeline"
	"marketing-crew/internal/usecase/quota"
)

type Container struct {
	Config   Config
	Logger   output.LoggerPort
	LLM      output.LLMPort
	Tools    output.ToolRegistry
	Pipeline input.PipelineRunner
	Quota    *quota.Checker

	closers []func() error
}

type Options struct {
	UI output.UserInteractionPort
	// Logger replaces the file logger.
	Logger output.LoggerPort
}

func NewContainer(ctx context.Context, cfg Config, opts Options) (*Container, error) {
	log := opts.Logger
	if log == nil {
		fileLog, err := logger.NewLoggerAdapter(logger.Config{Dir: cfg.LogDir, Name: "marketing_crew", Level: "debug"})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		log = fileLog
	}

	c := &Container{Config: cfg, Logger: log}

	llm, closeLLM, err := NewLLM(ctx, cfg, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.LLM = llm
	if closeLLM != nil {
		c.closers = append(c.closers, closeLLM)
	}

	c.Quota = quota.NewChecker(llm, quota.Options{Logger: log})
	if cfg.VerifyModel {
		if err := verifyModel(ctx, c.Quota); err != nil {
			c.Close()
			return nil, err
		}
	}

	if !cfg.SearchEnabled() {
		log.Warn("SERPER_API_KEY not found, search functionality will be limited")
	}

	c.Tools = c.buildTools(cfg, log)

	c.Pipeline, err = pipeline.New(pipeline.Config{
		LLM:   llm,
		Tools: c.Tools,
		NewLimiter: func() output.RateLimiter {
			return ratelimit.NewPerMinute(cfg.MaxRPM)
		},
		Logger:  log,
		UI:      opts.UI,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		c.Close()
		return nil, err
	}

	log.Info("Container ready",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"scrape_backend", cfg.ScrapeBackend,
		"max_rpm", cfg.MaxRPM,
	)
	return c, nil
}

// NewLLM builds the configured model gateway. The returned close func may be nil.
func NewLLM(ctx context.Context, cfg Config, log output.LoggerPort) (output.LLMPort, func() error, error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("%w: missing API key for %s", entity.ErrConfiguration, cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderGemini:
		gcfg := gemini.DefaultConfig(cfg.APIKey)
		gcfg.Model = cfg.Model
		gcfg.Temperature = cfg.Temperature
		gcfg.MaxTokens = int32(cfg.MaxTokens)
		gcfg.Timeout = cfg.ModelTimeout
		gcfg.Logger = log
		adapter, err := gemini.NewAdapter(ctx, gcfg)
		if err != nil {
			return nil, nil, err
		}
		return adapter, adapter.Close, nil

	case ProviderOpenAI:
		ocfg := openai.DefaultConfig(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			ocfg.BaseURL = cfg.BaseURL
		}
		ocfg.Temperature = cfg.Temperature
		ocfg.MaxTokens = cfg.MaxTokens
		ocfg.Timeout = cfg.ModelTimeout
		ocfg.Logger = log
		return openai.NewAdapter(ocfg), nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown model provider %q", entity.ErrConfiguration, cfg.Provider)
	}
}

func verifyModel(ctx context.Context, checker *quota.Checker) error {
	result := checker.Check(ctx)
	switch result.Status {
	case quota.StatusOK:
		return nil
	case quota.StatusQuotaExceeded:
		return result.Err
	default:
		return fmt.Errorf("%w: failed to initialize language model: %w", entity.ErrConfiguration, result.Err)
	}
}

func (c *Container) buildTools(cfg Config, log output.LoggerPort) *service.ToolRegistryImpl {
	scfg := serper.DefaultConfig(cfg.SerperAPIKey)
	scfg.SearchTimeout = cfg.SearchTimeout
	scfg.ScrapeTimeout = cfg.ScrapeTimeout
	scfg.Logger = log
	client := serper.NewClient(scfg)

	var scraper output.ScrapePort = client
	if cfg.ScrapeBackend == ScrapeBackendBrowser {
		rcfg := rod.DefaultConfig()
		rcfg.Timeout = cfg.ScrapeTimeout
		rcfg.Logger = log
		browser := rod.NewScraper(rcfg)
		c.closers = append(c.closers, func() error {
			browser.Close()
			return nil
		})
		scraper = browser
	}

	searchCfg := tool.SearchConfig{
		Delay:   cfg.SearchDelay,
		Results: tool.DefaultSearchResults,
		Logger:  log,
	}

	registry := service.NewToolRegistry()
	registry.Register(tool.NewSearchInternetTool(client, searchCfg))
	registry.Register(tool.NewSearchInstagramTool(client, searchCfg))
	registry.Register(tool.NewScrapeTool(scraper, log))
	return registry
}

func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
	return errors.Join(errs...)
}
