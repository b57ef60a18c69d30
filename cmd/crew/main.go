package main

import (
	"context"
	"errors"
	"os"
	"time"

	"marketing-crew/internal/di"
	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/infrastructure/env"
	"marketing-crew/internal/infrastructure/userinteraction"
)

const (
	exitRunError    = 1
	exitConfigError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ui := userinteraction.NewConsoleUserInteraction()

	cfg, err := di.LoadConfig(env.NewEnvService())
	if err != nil {
		ui.ShowError(context.Background(), err)
		return exitConfigError
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	ui.ShowWelcome()
	website, err := ui.AskQuestion(ctx, "What is the product website you want a marketing strategy for?")
	if err != nil {
		ui.ShowError(ctx, err)
		return exitRunError
	}
	details, err := ui.AskQuestion(ctx, "Any extra details about the product and/or the Instagram post you want?")
	if err != nil {
		ui.ShowError(ctx, err)
		return exitRunError
	}

	container, err := di.NewContainer(ctx, cfg, di.Options{UI: ui})
	if err != nil {
		ui.ShowError(ctx, err)
		if errors.Is(err, entity.ErrConfiguration) {
			return exitConfigError
		}
		return exitRunError
	}
	defer container.Close()

	container.Logger.Info("Run requested", "website", website)

	result, err := container.Pipeline.Run(ctx, entity.ProductBrief{Website: website, Details: details})
	if err != nil {
		container.Logger.Error("Run failed", "error", err)
		ui.ShowError(ctx, err)
		return exitRunError
	}

	ui.ShowResult(ctx, "\n\n########################\n## Here is the result\n########################\n", "")
	ui.ShowResult(ctx, "Your post copy:", result.Copy)
	ui.ShowResult(ctx, "\n\nYour image description:", result.Photos)
	return 0
}
