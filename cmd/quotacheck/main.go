package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"marketing-crew/internal/di"
	"marketing-crew/internal/infrastructure/env"
	"marketing-crew/internal/infrastructure/logger"
	"marketing-crew/internal/infrastructure/userinteraction"
	"marketing-crew/internal/usecase/quota"

	"github.com/fatih/color"
)

func main() {
	os.Exit(run())
}

func run() int {
	ui := userinteraction.NewConsoleUserInteraction()
	ctx := context.Background()

	cfg, err := di.LoadConfig(env.NewEnvService())
	if err != nil {
		ui.ShowError(ctx, err)
		return 2
	}

	fmt.Printf("=== %s API Quota Checker ===\n", cfg.Provider)

	llm, closeLLM, err := di.NewLLM(ctx, cfg, logger.NewNop())
	if err != nil {
		ui.ShowError(ctx, err)
		return 2
	}
	if closeLLM != nil {
		defer closeLLM()
	}

	checker := quota.NewChecker(llm, quota.DefaultOptions())
	if report(checker.Check(ctx)) {
		color.Green("\n✅ Ready to run the marketing crew!")
		return 0
	}

	fmt.Println("\nOptions:")
	fmt.Println("1. Wait for quota to reset (usually 1 minute)")
	fmt.Println("2. Upgrade your API plan")
	fmt.Println("3. Switch to a different API key if available")

	answer, err := ui.AskQuestion(ctx, "\nWait for quota reset? (y/n):")
	if err != nil || strings.ToLower(answer) != "y" {
		return 1
	}

	fmt.Println("Waiting for quota to reset...")
	err = checker.WaitForReset(ctx, func(remaining time.Duration) {
		fmt.Printf("Waiting %d seconds...\n", int(remaining.Seconds()))
	})
	if err != nil {
		ui.ShowError(ctx, err)
		return 1
	}

	fmt.Println("Attempting to check quota again...")
	if report(checker.Check(ctx)) {
		return 0
	}
	return 1
}

func report(result quota.Result) bool {
	switch result.Status {
	case quota.StatusOK:
		color.Green("✅ API Response: %s", strings.TrimSpace(result.Response))
		color.Green("✅ Quota check passed - API is accessible")
		return true
	case quota.StatusQuotaExceeded:
		color.Red("❌ Quota exceeded - you need to wait or upgrade your plan")
		fmt.Println("Check: https://ai.google.dev/gemini-api/docs/rate-limits")
	default:
		color.Red("❌ API Error: %v", result.Err)
	}
	return false
}
