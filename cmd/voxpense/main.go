// Command voxpense resolves a spoken-expense transcript into a
// transaction draft and optionally submits it.
//
//	voxpense -user <uuid> [-submit] "I spent fifteen dollars and fifty cents at Starbucks"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"voxpense/internal/categorizer"
	"voxpense/internal/config"
	"voxpense/internal/database"
	"voxpense/internal/logger"
	"voxpense/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	userID := flag.String("user", "", "user ID owning the expense (required)")
	submit := flag.Bool("submit", false, "persist the resolved draft as a transaction")
	flag.Parse()

	transcript := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if *userID == "" || transcript == "" {
		return fmt.Errorf("usage: voxpense -user <uuid> [-submit] \"<transcript>\"")
	}

	log := logger.Get()
	ctx := context.Background()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Without an API key the remote categorizer stays nil and the keyword
	// classifier carries classification alone.
	var remote services.Categorizer
	if os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := categorizer.NewGemini(ctx, appConfig.GeminiModel)
		if err != nil {
			log.Warnf("remote categorizer disabled: %v", err)
		} else {
			remote = gemini
		}
	} else {
		log.Info("GEMINI_API_KEY not set; using keyword classification only")
	}

	categoryService := services.NewCategoryService(dbManager.DB())
	transcriptionService := services.NewTranscriptionService(
		dbManager.DB(), categoryService, remote, appConfig.ClassifyTimeoutDur)

	draft, err := transcriptionService.ResolveTranscript(ctx, *userID, transcript)
	if err != nil {
		return err
	}

	if err := printJSON(draft); err != nil {
		return err
	}

	if draft.Amount == nil {
		log.Warn("no amount found in transcript; enter it manually before submitting")
	}

	if !*submit {
		return nil
	}

	transaction, err := transcriptionService.SubmitDraft(ctx, draft)
	if err != nil {
		return err
	}
	return printJSON(transaction)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
