// Package cli implements the claimant command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/claimant-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/claimant-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
	"github.com/custodia-labs/claimant-cli/internal/core/services"
	"github.com/custodia-labs/claimant-cli/internal/logger"
)

// version is set from the main package at startup.
var version = "dev"

// Services used by the commands. Wired by Execute, replaced by mocks in
// tests.
var (
	claimStore      driven.ClaimStore
	askService      driving.AskService
	indexService    driving.IndexService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "claimant",
	Short: "Index an insurance claim and answer questions over it",
	Long: `Claimant indexes a multi-page insurance claim document and answers
natural-language questions about it.

Indexing builds a two-tier corpus: sentence-bounded chunks for precise
fact lookup and one generated summary per page for claim-wide questions.
Each question is routed to the tier that fits it.

Run 'claimant settings wizard' first to configure the embedding and LLM
providers, then 'claimant index <claim.json>' to build the corpus.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute wires the services and runs the root command.
// Provider initialisation degrades gracefully: an unreachable or
// unconfigured provider becomes a warning, and commands that need it
// report their own error when invoked.
func Execute(v string) error {
	version = v

	cleanup, err := initServices()
	if err != nil {
		return err
	}
	defer cleanup()

	return rootCmd.Execute()
}

// initServices builds the driven adapters and core services, and returns
// a cleanup function releasing their resources.
func initServices() (func(), error) {
	noop := func() {}

	store, err := sqlite.NewStore("")
	if err != nil {
		return noop, fmt.Errorf("opening claim store: %w", err)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		store.Close() //nolint:errcheck // Best-effort cleanup on init failure.
		return noop, fmt.Errorf("opening config store: %w", err)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		store.Close() //nolint:errcheck // Best-effort cleanup on init failure.
		return noop, fmt.Errorf("opening prompt store: %w", err)
	}

	settingsSvc := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsSvc.Get()
	if err != nil {
		store.Close() //nolint:errcheck // Best-effort cleanup on init failure.
		return noop, fmt.Errorf("loading settings: %w", err)
	}

	aiResult := &ai.InitResult{PromptStore: prompts}

	embeddingSvc, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		aiResult.Warnings = append(aiResult.Warnings, err.Error())
	} else {
		aiResult.EmbeddingService = embeddingSvc
	}

	llmSvc, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		aiResult.Warnings = append(aiResult.Warnings, err.Error())
	} else {
		aiResult.LLMService = llmSvc
	}

	for _, warning := range aiResult.Warnings {
		logger.Warn("%s", warning)
	}

	askSvc := services.NewAskService(store, aiResult.EmbeddingService, aiResult.LLMService, settingsSvc)
	askSvc.SetPromptStore(prompts)

	indexSvc := services.NewIndexService(store, aiResult.EmbeddingService, aiResult.LLMService, settingsSvc)
	indexSvc.SetPromptStore(prompts)

	claimStore = store
	askService = askSvc
	indexService = indexSvc
	settingsService = settingsSvc

	cleanup := func() {
		aiResult.Close()
		store.Close() //nolint:errcheck // Best-effort cleanup on shutdown.
	}
	return cleanup, nil
}
