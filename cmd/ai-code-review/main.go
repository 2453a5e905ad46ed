// Package main provides the CLI entry point for the AI code reviewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikestreety/ai-code-review/internal/config"
	"github.com/mikestreety/ai-code-review/internal/domain"
	"github.com/mikestreety/ai-code-review/internal/llm"
	"github.com/mikestreety/ai-code-review/internal/terminal"
)

var (
	providerName    string
	baseRef         string
	timeout         time.Duration
	format          string
	outputPath      string
	gitlabURL       string
	project         string
	mrIID           int
	dryRun          bool
	verbose         bool
	refFile         bool
	excludePatterns []string
	noConfig        bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:   "ai-code-review",
		Short: "AI-assisted code review for git diffs and GitLab merge requests",
		Long: `Run an LLM-powered code review over a git diff or a GitLab merge request,
verify every comment against the actual file contents, and publish the result.

Exit codes:
  0 - No comments
  1 - Review produced comments
  2 - Error
  130 - Interrupted`,
		RunE:          runReview,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildVersionString(),
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Configuration flags (defaults are resolved via config.Resolve with precedence: flag > env > config > default)
	rootCmd.Flags().StringVarP(&providerName, "provider", "p", "",
		"LLM provider: claude, gemini (default: claude, env: AI_REVIEW_PROVIDER)")
	rootCmd.Flags().StringVarP(&baseRef, "base", "b", "",
		"Base ref to diff against in local mode (default: main, env: AI_REVIEW_BASE_REF)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0,
		"Timeout for the review run (default: 10m, env: AI_REVIEW_TIMEOUT)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "",
		"Report format: console, html, json (default: console, env: AI_REVIEW_FORMAT)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	rootCmd.Flags().StringVar(&gitlabURL, "gitlab-url", "",
		"GitLab instance URL (default: https://gitlab.com, env: GITLAB_URL)")
	rootCmd.Flags().StringVar(&project, "project", "",
		"GitLab project path or ID, e.g. group/repo (env: AI_REVIEW_PROJECT)")
	rootCmd.Flags().IntVar(&mrIID, "mr", 0,
		"Review a GitLab merge request by IID (requires --project)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Skip posting comments to GitLab, print the report only")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Print progress details and dropped-comment diagnostics")
	rootCmd.Flags().BoolVar(&refFile, "ref-file", false,
		"Write review input to a temp file instead of embedding in prompt (auto-enabled for large inputs)")
	rootCmd.Flags().StringArrayVar(&excludePatterns, "exclude-pattern", nil,
		"Exclude comments matching regex pattern (repeatable)")
	rootCmd.Flags().BoolVar(&noConfig, "no-config", false,
		"Skip loading .ai-code-review.yaml config file")

	if err := rootCmd.Execute(); err != nil {
		// Check if this is an exit code wrapper (not a real error)
		if exitErr, ok := err.(exitCodeError); ok {
			return exitErr.code.Int()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return domain.ExitError.Int()
	}

	return domain.ExitNoComments.Int()
}

func runReview(cmd *cobra.Command, _ []string) error {
	// Disable colors if stdout is not a TTY
	if !terminal.IsStdoutTTY() {
		terminal.DisableColors()
	}

	logger := terminal.NewLogger(verbose)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr)
		logger.Log("Interrupted, shutting down...", terminal.StyleWarning)
		cancel()
	}()

	// Load config file (unless --no-config)
	var cfg *config.Config
	if !noConfig {
		result, err := config.LoadWithWarnings()
		if err != nil {
			logger.Logf(terminal.StyleError, "Config error: %v", err)
			return exitCode(domain.ExitError)
		}
		cfg = result.Config
		for _, warning := range result.Warnings {
			logger.Logf(terminal.StyleWarning, "Warning: %s", warning)
		}
	}

	// Build flag state from cobra's Changed() method
	flagState := config.FlagState{
		ProviderSet:  cmd.Flags().Changed("provider"),
		BaseSet:      cmd.Flags().Changed("base"),
		TimeoutSet:   cmd.Flags().Changed("timeout"),
		FormatSet:    cmd.Flags().Changed("format"),
		OutputSet:    cmd.Flags().Changed("output"),
		GitLabURLSet: cmd.Flags().Changed("gitlab-url"),
		ProjectSet:   cmd.Flags().Changed("project"),
	}

	envState := config.LoadEnvState()

	flagValues := config.ResolvedConfig{
		Provider:  providerName,
		Base:      baseRef,
		Timeout:   timeout,
		Format:    format,
		Output:    outputPath,
		GitLabURL: gitlabURL,
		Project:   project,
	}

	// Resolve final configuration (precedence: flags > env vars > config file > defaults)
	resolved := config.Resolve(cfg, envState, flagState, flagValues)

	// Config file values are validated at load; flag and env values land here.
	if !slices.Contains(llm.SupportedProviders, resolved.Provider) {
		logger.Logf(terminal.StyleError, "provider must be one of %v, got %q", llm.SupportedProviders, resolved.Provider)
		return exitCode(domain.ExitError)
	}
	if !slices.Contains(config.OutputFormats, resolved.Format) {
		logger.Logf(terminal.StyleError, "format must be one of %v, got %q", config.OutputFormats, resolved.Format)
		return exitCode(domain.ExitError)
	}
	if resolved.Timeout <= 0 {
		logger.Logf(terminal.StyleError, "timeout must be > 0, got %s", resolved.Timeout)
		return exitCode(domain.ExitError)
	}
	if mrIID > 0 && resolved.Project == "" {
		logger.Log("--mr requires --project (or a project in the config file)", terminal.StyleError)
		return exitCode(domain.ExitError)
	}

	opts := ReviewOpts{
		ResolvedConfig:  resolved,
		MR:              mrIID,
		DryRun:          dryRun,
		Verbose:         verbose,
		UseRefFile:      refFile,
		ExcludePatterns: config.Merge(cfg, excludePatterns),
	}

	code := executeReview(ctx, opts, logger)
	return exitCode(code)
}
