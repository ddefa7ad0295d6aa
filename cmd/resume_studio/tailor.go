package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/tailoring"
	"github.com/jonathan/resume-studio/internal/types"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume to a job description",
	Long: `Analyzes a resume against a job description and rewrites the work-experience
bullets to match the posting, preserving the resume's structure.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runTailor,
}

var (
	tailorConfigPath string
	tailorResume     string
	tailorJob        string
	tailorJobURL     string
	tailorOutput     string
	tailorAPIKey     string
	tailorVerbose    bool
)

func init() {
	// Config file flag (processed first)
	tailorCmd.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	tailorCmd.Flags().StringVarP(&tailorResume, "resume", "r", "", "Path to resume file (.txt, .pdf, .docx or structured .json)")
	tailorCmd.Flags().StringVarP(&tailorJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	tailorCmd.Flags().StringVarP(&tailorOutput, "output", "o", "", "Write the tailored resume JSON to this path")
	tailorCmd.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergedTailorConfig(cmd)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer client.Close()

	// Resume parsing and job fetching are independent; run them concurrently.
	var (
		resume *types.ResumeData
		job    string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resume, err = loadResume(gctx, client, cfg.Resume)
		return err
	})
	g.Go(func() error {
		var err error
		job, err = loadJobDescription(gctx, cfg.Job, cfg.JobURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if len(job) < tailoring.MinJobDescriptionLength {
		return fmt.Errorf("job description too short: %d characters (minimum %d)", len(job), tailoring.MinJobDescriptionLength)
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintResumeSummary(resume)
	}

	reconciler := tailoring.NewReconciler(client)
	analysis, err := reconciler.AnalyzeJobDescription(ctx, job, resume)
	if err != nil {
		return err
	}

	tailored := tailoring.TailoredResume(resume, analysis)

	printer.PrintJobAnalysis(analysis)
	if cfg.Verbose {
		printer.PrintTailoredChanges(resume, &tailored)
	}

	if cfg.Output != "" {
		if err := writeJSON(cfg.Output, tailored); err != nil {
			return err
		}
		fmt.Printf("Tailored resume written to %s\n", cfg.Output)
	}

	return nil
}

// mergedTailorConfig layers config file values under explicit CLI flags and
// validates the result.
func mergedTailorConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if tailorConfigPath != "" {
		loaded, err := config.LoadConfig(tailorConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// CLI overrides: only when the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = tailorResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = tailorJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = tailorJobURL
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = tailorOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = tailorAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = tailorVerbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if cfg.Resume == "" {
		return cfg, fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return cfg, fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	return cfg, nil
}
