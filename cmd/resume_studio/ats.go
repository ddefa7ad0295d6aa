package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/ats"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/observability"
)

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score a resume's ATS compatibility",
	Long: `Runs an applicant-tracking-system compatibility scan on a resume and
reports the score with issues and recommendations. With --enhance the
resume is rewritten to address the findings.`,
	RunE: runATS,
}

var (
	atsResume  string
	atsEnhance bool
	atsOutput  string
	atsAPIKey  string
	atsVerbose bool
)

func init() {
	atsCmd.Flags().StringVarP(&atsResume, "resume", "r", "", "Path to resume file (.txt, .pdf, .docx or structured .json)")
	atsCmd.Flags().BoolVar(&atsEnhance, "enhance", false, "Rewrite the resume to address the scan findings")
	atsCmd.Flags().StringVarP(&atsOutput, "output", "o", "", "Write the enhanced resume JSON to this path (requires --enhance)")
	atsCmd.Flags().StringVar(&atsAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	atsCmd.Flags().BoolVarP(&atsVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := atsCmd.MarkFlagRequired("resume"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(atsCmd)
}

func runATS(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := atsAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if atsOutput != "" && !atsEnhance {
		return fmt.Errorf("--output requires --enhance")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer client.Close()

	resume, err := loadResume(ctx, client, atsResume)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if atsVerbose {
		printer.PrintResumeSummary(resume)
	}

	scorer := ats.NewScorer(client)
	analysis, err := scorer.ScoreCompatibility(ctx, resume)
	if err != nil {
		return err
	}
	printer.PrintATSAnalysis(analysis)

	if !atsEnhance {
		return nil
	}

	enhanced, err := scorer.EnhanceForATS(ctx, resume, analysis)
	if err != nil {
		return fmt.Errorf("enhancement failed: %w", err)
	}
	if atsVerbose {
		printer.PrintTailoredChanges(resume, &enhanced)
	}

	if atsOutput != "" {
		if err := writeJSON(atsOutput, enhanced); err != nil {
			return err
		}
		fmt.Printf("Enhanced resume written to %s\n", atsOutput)
	}
	return nil
}
