package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a structured resume to HTML, PDF or DOCX",
	Long: `Renders a structured resume JSON file into a document. The format is
inferred from the output extension: .html, .pdf (requires a local Chrome
install) or .docx.`,
	RunE: runExport,
}

var (
	exportResume   string
	exportOutput   string
	exportTemplate string
)

func init() {
	exportCmd.Flags().StringVarP(&exportResume, "resume", "r", "", "Path to structured resume JSON file")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (.html, .pdf or .docx)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template override: modern, classic, creative, minimalist or executive")

	for _, flag := range []string{"resume", "output"} {
		if err := exportCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(exportResume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	var resume types.ResumeData
	if err := json.Unmarshal(raw, &resume); err != nil {
		return fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	if exportTemplate != "" {
		if !types.ValidTemplate(exportTemplate) {
			return fmt.Errorf("unknown template %q", exportTemplate)
		}
		resume.Template = exportTemplate
	}
	if resume.Template == "" {
		resume.Template = types.TemplateModern
	}

	var output []byte
	switch strings.ToLower(filepath.Ext(exportOutput)) {
	case ".html":
		html, err := rendering.RenderHTML(&resume)
		if err != nil {
			return err
		}
		output = []byte(html)
	case ".pdf":
		output, err = rendering.RenderPDF(context.Background(), &resume)
		if err != nil {
			return err
		}
	case ".docx":
		output, err = rendering.RenderDOCX(&resume)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output extension %q (expected .html, .pdf or .docx)", filepath.Ext(exportOutput))
	}

	if err := os.WriteFile(exportOutput, output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(output), exportOutput)
	return nil
}
