// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ficha-cadastral/internal/classify"
	"github.com/pdiddy/ficha-cadastral/internal/logging"
	"github.com/pdiddy/ficha-cadastral/internal/parse"
	"github.com/pdiddy/ficha-cadastral/internal/rules"
	"github.com/pdiddy/ficha-cadastral/internal/textract"
	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [pdfs...]",
	Short: "Show how PDFs are classified and parsed without moving them",
	Long: `Inspect extracts, classifies and parses each PDF and prints the result as
YAML. Nothing is moved and no spreadsheet is written, so it is safe to run on
the input folder to check a new document layout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("rules", false, "also apply the business rules to each parsed record")
	inspectCmd.Flags().String("log-level", "warn", "log level for extraction messages")

	rootCmd.AddCommand(inspectCmd)
}

// inspection is the YAML document printed per file.
type inspection struct {
	File        string             `yaml:"file"`
	Kind        types.DocumentKind `yaml:"kind"`
	Error       string             `yaml:"error,omitempty"`
	Fields      types.Record       `yaml:"fields,omitempty"`
	Diagnostics []string           `yaml:"diagnostics,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	applyRules, _ := cmd.Flags().GetBool("rules")
	level, _ := cmd.Flags().GetString("log-level")

	logger, closeLog, err := logging.New(logging.Options{Level: level, Console: os.Stderr})
	if err != nil {
		return err
	}
	defer closeLog()

	results := inspectFiles(cmd.Context(), textract.NewPDFExtractor(logger), args, applyRules, logger)
	return writeYAML(cmd.OutOrStdout(), results)
}

func inspectFiles(ctx context.Context, ext textract.Extractor, paths []string, applyRules bool, logger *zap.Logger) []inspection {
	results := make([]inspection, 0, len(paths))
	for _, path := range paths {
		res := inspection{File: path, Kind: types.KindUnrecognized}
		text, err := ext.Extract(ctx, path)
		switch {
		case err != nil:
			res.Error = err.Error()
		case text == "":
			res.Error = "no text extracted"
		default:
			res.Kind = classify.Classify(text)
			res.Fields = parse.Document(res.Kind, text, logger)
			if applyRules && res.Fields != nil {
				var diags []rules.Diagnostic
				res.Fields, diags = rules.Apply(res.Fields)
				for _, d := range diags {
					res.Diagnostics = append(res.Diagnostics, d.String())
				}
			}
		}
		results = append(results, res)
	}
	return results
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
