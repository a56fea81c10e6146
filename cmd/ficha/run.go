// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/ficha-cadastral/internal/logging"
	"github.com/pdiddy/ficha-cadastral/internal/pipeline"
	"github.com/pdiddy/ficha-cadastral/internal/sheet"
	"github.com/pdiddy/ficha-cadastral/internal/textract"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every PDF in the input folder",
	Long: `Run processes the PDFs in the input folder as one client: unreadable or
unrecognized files go to the error folder, the CNPJ card and state
registration are merged into one record, and the Excel template is filled.
On success all inputs move to the processed folder; otherwise to the error
folder.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	runCmd.Flags().Bool("pause", false, "wait for Enter before exiting")

	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if pause, _ := cmd.Flags().GetBool("pause"); pause {
		defer waitForEnter(cmd.InOrStdin(), out)
	}

	if err := pipeline.EnsureFolders(cfg); err != nil {
		return &exitError{code: exitSetup, err: err}
	}

	logger, closeLog, err := logging.New(logging.FromSettings(cfg.Settings))
	if err != nil {
		return &exitError{code: exitSetup, err: err}
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p := pipeline.New(cfg, textract.NewPDFExtractor(logger), sheet.NewWriter(logger), logger)
	run, err := p.Run(ctx)
	if err != nil {
		logger.Error("batch aborted", zap.Error(err))
		return &exitError{code: exitSetup, err: err}
	}

	printSummary(out, run)
	return nil
}

func printSummary(w io.Writer, run *pipeline.Run) {
	fmt.Fprintf(w, "\nBatch summary: outcome %s, %d file(s) read, %d quarantined\n",
		run.Outcome, len(run.Files), len(run.Quarantined()))
	if run.OutputPath != "" {
		fmt.Fprintf(w, "  output: %s\n", run.OutputPath)
	}
	for _, f := range run.MoveFailures {
		fmt.Fprintf(w, "  not moved: %s (%v)\n", f.Source, f.Err)
	}
}

func waitForEnter(in io.Reader, out io.Writer) {
	fmt.Fprint(out, "\nPress Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}
