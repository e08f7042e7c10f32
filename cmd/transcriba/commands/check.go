package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/transcriba/transcriba"
	"github.com/transcriba/transcriba/bundle"
	"github.com/transcriba/transcriba/internal/logger"
)

var errFindings = errors.New("style violations found")

var checkCmd = &cobra.Command{
	Use:   "check <file.docx> [file.docx...]",
	Short: "Validate transcripts and write cleaned copies with error reports",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringP("output", "o", "", "directory for cleaned copies and reports (default: next to each input)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("output")
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	rules := rulesFromConfig()
	anyFindings := false
	anyFailed := false

	// Files are processed sequentially and independently; a file that
	// cannot be opened is skipped, the rest still go through.
	for _, filename := range args {
		outcome, err := transcriba.Open(filename).WithRules(rules).Run()
		if err != nil {
			logger.Error("file could not be opened", "file", filename, "error", err)
			anyFailed = true
			continue
		}

		if err := writeOutputs(filename, outDir, outcome); err != nil {
			return err
		}

		res := outcome.Result
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d findings, %d characters removed\n",
			filename, len(res.Findings), res.Removed)
		for _, c := range res.CountByCategory() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", c.Category, c.Count)
		}
		if len(res.Findings) > 0 {
			anyFindings = true
		}
	}

	if anyFailed {
		return errors.New("some files could not be opened")
	}
	if anyFindings {
		return errFindings
	}
	return nil
}

// writeOutputs writes the cleaned copy and the report using the
// conventional _limpio / _errores names.
func writeOutputs(filename, outDir string, outcome *transcriba.Outcome) error {
	cleaned, err := outcome.CleanedBytes()
	if err != nil {
		return fmt.Errorf("serializing cleaned %s: %w", filename, err)
	}

	cleanedName, reportName := bundle.Names(filepath.Base(filename))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(filename)
	}

	cleanedPath := filepath.Join(dir, cleanedName)
	if err := os.WriteFile(cleanedPath, cleaned, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cleanedPath, err)
	}

	reportPath := filepath.Join(dir, reportName)
	reportText := outcome.Report(time.Now())
	if err := os.WriteFile(reportPath, []byte(reportText), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", reportPath, err)
	}

	logger.Debug("wrote outputs", "cleaned", cleanedPath, "report", reportPath)
	return nil
}
