package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amonks/taskmate/internal/export"
	"github.com/amonks/taskmate/internal/ui"
	"github.com/amonks/taskmate/internal/validation"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export both task lists",
	Long: `Export both task lists.

The format defaults to the extension of --output, or json when writing
to stdout. PDF output requires --output when stdout is a terminal.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format ("+validation.FormatValidValues(export.Formats())+")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
}

func resolveExportFormat(flagValue, output string) (export.Format, error) {
	if flagValue != "" {
		return export.ParseFormat(flagValue)
	}
	if format, ok := export.FormatForPath(output); ok {
		return format, nil
	}
	return export.FormatJSON, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := resolveExportFormat(exportFormat, exportOutput)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format == export.FormatPDF && exportOutput == "" && ui.IsTerminal(out) {
		return fmt.Errorf("refusing to write PDF to a terminal; use --output")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := export.Bytes(format, export.Take(s.store))
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	if exportOutput == "" {
		_, err := out.Write(data)
		return err
	}
	if dir := filepath.Dir(exportOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", format, exportOutput)
	return nil
}
