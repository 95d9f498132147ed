// Package main provides the CLI entry point for exdiff-go.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ukaji3/exdiff-go/internal/config"
	"github.com/ukaji3/exdiff-go/internal/logging"
	"github.com/ukaji3/exdiff-go/internal/server"
	"github.com/ukaji3/exdiff-go/pkg/exdiff"
	"github.com/ukaji3/exdiff-go/pkg/exdiff/output"
)

var (
	logLevel    string
	sheet       string
	csvPath     string
	xlsxPath    string
	jsonOut     bool
	pretty      bool
	changedOnly bool
	color       bool
	showInputs  bool
	configPath  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "exdiff",
		Short: "Compare two CSV files or Excel workbooks cell by cell",
		Long: `exdiff aligns two tables by column name and row position and reports
every cell whose value changed as "old → new".

Both inputs must be CSV files, or both must be .xlsx workbooks sharing at
least one sheet name.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	compareCmd := &cobra.Command{
		Use:   "compare LEFT RIGHT",
		Short: "Compare two files and print or export the difference report",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}
	compareCmd.Flags().StringVarP(&sheet, "sheet", "s", "", "Sheet to compare (default: first common sheet)")
	compareCmd.Flags().StringVar(&csvPath, "csv", "", "Write the report as CSV to this path (a directory gets "+output.ReportCSVName+")")
	compareCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the report workbook to this path (a directory gets "+output.ReportWorkbookName+")")
	compareCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON instead of a table")
	compareCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	compareCmd.Flags().BoolVar(&changedOnly, "changed-only", false, "Print only the rows that differ, with their original values")
	compareCmd.Flags().BoolVar(&color, "color", false, "Highlight changed cells with color")
	compareCmd.Flags().BoolVar(&showInputs, "inputs", false, "Also print both inputs aligned onto the shared columns")

	sheetsCmd := &cobra.Command{
		Use:   "sheets LEFT RIGHT",
		Short: "List the sheets two workbooks have in common",
		Args:  cobra.ExactArgs(2),
		RunE:  runSheets,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload page and comparison API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file (environment variables take precedence)")

	rootCmd.AddCommand(compareCmd, sheetsCmd, serveCmd)
	return rootCmd
}

func cliLogger() *slog.Logger {
	return logging.New(config.LoggingConfig{Level: logLevel, Format: "text"}, os.Stderr)
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger := logging.Component(cliLogger(), "compare")

	result, err := exdiff.CompareFiles(args[0], args[1], exdiff.Options{Sheet: sheet})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	logger.Debug("compared",
		slog.String("left", result.LeftName),
		slog.String("right", result.RightName),
		slog.Int("changed_cells", result.Summary.ChangedCells))

	out := cmd.OutOrStdout()
	if jsonOut {
		data, err := output.ToJSON(result, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		output.WriteTable(out, result, output.TableOptions{Color: color, ChangedOnly: changedOnly, Inputs: showInputs})
	}

	if csvPath != "" {
		err := writeReport(cmd.ErrOrStderr(), csvPath, output.ReportCSVName, func(w io.Writer) error {
			return output.WriteCSV(w, result, output.CSVOptions{BOMPrefix: true})
		})
		if err != nil {
			return fmt.Errorf("failed to write CSV report: %w", err)
		}
	}
	if xlsxPath != "" {
		err := writeReport(cmd.ErrOrStderr(), xlsxPath, output.ReportWorkbookName, func(w io.Writer) error {
			return output.WriteWorkbook(w, result)
		})
		if err != nil {
			return fmt.Errorf("failed to write workbook report: %w", err)
		}
	}
	return nil
}

// writeReport renders a report into path, or into defaultName inside path
// when path is a directory, and notes the written size on status.
func writeReport(status io.Writer, path, defaultName string, write func(io.Writer) error) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, defaultName)
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Fprintf(status, "wrote %s (%s)\n", path, humanize.Bytes(uint64(buf.Len())))
	return nil
}

func runSheets(cmd *cobra.Command, args []string) error {
	c, err := exdiff.OpenFiles(args[0], args[1])
	if err != nil {
		return fmt.Errorf("cannot compare files: %w", err)
	}
	defer c.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mode: %s\n", c.Mode())
	for _, s := range c.CommonSheets() {
		fmt.Fprintln(out, s)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

