package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invsummary/internal/config"
	"invsummary/internal/exporter"
	"invsummary/internal/infrastructure"
	"invsummary/internal/services"
	"invsummary/internal/validation"
	"invsummary/pkg/contracts/domain"
)

// workspace runs the report service against local files inside a
// throwaway session.
type workspace struct {
	paths     *config.Paths
	files     *validation.FileValidator
	service   *services.ReportService
	sessionID string
}

func newWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, err
	}

	store := services.NewSessionStore(cfg.Session, nil, logger)
	service := services.NewReportService(store, cfg.Upload, nil, logger)
	info := service.CreateSession(ctx)

	return &workspace{
		paths:     paths,
		files:     validation.NewFileValidator(logger),
		service:   service,
		sessionID: info.ID,
	}, nil
}

func (ws *workspace) uploadInventory(ctx context.Context, slot, path string) (*services.UploadResult, error) {
	format, err := ws.files.ValidateInputFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", slot, err)
	}
	defer f.Close()

	return ws.service.UploadInventory(ctx, ws.sessionID, slot, services.Upload{
		FileName: filepath.Base(path),
		Format:   string(format),
		Body:     f,
	})
}

func (ws *workspace) uploadRap(ctx context.Context, path string) error {
	format, err := ws.files.ValidateInputFile(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open RAP file: %w", err)
	}
	defer f.Close()

	_, err = ws.service.UploadRap(ctx, ws.sessionID, services.Upload{
		FileName: filepath.Base(path),
		Format:   string(format),
		Body:     f,
	})
	return err
}

func newInventoryCmd() *cobra.Command {
	files := map[string]*string{
		domain.SourceHK:  new(string),
		domain.SourceUSA: new(string),
		domain.SourceIND: new(string),
	}
	var out string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Summarize inventory files per location",
		Example: "  invsummary inventory --hk hk.xlsx --usa usa.csv\n" +
			"  invsummary inventory --hk hk.xlsx --out summary.xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := newWorkspace(ctx)
			if err != nil {
				return err
			}
			if out != "" {
				if err := ws.files.ValidateOutputFile(out, ".xlsx"); err != nil {
					return err
				}
			}

			uploaded := 0
			for _, slot := range domain.InventorySlots {
				path := *files[slot]
				if path == "" {
					continue
				}
				if _, err := ws.uploadInventory(ctx, slot, path); err != nil {
					return err
				}
				uploaded++
			}
			if uploaded == 0 {
				return fmt.Errorf("at least one of --hk, --usa or --ind is required")
			}

			report, err := ws.service.InventorySummary(ctx, ws.sessionID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, rejected := range report.Rejected {
				fmt.Fprintf(w, "%s rejected: %s\n", rejected.Source, rejected.Message)
			}
			fmt.Fprintln(w, "Summary")
			if err := printTable(w, report.Summary); err != nil {
				return err
			}
			fmt.Fprintln(w, "\nFor Web")
			if err := printTable(w, report.ForWeb); err != nil {
				return err
			}

			if out == "" {
				return nil
			}
			return writeFile(out, func(f io.Writer) error {
				return ws.service.InventoryWorkbook(ctx, ws.sessionID, f)
			})
		},
	}

	cmd.Flags().StringVar(files[domain.SourceHK], "hk", "", "HK inventory file (.csv or .xlsx)")
	cmd.Flags().StringVar(files[domain.SourceUSA], "usa", "", "USA inventory file (.csv or .xlsx)")
	cmd.Flags().StringVar(files[domain.SourceIND], "ind", "", "IND inventory file (.csv or .xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "write the Summary and For Web tables to this XLSX file")
	return cmd
}

func newRapCmd() *cobra.Command {
	var file, out string

	cmd := &cobra.Command{
		Use:   "rap",
		Short: "Summarize a RAP listing file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := newWorkspace(ctx)
			if err != nil {
				return err
			}
			if out != "" {
				if err := ws.files.ValidateOutputFile(out, ".xlsx"); err != nil {
					return err
				}
			}
			if err := ws.uploadRap(ctx, file); err != nil {
				return err
			}

			summary, err := ws.service.RapSummary(ctx, ws.sessionID)
			if err != nil {
				return err
			}

			table := exporter.RapTable(summary)
			if err := printTable(cmd.OutOrStdout(), table); err != nil {
				return err
			}

			if out == "" {
				return nil
			}
			return writeFile(out, func(f io.Writer) error {
				return exporter.WriteSummaryWorkbook(f, exporter.Sheet{Name: "RAP", Table: table})
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "RAP listing file (.csv or .xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "write the RAP summary to this XLSX file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDrillDownCmd() *cobra.Command {
	var source, metric, country, file, out string

	cmd := &cobra.Command{
		Use:   "drilldown",
		Short: "Export the rows behind one summary count as CSV",
		Example: "  invsummary drilldown --source HK --metric NFW --file hk.xlsx\n" +
			"  invsummary drilldown --source RAP --country \"Hong Kong\" --file rap.csv --out hk_rap.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (metric == "") == (country == "") {
				return fmt.Errorf("exactly one of --metric or --country is required")
			}

			ctx := cmd.Context()
			ws, err := newWorkspace(ctx)
			if err != nil {
				return err
			}

			var dd *services.DrillDown
			if strings.EqualFold(strings.TrimSpace(source), domain.SourceRAP) {
				if err := ws.uploadRap(ctx, file); err != nil {
					return err
				}
				dd, err = ws.service.RapDrillDown(ctx, ws.sessionID, metric, country)
			} else {
				if country != "" {
					return fmt.Errorf("--country only applies to --source RAP")
				}
				var result *services.UploadResult
				result, err = ws.uploadInventory(ctx, source, file)
				if err == nil && !result.Valid {
					err = fmt.Errorf("%s file is missing required columns: %s", result.Source, strings.Join(result.Missing, ", "))
				}
				if err == nil {
					dd, err = ws.service.InventoryDrillDown(ctx, ws.sessionID, result.Source, metric)
				}
			}
			if err != nil {
				return err
			}

			path, err := ws.writeDrillDown(dd, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", dd.Count, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "HK, USA, IND or RAP")
	cmd.Flags().StringVar(&metric, "metric", "", "metric name, e.g. \"NFW Memo\" or \"Hong Kong Count\"")
	cmd.Flags().StringVar(&country, "country", "", "RAP country to list")
	cmd.Flags().StringVar(&file, "file", "", "file to load for the source")
	cmd.Flags().StringVar(&out, "out", "", "CSV output path; relative paths and the default land in the exports directory")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// writeDrillDown writes dd to out, or under the exports directory with the
// standard file name when out is empty.
func (ws *workspace) writeDrillDown(dd *services.DrillDown, out string) (string, error) {
	writer := exporter.NewCSVWriter(ws.paths)
	if out == "" {
		return writer.WriteDrillDown(dd.Metric, dd.Source, dd.Columns, dd.Records)
	}
	if !filepath.IsAbs(out) {
		out = ws.paths.GetExportPath(out)
	}
	if err := ws.files.ValidateOutputFile(out, ".csv"); err != nil {
		return "", err
	}
	return writer.WriteCSV(out, exporter.WriteOptions{
		Columns:   dd.Columns,
		Records:   dd.Records,
		BOMPrefix: true,
	})
}

func printTable(w io.Writer, table *domain.SummaryTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			cells[i] = strconv.Itoa(row.Counts[col])
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
