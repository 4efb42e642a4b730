package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leaddash/internal/dataset"
	"leaddash/internal/export"
	"leaddash/internal/filter"
	"leaddash/internal/termview"
	"leaddash/internal/view"
)

func (a *app) summaryCmd() *cobra.Command {
	var lead string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print metrics, histogram and leads for a filter selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.render(cmd, lead)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), termview.Summary(m))
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().StringVar(&lead, "lead", "", "lead to show details for")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered leads to a CSV file or SQLite snapshot",
		Example: `  leaddash export --country France --out france.csv
  leaddash export --format sqlite --out leads.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.render(cmd, "")
			if err != nil {
				return err
			}
			if out == "" {
				out = export.Filename
				if format == "sqlite" {
					out = "filtered_leads.db"
				}
			}
			if err := writeExport(cmd.Context(), format, out, m); err != nil {
				return err
			}
			a.log.Info("export written",
				zap.String("path", out),
				zap.String("format", format),
				zap.Int("rows", m.Metrics.Count),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d leads to %s\n", m.Metrics.Count, out)
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default "+export.Filename+")")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or sqlite")
	return cmd
}

func writeExport(ctx context.Context, format, out string, m view.Model) error {
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	switch format {
	case "csv":
		b, err := export.CSV(m.Subset())
		if err != nil {
			return err
		}
		return os.WriteFile(out, b, 0o644)
	case "sqlite":
		return export.SQLite(ctx, out, m.Subset())
	default:
		return fmt.Errorf("unknown export format %q (want csv or sqlite)", format)
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the engine configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate config.yml and print errors and warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vr := a.validation
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "config: %s\n", a.userCfgPath)
			for _, warn := range vr.Warnings {
				fmt.Fprintf(w, "warning: %s\n", warn)
			}
			if !vr.OK() {
				return vr
			}
			fmt.Fprintln(w, "ok")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the path of the active config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(a.userCfgPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), abs)
			return nil
		},
	})
	return cmd
}

// render loads the dataset and runs the view pipeline for the filter flags.
func (a *app) render(cmd *cobra.Command, lead string) (view.Model, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ds, err := dataset.Load(ctx, a.datasetPath())
	if err != nil {
		return view.Model{}, err
	}
	lists, err := filterLists(cmd)
	if err != nil {
		return view.Model{}, err
	}
	req := view.Request{
		Selection: filter.FromLists(ds, lists),
		Lead:      lead,
	}
	return view.Render(ds, req, view.FromConfig(a.cfg))
}
