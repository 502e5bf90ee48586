package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"carviz/app"
	"carviz/domain/core"
	"carviz/internal"
	"carviz/internal/config"
	"carviz/internal/container"
	"carviz/internal/dataset"
	"carviz/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var sourceFlag string

	rootCmd := &cobra.Command{
		Use:           "carviz",
		Short:         "Render and inspect the cars horsepower vs. MPG dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Dataset URL or file (default: DATA_SOURCE)")

	load := func(ctx context.Context) (*container.Container, error) {
		_ = godotenv.Load()
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if sourceFlag != "" {
			cfg.Data.Source = sourceFlag
		}
		logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
		c, err := container.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		c.LoadDataset(ctx)
		if c.LoadErr != nil {
			return nil, c.LoadErr
		}
		return c, nil
	}

	rootCmd.AddCommand(
		newRenderCmd(load),
		newSummaryCmd(load),
		newCategoriesCmd(load),
	)
	return rootCmd
}

type loadFunc func(ctx context.Context) (*container.Container, error)

func newRenderCmd(load loadFunc) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "render [record-id]",
		Short: "Write the scatterplot, and the details and star plot of a selected record",
		Long: `Write scatterplot.svg to the output directory. With a record id, the record
is highlighted and details.html and starplot.svg are written as well.

Example: carviz render 12 --out ./out`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(cmd.Context())
			if err != nil {
				return err
			}
			var state app.State
			if len(args) == 1 {
				id, err := core.ParseRecordID(args[0])
				if err != nil {
					return err
				}
				if _, err := c.Service.Record(id); err != nil {
					return err
				}
				state.Selected = &id
			}
			return writeRender(cmd.OutOrStdout(), c.Service.Render(state), outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	return cmd
}

func writeRender(w io.Writer, page app.Page, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outputs := []struct {
		file string
		name string
		data interface{}
		skip bool
	}{
		{"scatterplot.svg", "scatterplot", page.Scatterplot, false},
		{"details.html", "details", page.Details, page.Details == nil},
		{"starplot.svg", "starplot", page.StarPlot, page.StarPlot == nil},
	}
	for _, out := range outputs {
		if out.skip {
			continue
		}
		content, err := ui.RenderFragment(out.name, out.data)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, out.file)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", path)
	}
	return nil
}

func newSummaryCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print row counts, category counts and dimension statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(cmd.Context())
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), c.Service.Summary())
			return nil
		},
	}
}

func printSummary(w io.Writer, s dataset.Summary) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Source:   %s\n", s.Source)
	p.Fprintf(w, "Rows:     %d total, %d valid, %d dropped\n", s.TotalRows, s.ValidRows, s.DroppedRows)
	p.Fprintf(w, "Horsepower: mean %.1f  sd %.1f  median %.1f  min %.0f  max %.0f\n",
		s.Horsepower.Mean, s.Horsepower.StdDev, s.Horsepower.Median, s.Horsepower.Min, s.Horsepower.Max)
	p.Fprintf(w, "City MPG:   mean %.1f  sd %.1f  median %.1f  min %.0f  max %.0f\n",
		s.CityMPG.Mean, s.CityMPG.StdDev, s.CityMPG.Median, s.CityMPG.Min, s.CityMPG.Max)
	p.Fprintf(w, "Pearson r:  %.3f (p = %.4f)\n", s.Relationship.Pearson, s.Relationship.PValue)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nTYPE\tCOUNT")
	for _, cc := range s.CategoryCounts {
		p.Fprintf(tw, "%s\t%d\n", cc.Type, cc.Count)
	}
	tw.Flush()
}

func newCategoriesCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List vehicle types with their color and shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tCOLOR\tSHAPE")
			for _, style := range c.Service.Encoding().Styles() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", style.Category, style.Color, style.Shape)
			}
			return tw.Flush()
		},
	}
}
