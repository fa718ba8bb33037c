package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/spf13/cobra"
)

var (
	catalogCategory string
	catalogOutput   string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the AI tool catalog",
}

var catalogListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List tools, most popular first",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		tools, err := a.catalog.List(ctx, core.Category(catalogCategory))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tAPI\tPOPULARITY")
		for _, t := range tools {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", t.ID, t.Name, t.Category, t.APIType, t.Popularity)
		}
		return w.Flush()
	},
}

var catalogImportCmd = &cobra.Command{
	Use:          "import <file.json>",
	Short:        "Add or update tools from a JSON file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := a.catalog.Import(ctx, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d tools\n", n)
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:          "export",
	Short:        "Write the catalog as JSON",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if catalogOutput == "" {
			return a.catalog.Export(ctx, cmd.OutOrStdout())
		}

		f, err := os.Create(catalogOutput)
		if err != nil {
			return err
		}
		if err := a.catalog.Export(ctx, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

var catalogSeedCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Load the bundled tools into the catalog",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupStderrLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.catalog.Seed(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tools\n", n)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringVar(&catalogCategory, "category", "", "only list tools of this category")
	catalogExportCmd.Flags().StringVarP(&catalogOutput, "out", "o", "", "write to a file instead of stdout")

	catalogCmd.AddCommand(catalogListCmd, catalogImportCmd, catalogExportCmd, catalogSeedCmd)
	rootCmd.AddCommand(catalogCmd)
}
