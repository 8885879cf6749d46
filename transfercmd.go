package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/camden-git/carregistrybackend/transfer"
	"github.com/camden-git/carregistrybackend/utils"
)

var exportZip bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export persons, cars and the full report to CSV",
	Long: `Writes persons.csv, cars.csv and full_report.csv into the export
directory (EXPORT_DIRECTORY). With --zip the three files are also packed into
an archive next to them.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import persons or cars from a CSV file",
	Long: `Parses the whole file first; a single malformed row imports nothing.
Rows that break a uniqueness or owner constraint are skipped and reported.

Examples:
  carregistry import persons persons.csv
  carregistry import cars cars.csv`,
}

var importPersonsCmd = &cobra.Command{
	Use:   "persons <file>",
	Short: "Import persons from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportPersons,
}

var importCarsCmd = &cobra.Command{
	Use:   "cars <file>",
	Short: "Import cars from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCars,
}

func init() {
	exportCmd.Flags().BoolVar(&exportZip, "zip", false, "Also pack the exported files into a ZIP archive")
	rootCmd.AddCommand(exportCmd)

	importCmd.AddCommand(importPersonsCmd)
	importCmd.AddCommand(importCarsCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := os.MkdirAll(cfg.ExportDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", cfg.ExportDirectory, err)
	}
	files, err := transfer.ExportAll(store, store, cfg.ExportDirectory)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintf(out, "Exported %s\n", f)
	}

	if exportZip {
		name, size, err := utils.CreateExportArchive(files, cfg.ExportDirectory, appLog)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Archive %s (%d bytes)\n", name, size)
	}
	return nil
}

func runImportPersons(cmd *cobra.Command, args []string) error {
	persons, err := transfer.ImportPersons(args[0])
	if err != nil {
		return err
	}
	store, err := openStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := transfer.NewLoader(appLog).LoadPersons(store, persons)
	if err != nil {
		return err
	}
	printImportResult(cmd, "persons", result)
	return nil
}

func runImportCars(cmd *cobra.Command, args []string) error {
	cars, err := transfer.ImportCars(args[0])
	if err != nil {
		return err
	}
	store, err := openStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := transfer.NewLoader(appLog).LoadCars(store, cars)
	if err != nil {
		return err
	}
	printImportResult(cmd, "cars", result)
	return nil
}

func printImportResult(cmd *cobra.Command, kind string, result transfer.ImportResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d %s, skipped %d\n", result.Inserted, kind, result.Skipped)
	for _, f := range result.Failures {
		fmt.Fprintf(out, "  %d: %s\n", f.ID, f.Reason)
	}
}
