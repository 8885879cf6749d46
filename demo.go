package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/camden-git/carregistrybackend/models"
	"github.com/camden-git/carregistrybackend/repository"
	"github.com/camden-git/carregistrybackend/stats"
	"github.com/camden-git/carregistrybackend/transfer"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Seed a demo database, print it and export it to CSV",
	Long: `Seeds three persons and five cars into the demo database
(DEMO_DATABASE_PATH), prints every person with their cars and the registry
statistics, then writes demo_persons.csv, demo_cars.csv and
demo_full_report.csv into the export directory.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func demoPersons() []models.Person {
	return []models.Person{
		{PersonID: 1, Name: "David Cohen", Age: 35, Email: "david@example.com"},
		{PersonID: 2, Name: "Sarah Levi", Age: 28, Email: "sarah@example.com"},
		{PersonID: 3, Name: "Yossi Abraham", Age: 42, Email: "yossi@example.com"},
	}
}

func demoCars() []models.Car {
	return []models.Car{
		{CarID: 1, Brand: "Toyota", Model: "Corolla", Year: 2020, Color: "White", OwnerID: models.OwnerPtr(1)},
		{CarID: 2, Brand: "Honda", Model: "Civic", Year: 2019, Color: "Blue", OwnerID: models.OwnerPtr(1)},
		{CarID: 3, Brand: "Mazda", Model: "3", Year: 2021, Color: "Red", OwnerID: models.OwnerPtr(2)},
		{CarID: 4, Brand: "Hyundai", Model: "i30", Year: 2022, Color: "Black", OwnerID: models.OwnerPtr(3)},
		{CarID: 5, Brand: "Kia", Model: "Sportage", Year: 2023, Color: "Gray", OwnerID: models.OwnerPtr(3)},
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	path := cfg.DemoDatabasePath
	if dbFlag != "" {
		path = dbFlag
	}
	store, err := openStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return demo(cmd.OutOrStdout(), store, cfg.ExportDirectory)
}

// demo runs against any gateway so it can be exercised without the CLI.
// Records that already exist are reported by the store and skipped.
func demo(out io.Writer, gw repository.Gateway, exportDir string) error {
	fmt.Fprintln(out, "Inserting data...")
	for _, p := range demoPersons() {
		p := p
		if err := gw.InsertPerson(&p); err != nil {
			appLog.Warn("demo person not inserted", "person_id", p.PersonID, "error", err)
		}
	}
	for _, c := range demoCars() {
		c := c
		if err := gw.InsertCar(&c); err != nil {
			appLog.Warn("demo car not inserted", "car_id", c.CarID, "error", err)
		}
	}

	persons, err := gw.GetAllPersons()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(out, "All Persons:")
	printPersons(out, persons)

	summary, err := stats.NewService(gw).Summary()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, stats.FormatSummary(summary))

	fmt.Fprintln(out, "\nExporting to CSV...")
	cars, err := gw.GetAllCars()
	if err != nil {
		return err
	}
	if err := transfer.ExportPersons(persons, filepath.Join(exportDir, "demo_persons.csv")); err != nil {
		return err
	}
	if err := transfer.ExportCars(cars, filepath.Join(exportDir, "demo_cars.csv")); err != nil {
		return err
	}
	if err := transfer.ExportFullReport(gw, filepath.Join(exportDir, "demo_full_report.csv")); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nDemo completed!")
	return nil
}

func printPersons(out io.Writer, persons []models.Person) {
	for _, p := range persons {
		fmt.Fprintf(out, "\n%s\n", p)
		for _, c := range p.Cars {
			fmt.Fprintf(out, "   └─ %s\n", c)
		}
	}
}
