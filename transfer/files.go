package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/camden-git/carregistrybackend/models"
	"github.com/camden-git/carregistrybackend/repository"
)

// Default file names used by the export command and the demo.
const (
	PersonsFile    = "persons.csv"
	CarsFile       = "cars.csv"
	FullReportFile = "full_report.csv"
)

func createFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func ExportPersons(persons []models.Person, path string) error {
	return createFile(path, func(w io.Writer) error { return WritePersons(w, persons) })
}

func ExportCars(cars []models.Car, path string) error {
	return createFile(path, func(w io.Writer) error { return WriteCars(w, cars) })
}

// ExportFullReport loads every person with their cars from src and writes the
// per-person report.
func ExportFullReport(src repository.PersonRepository, path string) error {
	persons, err := src.GetAllPersons()
	if err != nil {
		return fmt.Errorf("failed to load persons for report: %w", err)
	}
	return createFile(path, func(w io.Writer) error { return WriteFullReport(w, persons) })
}

func ImportPersons(path string) ([]models.Person, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	persons, err := ReadPersons(f)
	if err != nil {
		return nil, fmt.Errorf("failed to import persons from %s: %w", path, err)
	}
	return persons, nil
}

func ImportCars(path string) ([]models.Car, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	cars, err := ReadCars(f)
	if err != nil {
		return nil, fmt.Errorf("failed to import cars from %s: %w", path, err)
	}
	return cars, nil
}

// ExportAll writes persons.csv, cars.csv and full_report.csv into dir and
// returns their paths.
func ExportAll(persons repository.PersonRepository, cars repository.CarRepository, dir string) ([]string, error) {
	allPersons, err := persons.GetAllPersons()
	if err != nil {
		return nil, fmt.Errorf("failed to load persons for export: %w", err)
	}
	allCars, err := cars.GetAllCars()
	if err != nil {
		return nil, fmt.Errorf("failed to load cars for export: %w", err)
	}

	personsPath := filepath.Join(dir, PersonsFile)
	carsPath := filepath.Join(dir, CarsFile)
	reportPath := filepath.Join(dir, FullReportFile)
	if err := ExportPersons(allPersons, personsPath); err != nil {
		return nil, err
	}
	if err := ExportCars(allCars, carsPath); err != nil {
		return nil, err
	}
	if err := ExportFullReport(persons, reportPath); err != nil {
		return nil, err
	}
	return []string{personsPath, carsPath, reportPath}, nil
}
