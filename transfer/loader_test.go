package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/camden-git/carregistrybackend/database"
	"github.com/camden-git/carregistrybackend/logger"
	"github.com/camden-git/carregistrybackend/models"
)

func openStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.OpenAndInit(database.Options{Path: filepath.Join(t.TempDir(), "load.db")}, logger.NewNop())
	if err != nil {
		t.Fatalf("OpenAndInit() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoaderSkipsConstraintFailures(t *testing.T) {
	store := openStore(t)
	loader := NewLoader(logger.NewNop())

	persons := []models.Person{
		{PersonID: 1, Name: "David", Age: 35, Email: "david@x.com"},
		{PersonID: 2, Name: "Dup", Age: 20, Email: "david@x.com"},
		{PersonID: 3, Name: "", Age: 20, Email: "blank@x.com"},
	}
	res, err := loader.LoadPersons(store, persons)
	if err != nil {
		t.Fatalf("LoadPersons() error = %v", err)
	}
	if res.Inserted != 1 || res.Skipped != 2 || len(res.Failures) != 2 {
		t.Errorf("LoadPersons() = %+v, want 1 inserted 2 skipped", res)
	}
	if res.Failures[0].ID != 2 || res.Failures[1].ID != 3 {
		t.Errorf("Failures = %+v", res.Failures)
	}

	cars := []models.Car{
		{CarID: 1, Brand: "Toyota", Model: "Corolla", Year: 2020, Color: "White", OwnerID: models.OwnerPtr(1)},
		{CarID: 2, Brand: "Honda", Model: "Civic", Year: 2019, Color: "Blue", OwnerID: models.OwnerPtr(9)},
	}
	res, err = loader.LoadCars(store, cars)
	if err != nil {
		t.Fatalf("LoadCars() error = %v", err)
	}
	if res.Inserted != 1 || res.Skipped != 1 || res.Failures[0].ID != 2 {
		t.Errorf("LoadCars() = %+v, want car 2 skipped", res)
	}
}

func TestExportFullReportFromStore(t *testing.T) {
	store := openStore(t)
	if err := store.InsertPerson(&models.Person{PersonID: 1, Name: "Yossi", Age: 42, Email: "yossi@x.com"}); err != nil {
		t.Fatalf("InsertPerson() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), FullReportFile)
	if err := ExportFullReport(store, path); err != nil {
		t.Fatalf("ExportFullReport() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "person_name,age,email,cars_count,car_brands\nYossi,42,yossi@x.com,0,No cars\n"
	if string(data) != want {
		t.Errorf("report = %q, want %q", data, want)
	}
}
