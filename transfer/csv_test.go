package transfer

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/camden-git/carregistrybackend/models"
)

func TestPersonsRoundTrip(t *testing.T) {
	persons := []models.Person{
		{PersonID: 1, Name: "David Cohen", Age: 35, Email: "david@example.com", Cars: []models.Car{}},
		{PersonID: 2, Name: "Levi, Sarah", Age: 28, Email: "sarah@example.com", Cars: []models.Car{}},
	}
	path := filepath.Join(t.TempDir(), "out", PersonsFile)

	if err := ExportPersons(persons, path); err != nil {
		t.Fatalf("ExportPersons() error = %v", err)
	}
	got, err := ImportPersons(path)
	if err != nil {
		t.Fatalf("ImportPersons() error = %v", err)
	}
	if !reflect.DeepEqual(got, persons) {
		t.Errorf("round trip = %+v, want %+v", got, persons)
	}
}

func TestCarsRoundTrip(t *testing.T) {
	cars := []models.Car{
		{CarID: 1, Brand: "Toyota", Model: "Corolla", Year: 2020, Color: "White", OwnerID: models.OwnerPtr(1)},
		{CarID: 2, Brand: "Kia", Model: "Sportage", Year: 2023, Color: "Gray"},
	}
	path := filepath.Join(t.TempDir(), CarsFile)

	if err := ExportCars(cars, path); err != nil {
		t.Fatalf("ExportCars() error = %v", err)
	}
	got, err := ImportCars(path)
	if err != nil {
		t.Fatalf("ImportCars() error = %v", err)
	}
	if !reflect.DeepEqual(got, cars) {
		t.Errorf("round trip = %+v, want %+v", got, cars)
	}
}

func TestWriteCarsOwnerless(t *testing.T) {
	var buf bytes.Buffer
	cars := []models.Car{{CarID: 7, Brand: "Kia", Model: "Rio", Year: 2018, Color: "Red"}}
	if err := WriteCars(&buf, cars); err != nil {
		t.Fatalf("WriteCars() error = %v", err)
	}
	want := "car_id,brand,model,year,color,owner_id\n7,Kia,Rio,2018,Red,\n"
	if buf.String() != want {
		t.Errorf("WriteCars() = %q, want %q", buf.String(), want)
	}
}

func TestWriteFullReport(t *testing.T) {
	persons := []models.Person{
		{PersonID: 1, Name: "David", Age: 35, Email: "david@x.com", Cars: []models.Car{
			{CarID: 1, Brand: "Toyota", Model: "Corolla"},
			{CarID: 2, Brand: "Honda", Model: "Civic"},
		}},
		{PersonID: 2, Name: "Yossi", Age: 42, Email: "yossi@x.com", Cars: []models.Car{}},
	}
	var buf bytes.Buffer
	if err := WriteFullReport(&buf, persons); err != nil {
		t.Fatalf("WriteFullReport() error = %v", err)
	}
	want := "person_name,age,email,cars_count,car_brands\n" +
		"David,35,david@x.com,2,\"Toyota Corolla, Honda Civic\"\n" +
		"Yossi,42,yossi@x.com,0,No cars\n"
	if buf.String() != want {
		t.Errorf("WriteFullReport() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestReadPersonsHeaderHandling(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []models.Person
	}{
		{
			name:  "reordered columns with extra",
			input: "email,note,age,name,person_id\na@x.com,hi,30,Ann,4\n",
			want:  []models.Person{{PersonID: 4, Name: "Ann", Age: 30, Email: "a@x.com", Cars: []models.Car{}}},
		},
		{
			name:  "byte order mark",
			input: "\ufeffperson_id,name,age,email\n1,Ann,30,a@x.com\n",
			want:  []models.Person{{PersonID: 1, Name: "Ann", Age: 30, Email: "a@x.com", Cars: []models.Car{}}},
		},
		{
			name:  "header only",
			input: "person_id,name,age,email\n",
			want:  []models.Person{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPersons(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadPersons() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadPersons() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadPersonsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantCol  string
	}{
		{"non-numeric age", "person_id,name,age,email\n1,Ann,30,a@x.com\n2,Bob,abc,b@x.com\n", 3, "age"},
		{"non-numeric id", "person_id,name,age,email\nx,Ann,30,a@x.com\n", 2, "person_id"},
		{"missing column", "person_id,name,email\n1,Ann,a@x.com\n", 1, "age"},
		{"wrong field count", "person_id,name,age,email\n1,Ann,30\n", 2, ""},
		{"empty input", "", 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPersons(strings.NewReader(tt.input))
			if got != nil {
				t.Errorf("ReadPersons() = %+v, want nil", got)
			}
			if !errors.Is(err, ErrMalformedRow) {
				t.Fatalf("ReadPersons() error = %v, want ErrMalformedRow", err)
			}
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("error %v is not a *RowError", err)
			}
			if rowErr.Line != tt.wantLine || rowErr.Column != tt.wantCol {
				t.Errorf("RowError = line %d column %q, want line %d column %q",
					rowErr.Line, rowErr.Column, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestReadCarsMalformedOwner(t *testing.T) {
	input := "car_id,brand,model,year,color,owner_id\n1,Kia,Rio,2018,Red,one\n"
	cars, err := ReadCars(strings.NewReader(input))
	if cars != nil || !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("ReadCars() = %v, %v; want nil, ErrMalformedRow", cars, err)
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := ImportPersons(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("ImportPersons() on missing file succeeded")
	}
	if errors.Is(err, ErrMalformedRow) {
		t.Errorf("missing file reported as malformed row: %v", err)
	}
}

func TestReadPreview(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("\ufeffname,score\n")
	for i := 0; i < 8; i++ {
		sb.WriteString("row,1\n")
	}
	sb.WriteString("short\n")

	p, err := ReadPreview(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ReadPreview() error = %v", err)
	}
	if !reflect.DeepEqual(p.Columns, []string{"name", "score"}) {
		t.Errorf("Columns = %q", p.Columns)
	}
	if p.RowCount != 9 {
		t.Errorf("RowCount = %d, want 9", p.RowCount)
	}
	if len(p.Rows) != PreviewRows {
		t.Errorf("len(Rows) = %d, want %d", len(p.Rows), PreviewRows)
	}
}
