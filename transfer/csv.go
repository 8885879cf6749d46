// Package transfer moves persons and cars between the registry and CSV files.
package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/camden-git/carregistrybackend/models"
)

var (
	PersonHeader = []string{"person_id", "name", "age", "email"}
	CarHeader    = []string{"car_id", "brand", "model", "year", "color", "owner_id"}
	ReportHeader = []string{"person_name", "age", "email", "cars_count", "car_brands"}
)

// NoCarsLabel fills the car_brands column of the full report for persons
// without cars.
const NoCarsLabel = "No cars"

// ErrMalformedRow is matched by every parse failure: missing header, missing
// column, wrong field count or a non-numeric value in a numeric column.
var ErrMalformedRow = errors.New("malformed csv row")

// RowError pinpoints a parse failure. Line is 1-based and counts the header.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

func (e *RowError) Is(target error) bool { return target == ErrMalformedRow }

type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func (h headerIndex) require(columns []string) error {
	for _, col := range columns {
		if _, ok := h[col]; !ok {
			return &RowError{Line: 1, Column: col, Err: errors.New("missing column")}
		}
	}
	return nil
}

// record is one data row bound to the header it was read under.
type record struct {
	line   int
	fields []string
	idx    headerIndex
}

func (r record) str(col string) string {
	return r.fields[r.idx[col]]
}

func (r record) int64Field(col string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(r.str(col)), 10, 64)
	if err != nil {
		return 0, &RowError{Line: r.line, Column: col, Err: err}
	}
	return v, nil
}

func (r record) intField(col string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.str(col)))
	if err != nil {
		return 0, &RowError{Line: r.line, Column: col, Err: err}
	}
	return v, nil
}

// readRecords reads the header and every data row. Any structural problem
// aborts the whole read.
func readRecords(r io.Reader, required []string, each func(record) error) error {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &RowError{Line: 1, Err: errors.New("missing header row")}
		}
		return wrapReadError(err)
	}
	idx := makeHeaderIndex(header)
	if err := idx.require(required); err != nil {
		return err
	}

	line := 1
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return wrapReadError(err)
		}
		line++
		if err := each(record{line: line, fields: fields, idx: idx}); err != nil {
			return err
		}
	}
}

func wrapReadError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &RowError{Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("failed to read csv: %w", err)
}

// ReadPersons parses a persons CSV. Either every row converts or nothing is
// returned.
func ReadPersons(r io.Reader) ([]models.Person, error) {
	persons := []models.Person{}
	err := readRecords(r, PersonHeader, func(rec record) error {
		id, err := rec.int64Field("person_id")
		if err != nil {
			return err
		}
		age, err := rec.intField("age")
		if err != nil {
			return err
		}
		persons = append(persons, models.Person{
			PersonID: id,
			Name:     rec.str("name"),
			Age:      age,
			Email:    rec.str("email"),
			Cars:     []models.Car{},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return persons, nil
}

// ReadCars parses a cars CSV. A blank owner_id means the car has no owner.
func ReadCars(r io.Reader) ([]models.Car, error) {
	cars := []models.Car{}
	err := readRecords(r, CarHeader, func(rec record) error {
		id, err := rec.int64Field("car_id")
		if err != nil {
			return err
		}
		year, err := rec.intField("year")
		if err != nil {
			return err
		}
		car := models.Car{
			CarID: id,
			Brand: rec.str("brand"),
			Model: rec.str("model"),
			Year:  year,
			Color: rec.str("color"),
		}
		if strings.TrimSpace(rec.str("owner_id")) != "" {
			owner, err := rec.int64Field("owner_id")
			if err != nil {
				return err
			}
			car.OwnerID = models.OwnerPtr(owner)
		}
		cars = append(cars, car)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

func WritePersons(w io.Writer, persons []models.Person) error {
	rows := make([][]string, 0, len(persons))
	for _, p := range persons {
		rows = append(rows, []string{
			strconv.FormatInt(p.PersonID, 10),
			p.Name,
			strconv.Itoa(p.Age),
			p.Email,
		})
	}
	return writeAll(w, PersonHeader, rows)
}

// WriteCars writes an ownerless car with an empty owner_id field.
func WriteCars(w io.Writer, cars []models.Car) error {
	rows := make([][]string, 0, len(cars))
	for _, c := range cars {
		owner := ""
		if c.OwnerID != nil {
			owner = strconv.FormatInt(*c.OwnerID, 10)
		}
		rows = append(rows, []string{
			strconv.FormatInt(c.CarID, 10),
			c.Brand,
			c.Model,
			strconv.Itoa(c.Year),
			c.Color,
			owner,
		})
	}
	return writeAll(w, CarHeader, rows)
}

// WriteFullReport writes one row per person with the "brand model" labels of
// their cars joined by ", ".
func WriteFullReport(w io.Writer, persons []models.Person) error {
	rows := make([][]string, 0, len(persons))
	for _, p := range persons {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.Age),
			p.Email,
			strconv.Itoa(p.CarsCount()),
			carLabels(p.Cars),
		})
	}
	return writeAll(w, ReportHeader, rows)
}

func carLabels(cars []models.Car) string {
	if len(cars) == 0 {
		return NoCarsLabel
	}
	labels := make([]string, len(cars))
	for i, c := range cars {
		labels[i] = c.Label()
	}
	return strings.Join(labels, ", ")
}
