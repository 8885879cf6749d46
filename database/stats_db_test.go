package database

import (
	"math"
	"testing"

	"github.com/camden-git/carregistrybackend/models"
)

func TestFindPersonsWithMultipleCars(t *testing.T) {
	s := openTestStore(t)
	seedScenario(t, s)

	got, err := s.FindPersonsWithMultipleCars()
	if err != nil {
		t.Fatalf("FindPersonsWithMultipleCars() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1: %v", len(got), got)
	}
	want := models.PersonCarCount{PersonID: 1, Name: "David", Age: 35, Email: "david@x.com", CarCount: 2}
	if got[0] != want {
		t.Errorf("row = %+v, want %+v", got[0], want)
	}
}

func TestFindCarsOlderThan(t *testing.T) {
	s := openTestStore(t)
	for i, year := range []int{2020, 2021, 2022, 2023} {
		mustInsertCar(t, s, int64(i+1), "Brand", "Model", year, "Black", nil)
	}

	got, err := s.FindCarsOlderThan(2022)
	if err != nil {
		t.Fatalf("FindCarsOlderThan() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d cars, want 2: %v", len(got), got)
	}
	if got[0].Year != 2020 || got[1].Year != 2021 {
		t.Errorf("years = %d, %d; want 2020, 2021", got[0].Year, got[1].Year)
	}
}

func TestGetAverageCarsPerPerson(t *testing.T) {
	s := openTestStore(t)

	avg, err := s.GetAverageCarsPerPerson()
	if err != nil {
		t.Fatalf("GetAverageCarsPerPerson() on empty db error = %v", err)
	}
	if avg != 0 {
		t.Errorf("average on empty db = %v, want 0", avg)
	}

	mustInsertPerson(t, s, 1, "Two", 30, "two@x.com")
	mustInsertPerson(t, s, 2, "Four", 40, "four@x.com")
	mustInsertPerson(t, s, 3, "None", 50, "none@x.com")
	carID := int64(1)
	for owner, n := range map[int64]int{1: 2, 2: 4} {
		for i := 0; i < n; i++ {
			mustInsertCar(t, s, carID, "Brand", "Model", 2020, "Black", models.OwnerPtr(owner))
			carID++
		}
	}
	// an ownerless car does not form a group of its own
	mustInsertCar(t, s, 100, "Brand", "Model", 2020, "Black", nil)

	avg, err = s.GetAverageCarsPerPerson()
	if err != nil {
		t.Fatalf("GetAverageCarsPerPerson() error = %v", err)
	}
	if math.Abs(avg-3.0) > 1e-9 {
		t.Errorf("GetAverageCarsPerPerson() = %v, want 3.0", avg)
	}
}

func TestFindMostPopularBrand(t *testing.T) {
	s := openTestStore(t)

	none, err := s.FindMostPopularBrand()
	if err != nil || none != nil {
		t.Fatalf("FindMostPopularBrand() on empty db = %v, %v; want nil, nil", none, err)
	}

	mustInsertCar(t, s, 1, "Toyota", "Corolla", 2020, "White", nil)
	mustInsertCar(t, s, 2, "Honda", "Civic", 2019, "Blue", nil)

	tie, err := s.FindMostPopularBrand()
	if err != nil {
		t.Fatalf("FindMostPopularBrand() error = %v", err)
	}
	if tie == nil || tie.Brand != "Honda" || tie.Count != 1 {
		t.Errorf("tie = %+v, want Honda (1)", tie)
	}

	mustInsertCar(t, s, 3, "Toyota", "Yaris", 2021, "Red", nil)
	top, err := s.FindMostPopularBrand()
	if err != nil {
		t.Fatalf("FindMostPopularBrand() error = %v", err)
	}
	if top == nil || top.Brand != "Toyota" || top.Count != 2 {
		t.Errorf("top = %+v, want Toyota (2)", top)
	}
}

func TestSortPersons(t *testing.T) {
	base := []models.Person{
		{PersonID: 3, Name: "Car 10", Age: 20},
		{PersonID: 1, Name: "Car 2", Age: 40},
		{PersonID: 2, Name: "Car 10", Age: 40},
	}
	tests := []struct {
		order string
		want  []int64
	}{
		{SortIDAsc, []int64{1, 2, 3}},
		{SortNameAsc, []int64{2, 3, 1}},
		{SortNameNat, []int64{1, 2, 3}},
		{SortAgeDesc, []int64{1, 2, 3}},
		{"bogus", []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			persons := append([]models.Person(nil), base...)
			SortPersons(persons, tt.order)
			for i, id := range tt.want {
				if persons[i].PersonID != id {
					t.Fatalf("order %s: got ids %v, want %v", tt.order, ids(persons), tt.want)
				}
			}
		})
	}
	if IsValidSortOrder("bogus") || !IsValidSortOrder(SortNameNat) {
		t.Error("IsValidSortOrder mismatch")
	}
}

func ids(persons []models.Person) []int64 {
	out := make([]int64, len(persons))
	for i, p := range persons {
		out[i] = p.PersonID
	}
	return out
}
