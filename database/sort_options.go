package database

import (
	"sort"

	"github.com/facette/natsort"

	"github.com/camden-git/carregistrybackend/models"
)

const (
	SortIDAsc   = "id_asc"
	SortNameAsc = "name_asc"
	SortNameNat = "name_nat"
	SortAgeDesc = "age_desc"
)

const DefaultSortOrder = SortIDAsc

// IsValidSortOrder checks if a string is a valid sort order constant
func IsValidSortOrder(order string) bool {
	switch order {
	case SortIDAsc, SortNameAsc, SortNameNat, SortAgeDesc:
		return true
	default:
		return false
	}
}

// SortPersons orders persons in place. Ties always fall back to person id.
func SortPersons(persons []models.Person, order string) {
	byID := func(i, j int) bool { return persons[i].PersonID < persons[j].PersonID }
	var less func(i, j int) bool
	switch order {
	case SortNameAsc:
		less = func(i, j int) bool {
			if persons[i].Name != persons[j].Name {
				return persons[i].Name < persons[j].Name
			}
			return byID(i, j)
		}
	case SortNameNat:
		less = func(i, j int) bool {
			if persons[i].Name != persons[j].Name {
				return natsort.Compare(persons[i].Name, persons[j].Name)
			}
			return byID(i, j)
		}
	case SortAgeDesc:
		less = func(i, j int) bool {
			if persons[i].Age != persons[j].Age {
				return persons[i].Age > persons[j].Age
			}
			return byID(i, j)
		}
	default:
		less = byID
	}
	sort.SliceStable(persons, less)
}
