// Package stats derives registry-wide figures from the stored persons and cars.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/facette/natsort"

	"github.com/camden-git/carregistrybackend/models"
	"github.com/camden-git/carregistrybackend/repository"
)

// AgeDistribution describes the ages of all persons.
type AgeDistribution struct {
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Average float64 `json:"average"`
	Total   int     `json:"total"`
}

// Count is one key of a distribution.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalPersons         int                `json:"total_persons"`
	TotalCars            int                `json:"total_cars"`
	Ages                 *AgeDistribution   `json:"ages"`
	Brands               []Count            `json:"brands"`
	Colors               []Count            `json:"colors"`
	AverageCarsPerPerson float64            `json:"average_cars_per_person"`
	MostPopularBrand     *models.BrandCount `json:"most_popular_brand"`
}

// Service computes every figure fresh from its source; nothing is cached.
type Service struct {
	src repository.StatsSource
}

func NewService(src repository.StatsSource) *Service {
	return &Service{src: src}
}

// AgeDistribution returns nil when there are no persons.
func (s *Service) AgeDistribution() (*AgeDistribution, error) {
	persons, err := s.src.GetAllPersons()
	if err != nil {
		return nil, fmt.Errorf("failed to load persons for age distribution: %w", err)
	}
	return ageDistribution(persons), nil
}

func ageDistribution(persons []models.Person) *AgeDistribution {
	if len(persons) == 0 {
		return nil
	}
	d := &AgeDistribution{Min: persons[0].Age, Max: persons[0].Age, Total: len(persons)}
	sum := 0
	for _, p := range persons {
		if p.Age < d.Min {
			d.Min = p.Age
		}
		if p.Age > d.Max {
			d.Max = p.Age
		}
		sum += p.Age
	}
	d.Average = float64(sum) / float64(len(persons))
	return d
}

func (s *Service) BrandDistribution() (map[string]int, error) {
	cars, err := s.src.GetAllCars()
	if err != nil {
		return nil, fmt.Errorf("failed to load cars for brand distribution: %w", err)
	}
	return countBy(cars, func(c models.Car) string { return c.Brand }), nil
}

func (s *Service) ColorDistribution() (map[string]int, error) {
	cars, err := s.src.GetAllCars()
	if err != nil {
		return nil, fmt.Errorf("failed to load cars for color distribution: %w", err)
	}
	return countBy(cars, func(c models.Car) string { return c.Color }), nil
}

func countBy(cars []models.Car, key func(models.Car) string) map[string]int {
	out := make(map[string]int)
	for _, c := range cars {
		out[key(c)]++
	}
	return out
}

// Sorted orders a distribution by count descending. Equal counts are ordered
// naturally by key, so "Model 3" comes before "Model 10".
func Sorted(dist map[string]int) []Count {
	out := make([]Count, 0, len(dist))
	for k, v := range dist {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return natsort.Compare(out[i].Key, out[j].Key)
	})
	return out
}

func (s *Service) Summary() (*Summary, error) {
	persons, err := s.src.GetAllPersons()
	if err != nil {
		return nil, fmt.Errorf("failed to load persons for summary: %w", err)
	}
	cars, err := s.src.GetAllCars()
	if err != nil {
		return nil, fmt.Errorf("failed to load cars for summary: %w", err)
	}
	avg, err := s.src.GetAverageCarsPerPerson()
	if err != nil {
		return nil, fmt.Errorf("failed to compute average cars per person: %w", err)
	}
	popular, err := s.src.FindMostPopularBrand()
	if err != nil {
		return nil, fmt.Errorf("failed to find most popular brand: %w", err)
	}

	return &Summary{
		TotalPersons:         len(persons),
		TotalCars:            len(cars),
		Ages:                 ageDistribution(persons),
		Brands:               Sorted(countBy(cars, func(c models.Car) string { return c.Brand })),
		Colors:               Sorted(countBy(cars, func(c models.Car) string { return c.Color })),
		AverageCarsPerPerson: avg,
		MostPopularBrand:     popular,
	}, nil
}

// FormatSummary renders a summary as the plain-text statistics report.
func FormatSummary(s *Summary) string {
	var b strings.Builder
	b.WriteString("=== Statistics ===\n")
	fmt.Fprintf(&b, "Total persons: %d\n", s.TotalPersons)
	if s.Ages != nil {
		fmt.Fprintf(&b, "Age range: %d-%d\n", s.Ages.Min, s.Ages.Max)
		fmt.Fprintf(&b, "Average age: %.1f\n", s.Ages.Average)
	}

	fmt.Fprintf(&b, "\nTotal cars: %d\n", s.TotalCars)
	b.WriteString("Brand distribution:\n")
	for _, c := range s.Brands {
		fmt.Fprintf(&b, "  %s: %d\n", c.Key, c.Count)
	}
	b.WriteString("Color distribution:\n")
	for _, c := range s.Colors {
		fmt.Fprintf(&b, "  %s: %d\n", c.Key, c.Count)
	}

	fmt.Fprintf(&b, "\nAverage cars per person: %.2f\n", s.AverageCarsPerPerson)
	if s.MostPopularBrand != nil {
		fmt.Fprintf(&b, "Most popular brand: %s (%d cars)\n", s.MostPopularBrand.Brand, s.MostPopularBrand.Count)
	}
	return b.String()
}
