package transfer

import (
	"errors"
	"fmt"

	"github.com/camden-git/carregistrybackend/database"
	"github.com/camden-git/carregistrybackend/logger"
	"github.com/camden-git/carregistrybackend/models"
	"github.com/camden-git/carregistrybackend/repository"
)

// ImportFailure records one rejected record.
type ImportFailure struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Inserted int             `json:"inserted"`
	Skipped  int             `json:"skipped"`
	Failures []ImportFailure `json:"failures"`
}

func (r *ImportResult) skip(id int64, err error) {
	r.Skipped++
	r.Failures = append(r.Failures, ImportFailure{ID: id, Reason: err.Error()})
}

// Loader inserts parsed records one at a time. A record violating a
// constraint or failing validation is skipped; any other error stops the load.
type Loader struct {
	log *logger.Logger
}

func NewLoader(log *logger.Logger) *Loader {
	return &Loader{log: log.With("component", "loader")}
}

func skippable(err error) bool {
	return errors.Is(err, database.ErrConstraint) ||
		errors.Is(err, database.ErrInvalidPerson) ||
		errors.Is(err, database.ErrInvalidCar)
}

func (l *Loader) LoadPersons(repo repository.PersonRepository, persons []models.Person) (ImportResult, error) {
	result := ImportResult{Failures: []ImportFailure{}}
	for i := range persons {
		p := &persons[i]
		if err := repo.InsertPerson(p); err != nil {
			if !skippable(err) {
				return result, fmt.Errorf("failed to load person %d: %w", p.PersonID, err)
			}
			l.log.Warn("person skipped", "person_id", p.PersonID, "error", err)
			result.skip(p.PersonID, err)
			continue
		}
		result.Inserted++
	}
	l.log.Info("persons loaded", "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

// LoadCars should run after LoadPersons so owners exist.
func (l *Loader) LoadCars(repo repository.CarRepository, cars []models.Car) (ImportResult, error) {
	result := ImportResult{Failures: []ImportFailure{}}
	for i := range cars {
		c := &cars[i]
		if err := repo.InsertCar(c); err != nil {
			if !skippable(err) {
				return result, fmt.Errorf("failed to load car %d: %w", c.CarID, err)
			}
			l.log.Warn("car skipped", "car_id", c.CarID, "error", err)
			result.skip(c.CarID, err)
			continue
		}
		result.Inserted++
	}
	l.log.Info("cars loaded", "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}
