package database

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/carregistrybackend/models"
)

func preloadCarsOrdered(db *gorm.DB) *gorm.DB {
	return db.Order("car_id ASC")
}

// InsertPerson stores a new person. Duplicate ids or emails yield ErrConstraint.
func (s *Store) InsertPerson(person *models.Person) error {
	if err := person.Validate(); err != nil {
		s.log.Warn("person rejected", "person_id", person.PersonID, "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidPerson, err)
	}

	err := s.gdb.Omit(clause.Associations).Create(person).Error
	if err != nil {
		if isConstraintError(err) {
			s.log.Warn("failed to add person", "person_id", person.PersonID, "email", person.Email, "error", err)
			return fmt.Errorf("failed to create person %d: %w: %w", person.PersonID, ErrConstraint, err)
		}
		return fmt.Errorf("failed to create person %d: %w", person.PersonID, err)
	}
	s.log.Info("person added successfully", "person_id", person.PersonID, "name", person.Name)
	return nil
}

// GetAllPersons returns every person ordered by id, each with its cars.
// Cars are loaded with a single preload query rather than one query per person.
func (s *Store) GetAllPersons() ([]models.Person, error) {
	var persons []models.Person
	err := s.gdb.Preload("Cars", preloadCarsOrdered).Order("person_id ASC").Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	for i := range persons {
		if persons[i].Cars == nil {
			persons[i].Cars = []models.Car{}
		}
	}
	return persons, nil
}

// GetPersonByID returns the person with its cars, or nil when no row matches.
func (s *Store) GetPersonByID(id int64) (*models.Person, error) {
	var person models.Person
	err := s.gdb.Preload("Cars", preloadCarsOrdered).Where("person_id = ?", id).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person by ID %d: %w", id, err)
	}
	if person.Cars == nil {
		person.Cars = []models.Car{}
	}
	return &person, nil
}

// GetPersonsByAgeRange returns persons with minAge <= age <= maxAge. Cars are not loaded.
func (s *Store) GetPersonsByAgeRange(minAge, maxAge int) ([]models.Person, error) {
	queryBuilder := psql.Select("person_id", "name", "age", "email").
		From("persons").
		Where(sq.Expr("age BETWEEN ? AND ?", minAge, maxAge)).
		OrderBy("person_id ASC")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetPersonsByAgeRange: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetPersonsByAgeRange query: %w", err)
	}
	defer rows.Close()

	persons := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.PersonID, &p.Name, &p.Age, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		persons = append(persons, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person rows: %w", err)
	}
	return persons, nil
}

// UpdatePerson overwrites name, age and email of an existing person.
// The id itself never changes.
func (s *Store) UpdatePerson(person *models.Person) error {
	if err := person.Validate(); err != nil {
		s.log.Warn("person update rejected", "person_id", person.PersonID, "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidPerson, err)
	}

	queryBuilder := psql.Update("persons").
		Set("name", person.Name).
		Set("age", person.Age).
		Set("email", person.Email).
		Where(sq.Eq{"person_id": person.PersonID})
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for UpdatePerson: %w", err)
	}
	result, err := s.db.Exec(sqlStr, args...)
	if err != nil {
		if isConstraintError(err) {
			s.log.Warn("failed to update person", "person_id", person.PersonID, "email", person.Email, "error", err)
			return fmt.Errorf("failed to update person %d: %w: %w", person.PersonID, ErrConstraint, err)
		}
		return fmt.Errorf("failed to execute UpdatePerson for ID %d: %w", person.PersonID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.log.Warn("could not get rows affected for UpdatePerson", "person_id", person.PersonID, "error", err)
	} else if rowsAffected == 0 {
		return fmt.Errorf("person %d: %w", person.PersonID, ErrNotFound)
	}
	s.log.Info("person updated successfully", "person_id", person.PersonID, "name", person.Name)
	return nil
}

// DeletePerson removes the person's cars and then the person, in one
// transaction. Deleting an unknown id is a no-op.
func (s *Store) DeletePerson(id int64) error {
	carsSQL, carsArgs, err := psql.Delete("cars").Where(sq.Eq{"owner_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for DeletePerson cars: %w", err)
	}
	personSQL, personArgs, err := psql.Delete("persons").Where(sq.Eq{"person_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for DeletePerson: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for DeletePerson %d: %w", id, err)
	}
	defer tx.Rollback() // no-op after commit

	carsResult, err := tx.Exec(carsSQL, carsArgs...)
	if err != nil {
		return fmt.Errorf("failed to delete cars of person %d: %w", id, err)
	}
	if _, err := tx.Exec(personSQL, personArgs...); err != nil {
		return fmt.Errorf("failed to execute DeletePerson for ID %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit DeletePerson for ID %d: %w", id, err)
	}

	removedCars, _ := carsResult.RowsAffected()
	s.log.Info("person deleted successfully", "person_id", id, "cars_removed", removedCars)
	return nil
}

func (s *Store) CountPersons() (int64, error) {
	var n int64
	if err := s.gdb.Model(&models.Person{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return n, nil
}
