package database

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/camden-git/carregistrybackend/models"
)

var carColumns = []string{"car_id", "brand", "model", "year", "color", "owner_id"}

func scanCar(row scanner) (models.Car, error) {
	var c models.Car
	var owner sql.NullInt64
	if err := row.Scan(&c.CarID, &c.Brand, &c.Model, &c.Year, &c.Color, &owner); err != nil {
		return models.Car{}, err
	}
	if owner.Valid {
		c.OwnerID = models.OwnerPtr(owner.Int64)
	}
	return c, nil
}

// InsertCar stores a new car. A duplicate id or an owner that does not exist
// yields ErrConstraint.
func (s *Store) InsertCar(car *models.Car) error {
	if err := car.Validate(); err != nil {
		s.log.Warn("car rejected", "car_id", car.CarID, "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidCar, err)
	}

	if err := s.gdb.Create(car).Error; err != nil {
		if isConstraintError(err) {
			s.log.Warn("failed to add car", "car_id", car.CarID, "owner_id", car.OwnerID, "error", err)
			return fmt.Errorf("failed to create car %d: %w: %w", car.CarID, ErrConstraint, err)
		}
		return fmt.Errorf("failed to create car %d: %w", car.CarID, err)
	}
	s.log.Info("car added successfully", "car_id", car.CarID, "car", car.Label())
	return nil
}

func (s *Store) GetAllCars() ([]models.Car, error) {
	cars := []models.Car{}
	if err := s.gdb.Order("car_id ASC").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return cars, nil
}

// GetCarByID returns nil when no car has the given id.
func (s *Store) GetCarByID(id int64) (*models.Car, error) {
	var car models.Car
	err := s.gdb.Where("car_id = ?", id).First(&car).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get car by ID %d: %w", id, err)
	}
	return &car, nil
}

// GetCarsByOwner returns the cars owned by ownerID; an empty slice when none.
func (s *Store) GetCarsByOwner(ownerID int64) ([]models.Car, error) {
	cars := []models.Car{}
	err := s.gdb.Where("owner_id = ?", ownerID).Order("car_id ASC").Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cars for owner %d: %w", ownerID, err)
	}
	return cars, nil
}

// FindCarsOlderThan returns cars whose model year is strictly before year.
func (s *Store) FindCarsOlderThan(year int) ([]models.Car, error) {
	queryBuilder := psql.Select(carColumns...).
		From("cars").
		Where(sq.Lt{"year": year}).
		OrderBy("car_id ASC")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for FindCarsOlderThan: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute FindCarsOlderThan query for %d: %w", year, err)
	}
	defer rows.Close()

	cars := []models.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car row: %w", err)
		}
		cars = append(cars, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating car rows: %w", err)
	}
	return cars, nil
}

// DeleteCar removes a single car. Deleting an unknown id is a no-op.
func (s *Store) DeleteCar(id int64) error {
	sqlStr, args, err := psql.Delete("cars").Where(sq.Eq{"car_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for DeleteCar: %w", err)
	}
	if _, err := s.db.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("failed to execute DeleteCar for ID %d: %w", id, err)
	}
	s.log.Info("car deleted successfully", "car_id", id)
	return nil
}

func (s *Store) CountCars() (int64, error) {
	var n int64
	if err := s.gdb.Model(&models.Car{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	return n, nil
}
