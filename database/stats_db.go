package database

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/camden-git/carregistrybackend/models"
)

// FindPersonsWithMultipleCars returns persons owning more than one car, with
// their car count, ordered by person id.
func (s *Store) FindPersonsWithMultipleCars() ([]models.PersonCarCount, error) {
	queryBuilder := psql.Select("p.person_id", "p.name", "p.age", "p.email", "COUNT(c.car_id) AS car_count").
		From("persons p").
		Join("cars c ON p.person_id = c.owner_id").
		GroupBy("p.person_id", "p.name", "p.age", "p.email").
		Having("COUNT(c.car_id) > ?", 1).
		OrderBy("p.person_id ASC")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for FindPersonsWithMultipleCars: %w", err)
	}
	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute FindPersonsWithMultipleCars query: %w", err)
	}
	defer rows.Close()

	results := []models.PersonCarCount{}
	for rows.Next() {
		var r models.PersonCarCount
		if err := rows.Scan(&r.PersonID, &r.Name, &r.Age, &r.Email, &r.CarCount); err != nil {
			return nil, fmt.Errorf("failed to scan person car count row: %w", err)
		}
		results = append(results, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person car count rows: %w", err)
	}
	return results, nil
}

// GetAverageCarsPerPerson averages the car count over persons owning at least
// one car. Persons without cars and cars without an owner are not part of the
// average. Returns 0 when no car has an owner.
func (s *Store) GetAverageCarsPerPerson() (float64, error) {
	perOwner := psql.Select("COUNT(car_id) AS car_count").
		From("cars").
		Where(sq.NotEq{"owner_id": nil}).
		GroupBy("owner_id")
	queryBuilder := psql.Select("AVG(car_count)").FromSelect(perOwner, "owner_counts")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for GetAverageCarsPerPerson: %w", err)
	}

	var avg sql.NullFloat64
	if err := s.db.QueryRow(sqlStr, args...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to query average cars per person: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// FindMostPopularBrand returns the brand with the most cars, or nil when there
// are no cars. Ties go to the alphabetically first brand.
func (s *Store) FindMostPopularBrand() (*models.BrandCount, error) {
	queryBuilder := psql.Select("brand", "COUNT(*) AS brand_count").
		From("cars").
		GroupBy("brand").
		OrderBy("brand_count DESC", "brand ASC").
		Limit(1)
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for FindMostPopularBrand: %w", err)
	}

	var bc models.BrandCount
	err = s.db.QueryRow(sqlStr, args...).Scan(&bc.Brand, &bc.Count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query most popular brand: %w", err)
	}
	return &bc, nil
}
