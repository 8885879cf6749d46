package repository

import (
	"github.com/camden-git/carregistrybackend/models"
)

// PersonRepository defines the methods for person data operations
type PersonRepository interface {
	InsertPerson(person *models.Person) error
	GetAllPersons() ([]models.Person, error)
	GetPersonByID(id int64) (*models.Person, error)
	GetPersonsByAgeRange(minAge, maxAge int) ([]models.Person, error)
	UpdatePerson(person *models.Person) error
	DeletePerson(id int64) error
	CountPersons() (int64, error)
}

// CarRepository defines the methods for car data operations
type CarRepository interface {
	InsertCar(car *models.Car) error
	GetAllCars() ([]models.Car, error)
	GetCarByID(id int64) (*models.Car, error)
	GetCarsByOwner(ownerID int64) ([]models.Car, error)
	FindCarsOlderThan(year int) ([]models.Car, error)
	DeleteCar(id int64) error
	CountCars() (int64, error)
}

// StatsRepository defines the aggregate queries computed in SQL
type StatsRepository interface {
	FindPersonsWithMultipleCars() ([]models.PersonCarCount, error)
	GetAverageCarsPerPerson() (float64, error)
	FindMostPopularBrand() (*models.BrandCount, error)
}

// StatsSource is what the statistics layer reads from
type StatsSource interface {
	GetAllPersons() ([]models.Person, error)
	GetAllCars() ([]models.Car, error)
	GetAverageCarsPerPerson() (float64, error)
	FindMostPopularBrand() (*models.BrandCount, error)
}

// Gateway is the full persistence surface, owned by a single connection
type Gateway interface {
	PersonRepository
	CarRepository
	StatsRepository
	Close() error
}
