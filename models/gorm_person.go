package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyName     = errors.New("name must not be empty")
	ErrEmptyEmail    = errors.New("email must not be empty")
	ErrNegativeAge   = errors.New("age must not be negative")
	ErrNegativeYear  = errors.New("year must not be negative")
	ErrEmptyCarField = errors.New("brand, model and color must not be empty")
)

// Person represents a person in the database using GORM.
// It corresponds to the 'persons' table. PersonID is assigned by the caller.
type Person struct {
	PersonID int64  `gorm:"column:person_id;primaryKey;autoIncrement:false" json:"person_id"`
	Name     string `gorm:"not null" json:"name"`
	Age      int    `gorm:"not null" json:"age"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`

	// Relationships
	// populated on reads only, never written through Person
	Cars []Car `gorm:"foreignKey:OwnerID;references:PersonID;constraint:OnDelete:CASCADE" json:"cars"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "persons"
}

// CarsCount returns the number of cars loaded for this person.
func (p *Person) CarsCount() int {
	return len(p.Cars)
}

// AddCar attaches car to the person in memory and points its owner at p.
func (p *Person) AddCar(car *Car) {
	id := p.PersonID
	car.OwnerID = &id
	p.Cars = append(p.Cars, *car)
}

func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	if p.Age < 0 {
		return ErrNegativeAge
	}
	return nil
}

func (p Person) String() string {
	return fmt.Sprintf("Person(ID: %d, Name: %s, Age: %d, Email: %s, Cars: %d)",
		p.PersonID, p.Name, p.Age, p.Email, len(p.Cars))
}
