package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Car represents a car record using GORM. It corresponds to the 'cars' table.
type Car struct {
	CarID   int64  `gorm:"column:car_id;primaryKey;autoIncrement:false" json:"car_id"`
	Brand   string `gorm:"not null" json:"brand"`
	Model   string `gorm:"not null" json:"model"`
	Year    int    `gorm:"not null" json:"year"`
	Color   string `gorm:"not null" json:"color"`
	OwnerID *int64 `gorm:"column:owner_id;index" json:"owner_id"` // Nullable
}

// TableName explicitly sets the table name for GORM.
func (Car) TableName() string {
	return "cars"
}

// Age is the car's age in whole years relative to the current calendar year.
func (c *Car) Age() int {
	return c.AgeAt(time.Now())
}

func (c *Car) AgeAt(now time.Time) int {
	return now.Year() - c.Year
}

// Label is the "brand model" text used in reports.
func (c *Car) Label() string {
	return c.Brand + " " + c.Model
}

func (c *Car) Validate() error {
	if strings.TrimSpace(c.Brand) == "" || strings.TrimSpace(c.Model) == "" || strings.TrimSpace(c.Color) == "" {
		return ErrEmptyCarField
	}
	if c.Year < 0 {
		return ErrNegativeYear
	}
	return nil
}

func (c Car) String() string {
	owner := "None"
	if c.OwnerID != nil {
		owner = strconv.FormatInt(*c.OwnerID, 10)
	}
	return fmt.Sprintf("Car(ID: %d, %s %s %d, Color: %s, Owner: %s)",
		c.CarID, c.Brand, c.Model, c.Year, c.Color, owner)
}

// OwnerPtr is a small helper for building cars with an owner.
func OwnerPtr(id int64) *int64 {
	return &id
}
