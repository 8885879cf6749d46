package models

// PersonCarCount is a person row together with the number of cars they own.
type PersonCarCount struct {
	PersonID int64  `json:"person_id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	CarCount int    `json:"car_count"`
}

// BrandCount pairs a car brand with how many cars carry it.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}
