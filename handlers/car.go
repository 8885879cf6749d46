package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/carregistrybackend/logger"
	"github.com/camden-git/carregistrybackend/models"
	"github.com/camden-git/carregistrybackend/repository"
)

type CarHandler struct {
	Cars repository.CarRepository
	Log  *logger.Logger
}

type carRequest struct {
	CarID   *int64 `json:"car_id"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Color   string `json:"color"`
	OwnerID *int64 `json:"owner_id"`
}

func (ch *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.CarID == nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Missing required field: car_id")
		return
	}

	car := &models.Car{
		CarID:   *req.CarID,
		Brand:   req.Brand,
		Model:   req.Model,
		Year:    req.Year,
		Color:   req.Color,
		OwnerID: req.OwnerID,
	}
	if err := ch.Cars.InsertCar(car); err != nil {
		writeStoreError(w, ch.Log, "create car", err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

// ListCars returns every car, or with ?older_than=YEAR only cars built before YEAR.
func (ch *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	var cars []models.Car
	var err error
	if raw := r.URL.Query().Get("older_than"); raw != "" {
		year, convErr := strconv.Atoi(raw)
		if convErr != nil {
			WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid older_than year")
			return
		}
		cars, err = ch.Cars.FindCarsOlderThan(year)
	} else {
		cars, err = ch.Cars.GetAllCars()
	}
	if err != nil {
		writeStoreError(w, ch.Log, "retrieve cars", err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (ch *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID, ok := parseIDParam(w, chi.URLParam(r, "car_id"), "car")
	if !ok {
		return
	}
	car, err := ch.Cars.GetCarByID(carID)
	if err != nil {
		writeStoreError(w, ch.Log, "retrieve car", err)
		return
	}
	if car == nil {
		WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Car not found")
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (ch *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	carID, ok := parseIDParam(w, chi.URLParam(r, "car_id"), "car")
	if !ok {
		return
	}
	if err := ch.Cars.DeleteCar(carID); err != nil {
		writeStoreError(w, ch.Log, "delete car", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
