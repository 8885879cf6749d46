package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/carregistrybackend/database"
	"github.com/camden-git/carregistrybackend/logger"
	"github.com/camden-git/carregistrybackend/models"
	"github.com/camden-git/carregistrybackend/repository"
)

type PersonHandler struct {
	Persons repository.PersonRepository
	Cars    repository.CarRepository
	Log     *logger.Logger
}

type personRequest struct {
	PersonID *int64 `json:"person_id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
}

func (ph *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.PersonID == nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Missing required field: person_id")
		return
	}

	person := &models.Person{PersonID: *req.PersonID, Name: req.Name, Age: req.Age, Email: req.Email}
	if err := ph.Persons.InsertPerson(person); err != nil {
		writeStoreError(w, ph.Log, "create person", err)
		return
	}
	person.Cars = []models.Car{}
	writeJSON(w, http.StatusCreated, person)
}

// ListPersons supports ?sort=<order> and an inclusive ?min_age=&max_age= range.
// Persons returned by an age range query carry no cars.
func (ph *PersonHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	order := q.Get("sort")
	if order == "" {
		order = database.DefaultSortOrder
	}
	if !database.IsValidSortOrder(order) {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("Invalid sort order %q", order))
		return
	}

	var persons []models.Person
	var err error
	if q.Has("min_age") || q.Has("max_age") {
		minAge, maxAge, ok := parseAgeRange(w, q.Get("min_age"), q.Get("max_age"))
		if !ok {
			return
		}
		persons, err = ph.Persons.GetPersonsByAgeRange(minAge, maxAge)
	} else {
		persons, err = ph.Persons.GetAllPersons()
	}
	if err != nil {
		writeStoreError(w, ph.Log, "retrieve persons", err)
		return
	}

	for i := range persons {
		if persons[i].Cars == nil {
			persons[i].Cars = []models.Car{}
		}
	}
	database.SortPersons(persons, order)
	writeJSON(w, http.StatusOK, persons)
}

func parseAgeRange(w http.ResponseWriter, minRaw, maxRaw string) (int, int, bool) {
	minAge, maxAge := 0, int(^uint(0)>>1)
	if minRaw != "" {
		v, err := strconv.Atoi(minRaw)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid min_age")
			return 0, 0, false
		}
		minAge = v
	}
	if maxRaw != "" {
		v, err := strconv.Atoi(maxRaw)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid max_age")
			return 0, 0, false
		}
		maxAge = v
	}
	return minAge, maxAge, true
}

func (ph *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := parseIDParam(w, chi.URLParam(r, "person_id"), "person")
	if !ok {
		return
	}

	person, err := ph.Persons.GetPersonByID(personID)
	if err != nil {
		writeStoreError(w, ph.Log, "retrieve person", err)
		return
	}
	if person == nil {
		WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Person not found")
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// UpdatePerson replaces name, age and email. A person_id in the body is ignored.
func (ph *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := parseIDParam(w, chi.URLParam(r, "person_id"), "person")
	if !ok {
		return
	}

	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	person := &models.Person{PersonID: personID, Name: req.Name, Age: req.Age, Email: req.Email}
	if err := ph.Persons.UpdatePerson(person); err != nil {
		writeStoreError(w, ph.Log, "update person", err)
		return
	}

	updated, err := ph.Persons.GetPersonByID(personID)
	if err != nil || updated == nil {
		ph.Log.Warn("could not reload updated person", "person_id", personID, "error", err)
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Person updated successfully", "id": personID})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeletePerson also removes the person's cars. Unknown ids succeed.
func (ph *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := parseIDParam(w, chi.URLParam(r, "person_id"), "person")
	if !ok {
		return
	}
	if err := ph.Persons.DeletePerson(personID); err != nil {
		writeStoreError(w, ph.Log, "delete person", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ph *PersonHandler) ListPersonCars(w http.ResponseWriter, r *http.Request) {
	personID, ok := parseIDParam(w, chi.URLParam(r, "person_id"), "person")
	if !ok {
		return
	}
	cars, err := ph.Cars.GetCarsByOwner(personID)
	if err != nil {
		writeStoreError(w, ph.Log, "retrieve cars", err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}
