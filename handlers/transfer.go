package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/camden-git/carregistrybackend/logger"
	"github.com/camden-git/carregistrybackend/repository"
	"github.com/camden-git/carregistrybackend/transfer"
	"github.com/camden-git/carregistrybackend/utils"
)

const uploadFormField = "file"

type TransferHandler struct {
	Persons        repository.PersonRepository
	Cars           repository.CarRepository
	Loader         *transfer.Loader
	ExportDir      string
	MaxUploadBytes int64
	Log            *logger.Logger
}

func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func (th *TransferHandler) ExportPersonsCSV(w http.ResponseWriter, r *http.Request) {
	persons, err := th.Persons.GetAllPersons()
	if err != nil {
		writeStoreError(w, th.Log, "export persons", err)
		return
	}
	writeCSVHeaders(w, transfer.PersonsFile)
	if err := transfer.WritePersons(w, persons); err != nil {
		th.Log.Error("failed to stream persons csv", "error", err)
	}
}

func (th *TransferHandler) ExportCarsCSV(w http.ResponseWriter, r *http.Request) {
	cars, err := th.Cars.GetAllCars()
	if err != nil {
		writeStoreError(w, th.Log, "export cars", err)
		return
	}
	writeCSVHeaders(w, transfer.CarsFile)
	if err := transfer.WriteCars(w, cars); err != nil {
		th.Log.Error("failed to stream cars csv", "error", err)
	}
}

func (th *TransferHandler) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	persons, err := th.Persons.GetAllPersons()
	if err != nil {
		writeStoreError(w, th.Log, "export report", err)
		return
	}
	writeCSVHeaders(w, transfer.FullReportFile)
	if err := transfer.WriteFullReport(w, persons); err != nil {
		th.Log.Error("failed to stream full report csv", "error", err)
	}
}

// CreateArchive writes all three exports into the export directory, zips
// them and returns where the archive can be downloaded.
func (th *TransferHandler) CreateArchive(w http.ResponseWriter, r *http.Request) {
	files, err := transfer.ExportAll(th.Persons, th.Cars, th.ExportDir)
	if err != nil {
		writeStoreError(w, th.Log, "export data", err)
		return
	}
	name, size, err := utils.CreateExportArchive(files, th.ExportDir, th.Log)
	if err != nil {
		writeStoreError(w, th.Log, "create export archive", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"filename": name,
		"size":     size,
		"url":      "/api/exports/" + name,
	})
}

// openUpload returns the multipart file, or writes an error response and nil.
func (th *TransferHandler) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader) {
	r.Body = http.MaxBytesReader(w, r.Body, th.MaxUploadBytes)
	if err := r.ParseMultipartForm(th.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteAPIError(w, http.StatusRequestEntityTooLarge, "too_large", "Uploaded file is too large")
			return nil, nil
		}
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid multipart form: "+err.Error())
		return nil, nil
	}
	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Missing form file field: "+uploadFormField)
		return nil, nil
	}
	return file, header
}

// ImportPersons parses the whole upload first; a malformed file inserts nothing.
func (th *TransferHandler) ImportPersons(w http.ResponseWriter, r *http.Request) {
	th.importUpload(w, r, "persons", func(f io.Reader) (transfer.ImportResult, error) {
		persons, err := transfer.ReadPersons(f)
		if err != nil {
			return transfer.ImportResult{}, err
		}
		return th.Loader.LoadPersons(th.Persons, persons)
	})
}

func (th *TransferHandler) ImportCars(w http.ResponseWriter, r *http.Request) {
	th.importUpload(w, r, "cars", func(f io.Reader) (transfer.ImportResult, error) {
		cars, err := transfer.ReadCars(f)
		if err != nil {
			return transfer.ImportResult{}, err
		}
		return th.Loader.LoadCars(th.Cars, cars)
	})
}

func (th *TransferHandler) importUpload(w http.ResponseWriter, r *http.Request, kind string,
	load func(io.Reader) (transfer.ImportResult, error)) {
	file, header := th.openUpload(w, r)
	if file == nil {
		return
	}
	defer file.Close()

	result, err := load(file)
	if err != nil {
		th.Log.Warn("import failed", "kind", kind, "filename", header.Filename, "error", err)
		writeStoreError(w, th.Log, "import "+kind, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type uploadResponse struct {
	Filename string `json:"filename"`
	UploadID string `json:"upload_id"`
	*transfer.Preview
	Message string `json:"message"`
}

// UploadCSV accepts any CSV and reports its shape without touching storage.
func (th *TransferHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	file, header := th.openUpload(w, r)
	if file == nil {
		return
	}
	defer file.Close()

	preview, err := transfer.ReadPreview(file)
	if err != nil {
		writeStoreError(w, th.Log, "process csv", err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		Filename: header.Filename,
		UploadID: uuid.NewString(),
		Preview:  preview,
		Message:  "CSV processed successfully!",
	})
}
