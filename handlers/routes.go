package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/camden-git/carregistrybackend/config"
	"github.com/camden-git/carregistrybackend/logger"
	"github.com/camden-git/carregistrybackend/repository"
	"github.com/camden-git/carregistrybackend/stats"
	"github.com/camden-git/carregistrybackend/transfer"
)

const exportsRoute = "/api/exports/"

// NewRouter wires every API route against a single gateway.
func NewRouter(cfg config.Config, gw repository.Gateway, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log.With("component", "http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	personHandler := &PersonHandler{Persons: gw, Cars: gw, Log: log}
	carHandler := &CarHandler{Cars: gw, Log: log}
	statsHandler := &StatsHandler{Stats: stats.NewService(gw), Repo: gw, Log: log}
	transferHandler := &TransferHandler{
		Persons:        gw,
		Cars:           gw,
		Loader:         transfer.NewLoader(log),
		ExportDir:      cfg.ExportDirectory,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Log:            log,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/persons", func(r chi.Router) {
			r.Post("/", personHandler.CreatePerson)
			r.Get("/", personHandler.ListPersons)
			r.Route("/{person_id}", func(r chi.Router) {
				r.Get("/", personHandler.GetPerson)
				r.Put("/", personHandler.UpdatePerson)
				r.Delete("/", personHandler.DeletePerson)
				r.Get("/cars", personHandler.ListPersonCars)
			})
		})

		r.Route("/cars", func(r chi.Router) {
			r.Post("/", carHandler.CreateCar)
			r.Get("/", carHandler.ListCars)
			r.Route("/{car_id}", func(r chi.Router) {
				r.Get("/", carHandler.GetCar)
				r.Delete("/", carHandler.DeleteCar)
			})
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", statsHandler.GetSummary)
			r.Get("/text", statsHandler.GetSummaryText)
			r.Get("/multi-car-owners", statsHandler.ListMultiCarOwners)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/persons.csv", transferHandler.ExportPersonsCSV)
			r.Get("/cars.csv", transferHandler.ExportCarsCSV)
			r.Get("/report.csv", transferHandler.ExportReportCSV)
			r.Post("/archive", transferHandler.CreateArchive)
		})

		r.Route("/import", func(r chi.Router) {
			r.Post("/persons", transferHandler.ImportPersons)
			r.Post("/cars", transferHandler.ImportCars)
		})

		r.Post("/upload-csv", transferHandler.UploadCSV)

		// generated archives are served from the export directory
		r.Get("/exports/*", AssetServer(cfg.ExportDirectory, exportsRoute, log))
	})

	return r
}
