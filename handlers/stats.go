package handlers

import (
	"net/http"

	"github.com/camden-git/carregistrybackend/logger"
	"github.com/camden-git/carregistrybackend/repository"
	"github.com/camden-git/carregistrybackend/stats"
)

type StatsHandler struct {
	Stats *stats.Service
	Repo  repository.StatsRepository
	Log   *logger.Logger
}

func (sh *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := sh.Stats.Summary()
	if err != nil {
		writeStoreError(w, sh.Log, "compute statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (sh *StatsHandler) GetSummaryText(w http.ResponseWriter, r *http.Request) {
	summary, err := sh.Stats.Summary()
	if err != nil {
		writeStoreError(w, sh.Log, "compute statistics", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(stats.FormatSummary(summary)))
}

func (sh *StatsHandler) ListMultiCarOwners(w http.ResponseWriter, r *http.Request) {
	owners, err := sh.Repo.FindPersonsWithMultipleCars()
	if err != nil {
		writeStoreError(w, sh.Log, "retrieve multi-car owners", err)
		return
	}
	writeJSON(w, http.StatusOK, owners)
}
