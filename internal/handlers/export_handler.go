package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"laundry-backend/internal/metrics"
	"laundry-backend/internal/reports"
	"laundry-backend/internal/services"
)

type ExportHandler struct {
	Entries *services.EntryService
	Export  *services.ExportService
}

func NewExportHandler(entries *services.EntryService, export *services.ExportService) *ExportHandler {
	return &ExportHandler{Entries: entries, Export: export}
}

// Zip streams the CSV+images archive for ?from=&to=
func (h *ExportHandler) Zip(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dateFrom, dateTo := q.Get("from"), q.Get("to")

	entries, err := h.Entries.ListEntries(r.Context(), dateFrom, dateTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	archive, err := h.Export.BuildArchive(entries)
	if errors.Is(err, services.ErrNoData) {
		writeError(w, http.StatusNotFound, "No data in this range")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build archive")
		return
	}

	metrics.ExportsBuiltTotal.WithLabelValues("zip").Inc()
	filename := fmt.Sprintf("laundry_export_%s_to_%s.zip", orAll(dateFrom), orAll(dateTo))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(archive)
}

// PDF streams the KPI summary report for ?from=&to=&factory=&laundry=
func (h *ExportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dateFrom, dateTo := q.Get("from"), q.Get("to")

	entries, err := h.Entries.ListEntries(r.Context(), dateFrom, dateTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries = reports.Filter(entries, q.Get("factory"), q.Get("laundry"))
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "No data in this range")
		return
	}

	pdf, err := h.Export.BuildSummaryPDF(dateFrom, dateTo,
		reports.SummaryKPIs(entries),
		reports.PerLaundryPerformance(entries),
		reports.TopIssues(entries, topIssuesPerLaundry))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build PDF")
		return
	}

	metrics.ExportsBuiltTotal.WithLabelValues("pdf").Inc()
	filename := fmt.Sprintf("laundry_summary_%s_to_%s.pdf", orAll(dateFrom), orAll(dateTo))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(pdf)
}

func orAll(bound string) string {
	if bound == "" {
		return "all"
	}
	return bound
}
