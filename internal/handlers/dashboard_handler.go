package handlers

import (
	"net/http"

	"laundry-backend/internal/reports"
	"laundry-backend/internal/services"
)

// topIssuesPerLaundry is how many issues the dashboard surfaces per laundry
const topIssuesPerLaundry = 3

type DashboardHandler struct {
	Service *services.EntryService
}

func NewDashboardHandler(s *services.EntryService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// DashboardResponse bundles every rollup the dashboard shows.
type DashboardResponse struct {
	RowCount           int                          `json:"row_count"`
	Summary            reports.Summary              `json:"summary"`
	LaundryPerformance []reports.LaundryPerformance `json:"laundry_performance"`
	TopIssues          []reports.IssueCount         `json:"top_issues"`
}

// Get computes the KPI rollups for ?from=&to=&factory=&laundry=
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entries, err := h.Service.ListEntries(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries = reports.Filter(entries, q.Get("factory"), q.Get("laundry"))

	resp := DashboardResponse{
		RowCount:           len(entries),
		Summary:            reports.SummaryKPIs(entries),
		LaundryPerformance: reports.PerLaundryPerformance(entries),
		TopIssues:          reports.TopIssues(entries, topIssuesPerLaundry),
	}
	if resp.LaundryPerformance == nil {
		resp.LaundryPerformance = []reports.LaundryPerformance{}
	}
	if resp.TopIssues == nil {
		resp.TopIssues = []reports.IssueCount{}
	}
	writeJSON(w, http.StatusOK, resp)
}
