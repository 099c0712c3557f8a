package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"laundry-backend/internal/metrics"
	"laundry-backend/internal/middleware"
	"laundry-backend/internal/models"
	"laundry-backend/internal/services"
)

// maxUploadBytes bounds the multipart entry form (style images are photos)
const maxUploadBytes = 16 << 20

type EntryHandler struct {
	Service *services.EntryService
}

func NewEntryHandler(s *services.EntryService) *EntryHandler {
	return &EntryHandler{Service: s}
}

func formInt(r *http.Request, field string) (int, error) {
	value := r.FormValue(field)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// Create saves one entry from a multipart form, with an optional style image
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	entry := models.Entry{
		CreatedBy: username,

		CustomerName: r.FormValue("customer_name"),
		StyleNo:      r.FormValue("style_no"),
		ContractNo:   r.FormValue("contract_no"),

		PlannedPCDDate:          r.FormValue("planned_pcd_date"),
		ActualPCDDate:           r.FormValue("actual_pcd_date"),
		WashReceiveDate:         r.FormValue("wash_receive_date"),
		WashClosingDate:         r.FormValue("wash_closing_date"),
		ShadeBandSubmissionDate: r.FormValue("shade_band_submission_date"),
		ShadeBandApprovalDate:   r.FormValue("shade_band_approval_date"),
		AgreedExFactory:         r.FormValue("agreed_ex_factory"),
		ActualExFactory:         r.FormValue("actual_ex_factory"),

		FactoryName:    r.FormValue("factory_name"),
		LaundryName:    r.FormValue("laundry_name"),
		DepartmentName: r.FormValue("department_name"),
		WashCategory:   r.FormValue("wash_category"),

		SubcontractWashing: r.FormValue("subcontract_washing"),

		Issue1:         r.FormValue("issue_1"),
		Issue2:         r.FormValue("issue_2"),
		Issue3:         r.FormValue("issue_3"),
		OtherIssueText: r.FormValue("other_issue_text"),

		Remarks: r.FormValue("remarks"),
	}

	var err error
	for field, dst := range map[string]*int{
		"customer_order_qty": &entry.CustomerOrderQty,
		"factory_order_qty":  &entry.FactoryOrderQty,
		"total_shipment_qty": &entry.TotalShipmentQty,
		"wash_receive_qty":   &entry.WashReceiveQty,
		"wash_delivery_qty":  &entry.WashDeliveryQty,
	} {
		if *dst, err = formInt(r, field); err != nil {
			writeError(w, http.StatusBadRequest, field+" must be an integer")
			return
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, "Invalid image upload")
		return
	}
	if err == nil {
		defer file.Close()
		path, err := h.Service.SaveImage(header.Filename, file)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store image")
			return
		}
		entry.ImagePath = path
	}

	if err := h.Service.CreateEntry(r.Context(), &entry); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.EntriesSavedTotal.Inc()
	writeJSON(w, http.StatusCreated, entry)
}

// List returns entries inside the inclusive ?from=&to= date range
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListEntries(r.Context(), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
