package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"laundry-backend/internal/models"
	"laundry-backend/internal/store"

	"github.com/gorilla/mux"
)

type MasterHandler struct {
	Store store.Store
}

func NewMasterHandler(st store.Store) *MasterHandler {
	return &MasterHandler{Store: st}
}

func categoryFromRequest(r *http.Request) (store.MasterCategory, bool) {
	category := store.MasterCategory(mux.Vars(r)["category"])
	return category, category.Valid()
}

// List returns all values of one master list, name ascending
func (h *MasterHandler) List(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown master category")
		return
	}

	items, err := h.Store.ListMaster(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list masters")
		return
	}
	if items == nil {
		items = []models.MasterItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Add inserts a master value; duplicates are accepted silently
func (h *MasterHandler) Add(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown master category")
		return
	}

	var req models.AddMasterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.Store.AddMaster(r.Context(), category, req.Name); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add master")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": strings.TrimSpace(req.Name)})
}

// Delete removes a master value; a missing name is accepted silently.
// Historical entries referencing the name keep it.
func (h *MasterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown master category")
		return
	}

	name := mux.Vars(r)["name"]
	if err := h.Store.DeleteMaster(r.Context(), category, name); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete master")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
