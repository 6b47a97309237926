package handler

import (
	"net/http"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func (h *Handler) GetAllEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.repository.GetAllEquipment(r.URL.Query().Get("search"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "berhasil mengambil data peralatan", equipment)
}

func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name" validate:"required,max=150"`
		Unit          string `json:"unit" validate:"max=30"`
		StockQuantity int32  `json:"stockQuantity" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	e := &domain.Equipment{
		Name:          req.Name,
		Unit:          req.Unit,
		StockQuantity: req.StockQuantity,
	}
	if e.Unit == "" {
		e.Unit = "unit"
	}

	if err := h.repository.CreateEquipment(e); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.createdResponse(w, r, "peralatan berhasil ditambahkan", e)
}

func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	e := r.Context().Value(EquipmentCtx).(*domain.Equipment)

	h.successResponse(w, r, "berhasil mengambil data peralatan", e)
}

func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	e := r.Context().Value(EquipmentCtx).(*domain.Equipment)

	var req struct {
		Name          *string `json:"name" validate:"omitempty,min=1,max=150"`
		Unit          *string `json:"unit" validate:"omitempty,min=1,max=30"`
		StockQuantity *int32  `json:"stockQuantity" validate:"omitempty,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Unit != nil {
		e.Unit = *req.Unit
	}
	if req.StockQuantity != nil {
		e.StockQuantity = *req.StockQuantity
	}

	if err := h.repository.UpdateEquipment(e); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "peralatan berhasil diperbarui", e)
}

func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	e := r.Context().Value(EquipmentCtx).(*domain.Equipment)

	if err := h.repository.DeleteEquipment(e.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "peralatan berhasil dihapus", nil)
}
