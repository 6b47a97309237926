package handler

import (
	"net/http"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func (h *Handler) GetAllServiceTypes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	serviceTypes, err := h.repository.GetAllServiceTypes(q.Get("category"), q.Get("search"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "berhasil mengambil data layanan", serviceTypes)
}

func (h *Handler) CreateServiceType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string   `json:"name" validate:"required,max=150"`
		Category    string   `json:"category" validate:"max=100"`
		Description string   `json:"description"`
		Price       *float64 `json:"price" validate:"omitempty,gte=0,lte=999999999999"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := &domain.ServiceType{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := h.repository.CreateServiceType(st); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.createdResponse(w, r, "layanan berhasil ditambahkan", st)
}

func (h *Handler) GetServiceType(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ServiceTypeCtx).(*domain.ServiceType)

	h.successResponse(w, r, "berhasil mengambil data layanan", st)
}

func (h *Handler) UpdateServiceType(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ServiceTypeCtx).(*domain.ServiceType)

	var req struct {
		Name        *string  `json:"name" validate:"omitempty,min=1,max=150"`
		Category    *string  `json:"category" validate:"omitempty,max=100"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price" validate:"omitempty,gte=0,lte=999999999999"`
		ClearPrice  bool     `json:"clearPrice"` // a null price reads the same as an absent one
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
		st.Name = *req.Name
	}
	if req.Category != nil {
		st.Category = *req.Category
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.Price != nil {
		st.Price = req.Price
	}
	if req.ClearPrice {
		st.Price = nil
	}

	if err := h.repository.UpdateServiceType(st); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "layanan berhasil diperbarui", st)
}

func (h *Handler) DeleteServiceType(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ServiceTypeCtx).(*domain.ServiceType)

	if err := h.repository.DeleteServiceType(st.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "layanan berhasil dihapus", nil)
}
