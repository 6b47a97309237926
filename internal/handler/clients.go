package handler

import (
	"net/http"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func (h *Handler) GetAllClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repository.GetAllClients(r.URL.Query().Get("search"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "berhasil mengambil data klien", clients)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name" validate:"required,max=150"`
		ContactPerson string `json:"contactPerson" validate:"max=100"`
		Phone         string `json:"phone" validate:"max=30"`
		Email         string `json:"email" validate:"omitempty,email"`
		Address       string `json:"address"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	c := &domain.Client{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
	}

	if err := h.repository.CreateClient(c); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateStats(r.Context())

	h.createdResponse(w, r, "klien berhasil ditambahkan", c)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(ClientCtx).(*domain.Client)

	h.successResponse(w, r, "berhasil mengambil data klien", c)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(ClientCtx).(*domain.Client)

	var req struct {
		Name          *string `json:"name" validate:"omitempty,min=1,max=150"`
		ContactPerson *string `json:"contactPerson" validate:"omitempty,max=100"`
		Phone         *string `json:"phone" validate:"omitempty,max=30"`
		Email         *string `json:"email" validate:"omitempty,email"`
		Address       *string `json:"address"`
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
		c.Name = *req.Name
	}
	if req.ContactPerson != nil {
		c.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}

	if err := h.repository.UpdateClient(c); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "klien berhasil diperbarui", c)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(ClientCtx).(*domain.Client)

	if err := h.repository.DeleteClient(c.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateStats(r.Context())

	h.successResponse(w, r, "klien berhasil dihapus", nil)
}
