package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/clasnet-dev/field-service/backend/internal/payment"
)

// CalculatePayment previews the technician shares for a service. The price
// comes either from a stored service type or straight from the request.
func (h *Handler) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceTypeID       *int64   `json:"serviceTypeId" validate:"omitempty,gt=0"`
		ServiceTypePrice    *float64 `json:"serviceTypePrice" validate:"omitempty,gte=0,lte=999999999999"`
		LeadTechnicianCount *int     `json:"leadTechnicianCount"`
		AssistantCount      int      `json:"assistantCount" validate:"gte=0,lte=100"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := payment.Input{
		LeadTechnicianCount: 1,
		AssistantCount:      req.AssistantCount,
	}
	if req.LeadTechnicianCount != nil {
		in.LeadTechnicianCount = *req.LeadTechnicianCount
	}

	switch {
	case req.ServiceTypeID != nil:
		st, err := h.repository.GetServiceTypeByID(*req.ServiceTypeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				h.notFound(w, r, "layanan tidak ditemukan")
				return
			}
			h.internalServerError(w, r, err)
			return
		}
		in.ServiceTypePrice = st.BasePrice()
	case req.ServiceTypePrice != nil:
		in.ServiceTypePrice = *req.ServiceTypePrice
	default:
		h.errorResponse(w, r, http.StatusBadRequest, "serviceTypeId atau serviceTypePrice wajib diisi")
		return
	}

	res, err := payment.Calculate(h.policy, in)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidInput) {
			h.badRequest(w, r, err)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "perhitungan biaya berhasil", res)
}
