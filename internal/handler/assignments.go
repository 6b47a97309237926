package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
	"github.com/clasnet-dev/field-service/backend/internal/payment"
	"github.com/clasnet-dev/field-service/backend/internal/utils"
)

const (
	defaultAssignmentLimit = 10
	maxAssignmentLimit     = 100
)

type assignmentRequest struct {
	ClientID         int64   `json:"clientId" validate:"required,gt=0"`
	ServiceTypeID    int64   `json:"serviceTypeId" validate:"required,gt=0"`
	LeadTechnicianID int64   `json:"leadTechnicianId" validate:"required,gt=0"`
	AssistantIDs     []int64 `json:"assistantIds" validate:"max=100,dive,gt=0"`
	Equipment        []struct {
		EquipmentID int64 `json:"equipmentId" validate:"required,gt=0"`
		Quantity    int32 `json:"quantity" validate:"required,gte=1"`
	} `json:"equipment" validate:"dive"`
	StartDate    time.Time `json:"startDate" validate:"required"`
	EndDate      time.Time `json:"endDate" validate:"required"`
	Status       string    `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Notes        string    `json:"notes"`
	WorkLocation string    `json:"workLocation" validate:"max=255"`
	Expenses     struct {
		Transport           float64 `json:"transport" validate:"gte=0,lte=999999999999"`
		Accommodation       float64 `json:"accommodation" validate:"gte=0,lte=999999999999"`
		IncidentalEquipment float64 `json:"incidentalEquipment" validate:"gte=0,lte=999999999999"`
	} `json:"expenses"`
	TotalCost          *float64 `json:"totalCost" validate:"omitempty,gte=0,lte=999999999999"`
	ManualCostOverride bool     `json:"manualCostOverride"`
}

// apply copies the request onto a; id, creation time and version are kept.
func (req *assignmentRequest) apply(a *domain.Assignment) {
	a.ClientID = req.ClientID
	a.ServiceTypeID = req.ServiceTypeID
	a.LeadTechnicianID = req.LeadTechnicianID
	a.AssistantIDs = make([]int64, 0, len(req.AssistantIDs))
	a.AssistantIDs = append(a.AssistantIDs, req.AssistantIDs...)
	a.Equipment = make([]domain.AssignmentEquipment, 0, len(req.Equipment))
	for _, item := range req.Equipment {
		a.Equipment = append(a.Equipment, domain.AssignmentEquipment{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
		})
	}
	a.StartDate = req.StartDate
	a.EndDate = req.EndDate
	a.Status = domain.AssignmentStatus(req.Status)
	if a.Status == "" {
		a.Status = domain.AssignmentPending
	}
	a.Notes = req.Notes
	a.WorkLocation = req.WorkLocation
	a.Expenses = domain.AssignmentExpenses{
		Transport:           req.Expenses.Transport,
		Accommodation:       req.Expenses.Accommodation,
		IncidentalEquipment: req.Expenses.IncidentalEquipment,
	}
	a.ManualCostOverride = req.ManualCostOverride
	if req.TotalCost != nil {
		a.TotalCost = *req.TotalCost
	}
}

var (
	errUnknownServiceType  = errors.New("jenis layanan tidak ditemukan")
	errManualTotalRequired = errors.New("total biaya wajib diisi jika biaya diatur manual")
)

// assignmentCost fills in the total cost unless it was set by hand.
func (h *Handler) assignmentCost(a *domain.Assignment, manualTotal *float64) error {
	if a.ManualCostOverride {
		if manualTotal == nil {
			return errManualTotalRequired
		}
		return nil
	}

	st, err := h.repository.GetServiceTypeByID(a.ServiceTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errUnknownServiceType
		}
		return err
	}

	total, err := payment.AssignmentTotal(h.policy, st.BasePrice(), len(a.AssistantIDs), a.Expenses)
	if err != nil {
		return err
	}
	a.TotalCost = total
	return nil
}

func (h *Handler) readAssignment(w http.ResponseWriter, r *http.Request, a *domain.Assignment) bool {
	var req assignmentRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return false
	}

	req.apply(a)
	if err := utils.ValidateAssignment(a); err != nil {
		h.badRequest(w, r, err)
		return false
	}

	if err := h.assignmentCost(a, req.TotalCost); err != nil {
		switch {
		case errors.Is(err, errUnknownServiceType),
			errors.Is(err, errManualTotalRequired),
			errors.Is(err, payment.ErrInvalidInput):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return false
	}

	return true
}

func parseAssignmentFilter(r *http.Request) (domain.AssignmentFilter, error) {
	q := r.URL.Query()
	f := domain.AssignmentFilter{Limit: defaultAssignmentLimit}

	intParam := func(name string, dst *int) error {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return errors.New("parameter " + name + " tidak valid")
			}
			*dst = n
		}
		return nil
	}
	positiveID := func(name string, dst *int64) error {
		if v := q.Get(name); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n <= 0 {
				return errors.New("parameter " + name + " tidak valid")
			}
			*dst = n
		}
		return nil
	}

	if err := intParam("limit", &f.Limit); err != nil {
		return f, err
	}
	if err := intParam("offset", &f.Offset); err != nil {
		return f, err
	}
	if f.Limit == 0 || f.Limit > maxAssignmentLimit {
		f.Limit = maxAssignmentLimit
	}
	if err := positiveID("clientId", &f.ClientID); err != nil {
		return f, err
	}
	if err := positiveID("serviceTypeId", &f.ServiceTypeID); err != nil {
		return f, err
	}

	if s := q.Get("status"); s != "" {
		f.Status = domain.AssignmentStatus(s)
		if !f.Status.Valid() {
			return f, errors.New("status penugasan tidak dikenal")
		}
	}

	return f, nil
}

func (h *Handler) GetAllAssignments(w http.ResponseWriter, r *http.Request) {
	f, err := parseAssignmentFilter(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	page, err := h.repository.GetAssignments(f)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "berhasil mengambil data penugasan", page)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	a := &domain.Assignment{}
	if !h.readAssignment(w, r, a) {
		return
	}

	if err := h.repository.CreateAssignment(a); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateStats(r.Context())

	h.createdResponse(w, r, "penugasan berhasil dibuat", a)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AssignmentCtx).(*domain.Assignment)

	h.successResponse(w, r, "berhasil mengambil data penugasan", a)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AssignmentCtx).(*domain.Assignment)
	if !h.readAssignment(w, r, a) {
		return
	}

	if err := h.repository.UpdateAssignment(a); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateStats(r.Context())

	h.successResponse(w, r, "penugasan berhasil diperbarui", a)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	a := r.Context().Value(AssignmentCtx).(*domain.Assignment)

	if err := h.repository.DeleteAssignment(a.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidateStats(r.Context())

	h.successResponse(w, r, "penugasan berhasil dihapus", nil)
}
