package domain

import (
	"slices"
	"time"
)

type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "PENDING"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentCompleted  AssignmentStatus = "COMPLETED"
	AssignmentCancelled  AssignmentStatus = "CANCELLED"
)

var AssignmentStatuses = []AssignmentStatus{
	AssignmentPending,
	AssignmentInProgress,
	AssignmentCompleted,
	AssignmentCancelled,
}

func (s AssignmentStatus) Valid() bool {
	return slices.Contains(AssignmentStatuses, s)
}

type AssignmentEquipment struct {
	EquipmentID int64 `json:"equipmentId"`
	Quantity    int32 `json:"quantity"`
}

type AssignmentExpenses struct {
	Transport           float64 `json:"transport"`
	Accommodation       float64 `json:"accommodation"`
	IncidentalEquipment float64 `json:"incidentalEquipment"`
}

func (e AssignmentExpenses) Sum() float64 {
	return e.Transport + e.Accommodation + e.IncidentalEquipment
}

type Assignment struct {
	ID                 int64                 `json:"id"`
	ClientID           int64                 `json:"clientId"`
	ServiceTypeID      int64                 `json:"serviceTypeId"`
	LeadTechnicianID   int64                 `json:"leadTechnicianId"`
	AssistantIDs       []int64               `json:"assistantIds"`
	Equipment          []AssignmentEquipment `json:"equipment"`
	StartDate          time.Time             `json:"startDate"`
	EndDate            time.Time             `json:"endDate"`
	Status             AssignmentStatus      `json:"status"`
	Notes              string                `json:"notes"`
	WorkLocation       string                `json:"workLocation"`
	Expenses           AssignmentExpenses    `json:"expenses"`
	TotalCost          float64               `json:"totalCost"`
	ManualCostOverride bool                  `json:"manualCostOverride"`
	CreatedAt          time.Time             `json:"createdAt"`
	Version            int32                 `json:"version"`
}

type AssignmentFilter struct {
	Limit         int
	Offset        int
	Status        AssignmentStatus
	ClientID      int64
	ServiceTypeID int64
}

type AssignmentPage struct {
	Assignments []*Assignment `json:"assignments"`
	Total       int64         `json:"total"`
	Limit       int           `json:"limit"`
	Offset      int           `json:"offset"`
}
