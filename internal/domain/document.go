package domain

import "time"

// AssignmentDocument is the read-only projection of an assignment used for
// rendering. Client, ServiceType and LeadTechnician are nil when the joined
// row is missing.
type AssignmentDocument struct {
	ID                 int64
	Version            int32
	Client             *Client
	ServiceType        *ServiceType
	LeadTechnician     *Technician
	Assistants         []Technician
	Equipment          []EquipmentLine
	StartDate          time.Time
	EndDate            time.Time
	Status             AssignmentStatus
	Notes              string
	WorkLocation       string
	Expenses           AssignmentExpenses
	TotalCost          float64
	ManualCostOverride bool
}

type EquipmentLine struct {
	Name     string
	Unit     string
	Quantity int32
}

// CostBreakdown is derived for receipts and never stored.
type CostBreakdown struct {
	LeadTechnicianBaseFee     float64 `json:"leadTechnicianBaseFee"`
	LeadTechnicianBonusAmount float64 `json:"leadTechnicianBonusAmount"`
	LeadTechnicianBonus       float64 `json:"leadTechnicianBonus"` // percent
	AssistantCount            int     `json:"assistantCount"`
	AssistantTechnicianCost   float64 `json:"assistantTechnicianCost"`
	TechnicianFee             float64 `json:"technicianFee"`
	TransportCost             float64 `json:"transportCost"`
	Accommodation             float64 `json:"accommodation"`
	IncidentalEquipmentCost   float64 `json:"incidentalEquipmentCost"`
	Total                     float64 `json:"total"`
}
