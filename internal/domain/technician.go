package domain

import "time"

type TechnicianType string

const (
	TechnicianFreelance TechnicianType = "FREELANCE"
	TechnicianPermanent TechnicianType = "PERMANENT"
)

type Technician struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	Type      TechnicianType `json:"type"`
	Expertise string         `json:"expertise"`
	CreatedAt time.Time      `json:"createdAt"`
	Version   int32          `json:"-"`
}
