package payment

import (
	"errors"
	"fmt"
	"math"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

var ErrInvalidInput = errors.New("invalid payment input")

const (
	// MaxAssistants bounds the crew size of a single assignment.
	MaxAssistants = 100
	// MaxAmount is the largest rupiah amount the NUMERIC(14, 2) columns hold.
	MaxAmount = 999_999_999_999
)

type Input struct {
	ServiceTypePrice    float64 `json:"serviceTypePrice"`
	LeadTechnicianCount int     `json:"leadTechnicianCount"`
	AssistantCount      int     `json:"assistantCount"`
}

type CostBreakdown struct {
	TechnicianCost            float64 `json:"technicianCost"`
	LeadTechnicianBaseFee     float64 `json:"leadTechnicianBaseFee"`
	LeadTechnicianBonusAmount float64 `json:"leadTechnicianBonusAmount"`
	AssistantTechnicianCost   float64 `json:"assistantTechnicianCost"`
}

type Result struct {
	LeadTechnicianBonus float64       `json:"leadTechnicianBonus"`
	CostBreakdown       CostBreakdown `json:"costBreakdown"`
	LeadTechnicianTotal float64       `json:"leadTechnicianTotal"`
	AssistantTotals     []float64     `json:"assistantTotals"`
	TotalCost           float64       `json:"totalCost"`
}

func validate(in Input) error {
	switch {
	case math.IsNaN(in.ServiceTypePrice) || math.IsInf(in.ServiceTypePrice, 0):
		return fmt.Errorf("%w: service price must be a finite number", ErrInvalidInput)
	case in.ServiceTypePrice < 0:
		return fmt.Errorf("%w: service price %v is negative", ErrInvalidInput, in.ServiceTypePrice)
	case in.ServiceTypePrice > MaxAmount:
		return fmt.Errorf("%w: service price %v exceeds %d", ErrInvalidInput, in.ServiceTypePrice, MaxAmount)
	case in.AssistantCount < 0:
		return fmt.Errorf("%w: assistant count %d is negative", ErrInvalidInput, in.AssistantCount)
	case in.AssistantCount > MaxAssistants:
		return fmt.Errorf("%w: assistant count %d exceeds %d", ErrInvalidInput, in.AssistantCount, MaxAssistants)
	case in.LeadTechnicianCount != 1:
		return fmt.Errorf("%w: exactly one lead technician is required, got %d", ErrInvalidInput, in.LeadTechnicianCount)
	}
	return nil
}

// Calculate splits the base service price between the lead technician and the
// assistants according to policy. It holds no state and is safe for
// concurrent use as long as policy is.
func Calculate(policy Policy, in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	s := policy.Shares(in.ServiceTypePrice, in.AssistantCount)
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"lead base fee", s.LeadBaseFee},
		{"lead bonus", s.LeadBonusAmount},
		{"assistant share", s.PerAssistant},
	} {
		if c.v < 0 || math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return Result{}, fmt.Errorf("%w: policy produced invalid %s %v", ErrInvalidInput, c.name, c.v)
		}
	}

	leadTotal := s.LeadBaseFee + s.LeadBonusAmount
	assistantTotals := make([]float64, in.AssistantCount)
	assistantCost := 0.0
	for i := range assistantTotals {
		assistantTotals[i] = s.PerAssistant
		assistantCost += s.PerAssistant
	}

	return Result{
		LeadTechnicianBonus: s.LeadBonusPercent,
		CostBreakdown: CostBreakdown{
			TechnicianCost:            leadTotal + assistantCost,
			LeadTechnicianBaseFee:     s.LeadBaseFee,
			LeadTechnicianBonusAmount: s.LeadBonusAmount,
			AssistantTechnicianCost:   assistantCost,
		},
		LeadTechnicianTotal: leadTotal,
		AssistantTotals:     assistantTotals,
		TotalCost:           leadTotal + assistantCost,
	}, nil
}

// Receipt combines a calculation result with the job expenses into the
// breakdown printed on a payment receipt.
func Receipt(res Result, assistants int, exp domain.AssignmentExpenses) (domain.CostBreakdown, error) {
	for _, v := range []float64{exp.Transport, exp.Accommodation, exp.IncidentalEquipment} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.CostBreakdown{}, fmt.Errorf("%w: expense %v is not a non-negative number", ErrInvalidInput, v)
		}
		if v > MaxAmount {
			return domain.CostBreakdown{}, fmt.Errorf("%w: expense %v exceeds %d", ErrInvalidInput, v, MaxAmount)
		}
	}

	cb := domain.CostBreakdown{
		LeadTechnicianBaseFee:     res.CostBreakdown.LeadTechnicianBaseFee,
		LeadTechnicianBonusAmount: res.CostBreakdown.LeadTechnicianBonusAmount,
		LeadTechnicianBonus:       res.LeadTechnicianBonus,
		AssistantCount:            assistants,
		AssistantTechnicianCost:   res.CostBreakdown.AssistantTechnicianCost,
		TechnicianFee:             res.TotalCost,
		TransportCost:             exp.Transport,
		Accommodation:             exp.Accommodation,
		IncidentalEquipmentCost:   exp.IncidentalEquipment,
	}
	cb.Total = cb.TechnicianFee + cb.TransportCost + cb.Accommodation + cb.IncidentalEquipmentCost

	return cb, nil
}

// AssignmentTotal is the amount billed for an assignment whose cost is not
// overridden manually.
func AssignmentTotal(policy Policy, price float64, assistants int, exp domain.AssignmentExpenses) (float64, error) {
	res, err := Calculate(policy, Input{ServiceTypePrice: price, LeadTechnicianCount: 1, AssistantCount: assistants})
	if err != nil {
		return 0, err
	}
	cb, err := Receipt(res, assistants, exp)
	if err != nil {
		return 0, err
	}
	if cb.Total > MaxAmount {
		return 0, fmt.Errorf("%w: total %v exceeds %d", ErrInvalidInput, cb.Total, MaxAmount)
	}
	return cb.Total, nil
}

func roundRupiah(v float64) float64 {
	return math.Round(v)
}
