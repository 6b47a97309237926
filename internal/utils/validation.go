package utils

import (
	"errors"
	"fmt"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func ValidateAssignmentPeriod(a *domain.Assignment) error {
	if a.StartDate.IsZero() || a.EndDate.IsZero() {
		return errors.New("tanggal mulai dan tanggal selesai wajib diisi")
	}
	if a.EndDate.Before(a.StartDate) {
		return errors.New("tanggal selesai tidak boleh lebih awal dari tanggal mulai")
	}
	return nil
}

func ValidateAssignmentTeam(a *domain.Assignment) error {
	// the lead is counted separately and must not also be an assistant
	seen := map[int64]bool{a.LeadTechnicianID: true}
	for i, id := range a.AssistantIDs {
		if id == a.LeadTechnicianID {
			return fmt.Errorf("asisten ke-%d sama dengan teknisi utama", i+1)
		}
		if seen[id] {
			return fmt.Errorf("asisten ke-%d terdaftar lebih dari sekali", i+1)
		}
		seen[id] = true
	}
	return nil
}

func ValidateAssignmentEquipment(a *domain.Assignment) error {
	seen := make(map[int64]bool)
	for i, item := range a.Equipment {
		if item.Quantity < 1 {
			return fmt.Errorf("jumlah peralatan ke-%d harus minimal 1", i+1)
		}
		if seen[item.EquipmentID] {
			return fmt.Errorf("peralatan ke-%d terdaftar lebih dari sekali", i+1)
		}
		seen[item.EquipmentID] = true
	}
	return nil
}

func ValidateAssignmentExpenses(a *domain.Assignment) error {
	e := a.Expenses
	if e.Transport < 0 || e.Accommodation < 0 || e.IncidentalEquipment < 0 {
		return errors.New("biaya tambahan tidak boleh negatif")
	}
	if a.ManualCostOverride && a.TotalCost < 0 {
		return errors.New("total biaya tidak boleh negatif")
	}
	return nil
}

func ValidateAssignment(a *domain.Assignment) error {
	if !a.Status.Valid() {
		return fmt.Errorf("status %q tidak dikenal", a.Status)
	}
	for _, validate := range []func(*domain.Assignment) error{
		ValidateAssignmentPeriod,
		ValidateAssignmentTeam,
		ValidateAssignmentEquipment,
		ValidateAssignmentExpenses,
	} {
		if err := validate(a); err != nil {
			return err
		}
	}
	return nil
}
