package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func validAssignment() *domain.Assignment {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Assignment{
		ClientID:         1,
		ServiceTypeID:    1,
		LeadTechnicianID: 1,
		AssistantIDs:     []int64{2, 3},
		Equipment:        []domain.AssignmentEquipment{{EquipmentID: 1, Quantity: 2}, {EquipmentID: 3, Quantity: 50}},
		StartDate:        start,
		EndDate:          start.Add(72 * time.Hour),
		Status:           domain.AssignmentPending,
	}
}

func TestValidateAssignment(t *testing.T) {
	assert.NoError(t, ValidateAssignment(validAssignment()))

	cases := map[string]func(a *domain.Assignment){
		"end before start":     func(a *domain.Assignment) { a.EndDate = a.StartDate.Add(-time.Hour) },
		"missing start":        func(a *domain.Assignment) { a.StartDate = time.Time{} },
		"lead as assistant":    func(a *domain.Assignment) { a.AssistantIDs = []int64{2, 1} },
		"duplicate assistant":  func(a *domain.Assignment) { a.AssistantIDs = []int64{2, 2} },
		"zero quantity":        func(a *domain.Assignment) { a.Equipment[0].Quantity = 0 },
		"duplicate equipment":  func(a *domain.Assignment) { a.Equipment[1].EquipmentID = 1 },
		"negative expense":     func(a *domain.Assignment) { a.Expenses.Transport = -1 },
		"unknown status":       func(a *domain.Assignment) { a.Status = "DONE" },
		"negative manual cost": func(a *domain.Assignment) { a.ManualCostOverride = true; a.TotalCost = -10 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a := validAssignment()
			mutate(a)
			assert.Error(t, ValidateAssignment(a))
		})
	}
}

func TestValidateAssignmentAllowsSameDay(t *testing.T) {
	a := validAssignment()
	a.EndDate = a.StartDate
	assert.NoError(t, ValidateAssignmentPeriod(a))
}

func TestGenerateRandomTechnician(t *testing.T) {
	for i := 0; i < 20; i++ {
		tech := GenerateRandomTechnician()
		assert.NotEmpty(t, tech.Name)
		assert.Contains(t, []domain.TechnicianType{domain.TechnicianFreelance, domain.TechnicianPermanent}, tech.Type)
		assert.Regexp(t, `^\+62 8\d{2}-\d{4}-\d{4}$`, tech.Phone)
	}
}

func TestGenerateRandomSubset(t *testing.T) {
	items := []string{"a", "b", "c"}
	assert.Len(t, GenerateRandomSubset(items, 2), 2)
	assert.Len(t, GenerateRandomSubset(items, 10), 3)
	assert.Equal(t, []string{"a", "b", "c"}, items)
}
