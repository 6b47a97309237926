package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

var testPolicy = DefaultPolicy{LeadBonusPercent: 10, AssistantSharePercent: 50}

func TestCalculateTotalsAddUp(t *testing.T) {
	for _, price := range []float64{0, 1, 150000, 1000000, 2500000.4} {
		for assistants := 0; assistants <= 4; assistants++ {
			res, err := Calculate(testPolicy, Input{ServiceTypePrice: price, LeadTechnicianCount: 1, AssistantCount: assistants})
			require.NoError(t, err)

			sum := res.LeadTechnicianTotal
			for _, a := range res.AssistantTotals {
				assert.GreaterOrEqual(t, a, 0.0)
				sum += a
			}
			assert.InDelta(t, sum, res.TotalCost, 1e-9)
			assert.InDelta(t, res.CostBreakdown.TechnicianCost, res.TotalCost, 1e-9)
			assert.Len(t, res.AssistantTotals, assistants)
			assert.GreaterOrEqual(t, res.CostBreakdown.LeadTechnicianBaseFee, 0.0)
			assert.GreaterOrEqual(t, res.CostBreakdown.LeadTechnicianBonusAmount, 0.0)
		}
	}
}

func TestCalculateNoAssistants(t *testing.T) {
	res, err := Calculate(testPolicy, Input{ServiceTypePrice: 1000000, LeadTechnicianCount: 1})
	require.NoError(t, err)

	assert.Zero(t, res.CostBreakdown.AssistantTechnicianCost)
	assert.Empty(t, res.AssistantTotals)
	assert.Equal(t, res.LeadTechnicianTotal, res.TotalCost)
	assert.Equal(t, 1100000.0, res.TotalCost)
	assert.Equal(t, 10.0, res.LeadTechnicianBonus)
}

func TestCalculateIsDeterministic(t *testing.T) {
	in := Input{ServiceTypePrice: 1234567, LeadTechnicianCount: 1, AssistantCount: 3}
	first, err := Calculate(testPolicy, in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Calculate(testPolicy, in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	cases := map[string]Input{
		"negative price":      {ServiceTypePrice: -1, LeadTechnicianCount: 1},
		"negative assistants": {ServiceTypePrice: 100, LeadTechnicianCount: 1, AssistantCount: -1},
		"no lead":             {ServiceTypePrice: 100},
		"two leads":           {ServiceTypePrice: 100, LeadTechnicianCount: 2},
		"price over limit":    {ServiceTypePrice: MaxAmount + 1, LeadTechnicianCount: 1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Calculate(testPolicy, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCalculateBoundsAssistantCount(t *testing.T) {
	res, err := Calculate(testPolicy, Input{ServiceTypePrice: 1000, LeadTechnicianCount: 1, AssistantCount: MaxAssistants})
	require.NoError(t, err)
	assert.Len(t, res.AssistantTotals, MaxAssistants)

	for _, n := range []int{MaxAssistants + 1, 1 << 40, 1 << 60} {
		assert.NotPanics(t, func() {
			_, err = Calculate(testPolicy, Input{ServiceTypePrice: 1, LeadTechnicianCount: 1, AssistantCount: n})
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "assistants %d", n)
	}
}

func TestCalculateReportsFirstInvalidShare(t *testing.T) {
	broken := PolicyFunc(func(float64, int) Shares {
		return Shares{LeadBaseFee: -1, LeadBonusAmount: -2, PerAssistant: -3}
	})
	for i := 0; i < 20; i++ {
		_, err := Calculate(broken, Input{ServiceTypePrice: 100, LeadTechnicianCount: 1, AssistantCount: 1})
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "invalid lead base fee -1")
	}
}

func TestCalculateRejectsNegativePolicyOutput(t *testing.T) {
	broken := PolicyFunc(func(price float64, _ int) Shares {
		return Shares{LeadBaseFee: price, PerAssistant: -5}
	})
	_, err := Calculate(broken, Input{ServiceTypePrice: 100, LeadTechnicianCount: 1, AssistantCount: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReceiptIncludesExpenses(t *testing.T) {
	res, err := Calculate(testPolicy, Input{ServiceTypePrice: 1000000, LeadTechnicianCount: 1, AssistantCount: 1})
	require.NoError(t, err)

	cb, err := Receipt(res, 1, domain.AssignmentExpenses{Transport: 150000, Accommodation: 100000, IncidentalEquipment: 50000})
	require.NoError(t, err)

	assert.Equal(t, 1600000.0, cb.TechnicianFee)
	assert.Equal(t, 1900000.0, cb.Total)
	assert.InDelta(t, cb.Total, cb.TechnicianFee+cb.TransportCost+cb.Accommodation+cb.IncidentalEquipmentCost, 1e-9)
	assert.InDelta(t, cb.TechnicianFee, cb.LeadTechnicianBaseFee+cb.LeadTechnicianBonusAmount+cb.AssistantTechnicianCost, 1e-9)

	_, err = Receipt(res, 1, domain.AssignmentExpenses{Transport: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Receipt(res, 1, domain.AssignmentExpenses{Accommodation: MaxAmount + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssignmentTotal(t *testing.T) {
	total, err := AssignmentTotal(testPolicy, 200000, 2, domain.AssignmentExpenses{Transport: 10000})
	require.NoError(t, err)
	// 200000 + 20000 bonus + 2 * 100000 + 10000 transport
	assert.Equal(t, 430000.0, total)

	_, err = AssignmentTotal(testPolicy, MaxAmount, MaxAssistants, domain.AssignmentExpenses{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
