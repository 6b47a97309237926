package payment

// Shares is what a policy pays each party for one job, before validation.
type Shares struct {
	LeadBaseFee      float64
	LeadBonusPercent float64
	LeadBonusAmount  float64
	PerAssistant     float64
}

// Policy decides how a base service price is split between the lead technician
// and the assistants.
type Policy interface {
	Shares(price float64, assistants int) Shares
}

type PolicyFunc func(price float64, assistants int) Shares

func (f PolicyFunc) Shares(price float64, assistants int) Shares {
	return f(price, assistants)
}

// DefaultPolicy pays the lead the full base price plus LeadBonusPercent of it,
// and every assistant AssistantSharePercent of the base price. Both
// percentages come from configuration.
type DefaultPolicy struct {
	LeadBonusPercent      float64
	AssistantSharePercent float64
}

func (p DefaultPolicy) Shares(price float64, _ int) Shares {
	return Shares{
		LeadBaseFee:      roundRupiah(price),
		LeadBonusPercent: p.LeadBonusPercent,
		LeadBonusAmount:  roundRupiah(price * p.LeadBonusPercent / 100),
		PerAssistant:     roundRupiah(price * p.AssistantSharePercent / 100),
	}
}
