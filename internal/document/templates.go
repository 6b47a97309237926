package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

const (
	sectionSpacing   = 10.0
	signatureSpacing = 20.0
)

type renderInput struct {
	doc  *domain.AssignmentDocument
	cost *domain.CostBreakdown
	now  time.Time
}

func (in renderInput) assistantNames(f *formatter) string {
	names := make([]string, 0, len(in.doc.Assistants))
	for _, a := range in.doc.Assistants {
		names = append(names, a.Name)
	}
	return f.Or(strings.Join(names, ", "))
}

func equipmentRows(lines []domain.EquipmentLine) [][]string {
	rows := make([][]string, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, []string{strconv.Itoa(i + 1), l.Name, strconv.Itoa(int(l.Quantity)), l.Unit})
	}
	return rows
}

func addEquipment(b *builder, f *formatter, title string, lines []domain.EquipmentLine) {
	if len(lines) == 0 {
		return
	}
	l := f.labels
	b.Skip(sectionSpacing)
	b.AddSection(title)
	b.AddTable([]string{l.ColNo, l.ColItem, l.ColQuantity, l.ColUnit}, equipmentRows(lines))
}

func addNotes(b *builder, f *formatter, notes string) {
	if strings.TrimSpace(notes) == "" {
		return
	}
	b.Skip(sectionSpacing)
	b.AddSection(f.labels.Notes)
	b.AddText("", notes)
}

func renderWorkOrder(b *builder, f *formatter, in renderInput) {
	l, d := f.labels, in.doc

	b.AddHeader(l.WorkOrderTitle)

	b.AddSection(l.AssignmentDetails)
	b.AddText(l.AssignmentID, strconv.FormatInt(d.ID, 10))
	b.AddText(l.Client, d.Client.Name)
	b.AddText(l.Service, d.ServiceType.Name)
	b.AddText(l.StartDate, f.Date(d.StartDate))
	b.AddText(l.EndDate, f.Date(d.EndDate))
	b.AddText(l.Status, f.Status(d.Status))
	b.AddText(l.Location, f.Or(d.WorkLocation))

	b.Skip(sectionSpacing)
	b.AddSection(l.ClientInfo)
	b.AddText(l.Name, d.Client.Name)
	b.AddText(l.ContactPerson, f.Or(d.Client.ContactPerson))
	b.AddText(l.Phone, f.Or(d.Client.Phone))
	b.AddText(l.Address, f.Or(d.Client.Address))

	b.Skip(sectionSpacing)
	b.AddSection(l.TechnicianInfo)
	b.AddText(l.LeadTechnician, d.LeadTechnician.Name)
	b.AddText(l.Phone, f.Or(d.LeadTechnician.Phone))
	b.AddText(l.Expertise, f.Or(d.LeadTechnician.Expertise))
	b.AddText(l.Assistants, in.assistantNames(f))

	addEquipment(b, f, l.Equipment, d.Equipment)
	addNotes(b, f, d.Notes)

	b.Skip(signatureSpacing)
	b.AddSignatureSection(l.AuthorizedBy, l.AuthorizedByRole)
}

func renderCompletionReport(b *builder, f *formatter, in renderInput) {
	l, d := f.labels, in.doc

	b.AddHeader(l.CompletionReportTitle)

	b.AddSection(l.AssignmentDetails)
	b.AddText(l.AssignmentID, strconv.FormatInt(d.ID, 10))
	b.AddText(l.Client, d.Client.Name)
	b.AddText(l.Service, d.ServiceType.Name)
	b.AddText(l.Period, f.Period(d.StartDate, d.EndDate))

	description := d.ServiceType.Description
	if strings.TrimSpace(description) == "" {
		description = l.DefaultServiceDescription
	}
	b.Skip(sectionSpacing)
	b.AddSection(l.WorkSummary)
	b.AddText(l.ServiceDescription, description)
	b.AddText(l.FinalCondition, l.FinalConditionStatement)

	addEquipment(b, f, l.EquipmentUsed, d.Equipment)
	addNotes(b, f, d.Notes)

	b.Skip(signatureSpacing)
	b.AddSignatureSection(l.ClientSignature, l.ClientRole)
	b.Skip(sectionSpacing)
	b.AddSignatureSection(l.TechnicianSignature, l.TechnicianRole)
}

func costRows(f *formatter, c *domain.CostBreakdown) [][]string {
	l := f.labels
	return [][]string{
		{l.LeadBaseFee, f.Money(c.LeadTechnicianBaseFee)},
		{fmt.Sprintf(l.LeadBonus, f.Percent(c.LeadTechnicianBonus)), f.Money(c.LeadTechnicianBonusAmount)},
		{fmt.Sprintf(l.AssistantFee, c.AssistantCount), f.Money(c.AssistantTechnicianCost)},
		{l.Transport, f.Money(c.TransportCost)},
		{l.Accommodation, f.Money(c.Accommodation)},
		{l.IncidentalCost, f.Money(c.IncidentalEquipmentCost)},
		{l.Total, f.Money(c.Total)},
	}
}

// ReceiptNumber is derived from the issue date and assignment id so a
// re-issued receipt on the same day keeps its number.
func ReceiptNumber(assignmentID int64, issued time.Time) string {
	return fmt.Sprintf("TG-%s-%06d", issued.In(wib).Format("20060102"), assignmentID)
}

func renderPaymentReceipt(b *builder, f *formatter, in renderInput) {
	l, d, c := f.labels, in.doc, in.cost

	b.AddHeader(l.PaymentReceiptTitle)

	b.AddSection(l.ReceiptInfo)
	b.AddText(l.ReceiptNumber, ReceiptNumber(d.ID, in.now))
	b.AddText(l.AssignmentID, strconv.FormatInt(d.ID, 10))
	b.AddText(l.IssueDate, f.Date(in.now))

	b.Skip(sectionSpacing)
	b.AddSection(l.IssuedBy)
	b.AddText(l.Name, b.company.Name)
	b.AddText(l.Address, b.company.Address)
	b.AddText(l.Phone, b.company.Phone)

	b.Skip(sectionSpacing)
	b.AddSection(l.Payee)
	b.AddText(l.Name, d.LeadTechnician.Name)
	b.AddText(l.Phone, f.Or(d.LeadTechnician.Phone))
	b.AddText(l.Address, f.Or(d.LeadTechnician.Address))

	b.Skip(sectionSpacing)
	b.AddSection(l.AssignmentContext)
	b.AddText(l.Client, d.Client.Name)
	b.AddText(l.Service, d.ServiceType.Name)
	b.AddText(l.Period, f.Period(d.StartDate, d.EndDate))

	b.Skip(sectionSpacing)
	b.AddSection(l.CostBreakdown)
	b.AddTable([]string{l.ColItem, l.ColAmount}, costRows(f, c))

	b.Skip(sectionSpacing)
	b.AddSection(l.PaymentConfirmation)
	b.AddText(l.PaymentStatus, l.PaidStatus)
	b.AddText(l.PaymentMethod, l.BankTransfer)
	b.AddText(l.PaymentDate, f.Date(in.now))

	addNotes(b, f, d.Notes)

	b.Skip(signatureSpacing)
	b.AddSignatureSection(l.PaidBy, l.PaidByRole)
	b.Skip(sectionSpacing)
	b.AddSignatureSection(l.ReceivedBy, l.ReceivedByRole)
}
