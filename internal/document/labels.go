package document

import (
	"golang.org/x/text/language"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

// Labels is the full set of human readable strings a template needs. One set
// exists per supported locale so the templates themselves stay locale free.
type Labels struct {
	Locale string
	Tag    language.Tag
	Months [12]string

	Phone       string
	Placeholder string

	WorkOrderTitle        string
	CompletionReportTitle string
	PaymentReceiptTitle   string

	AssignmentDetails   string
	ClientInfo          string
	TechnicianInfo      string
	Equipment           string
	EquipmentUsed       string
	Notes               string
	WorkSummary         string
	ReceiptInfo         string
	IssuedBy            string
	Payee               string
	AssignmentContext   string
	CostBreakdown       string
	PaymentConfirmation string

	AssignmentID       string
	Client             string
	Service            string
	Category           string
	StartDate          string
	EndDate            string
	Period             string
	Status             string
	Location           string
	Name               string
	ContactPerson      string
	Address            string
	LeadTechnician     string
	Assistants         string
	Expertise          string
	ServiceDescription string
	FinalCondition     string
	ReceiptNumber      string
	IssueDate          string
	PaymentStatus      string
	PaymentMethod      string
	PaymentDate        string

	ColNo       string
	ColItem     string
	ColQuantity string
	ColUnit     string
	ColAmount   string

	LeadBaseFee    string
	LeadBonus      string // %s is the percentage
	AssistantFee   string // %d is the number of assistants
	Transport      string
	Accommodation  string
	IncidentalCost string
	Total          string

	DefaultServiceDescription string
	FinalConditionStatement   string
	PaidStatus                string
	BankTransfer              string

	SignatureDate       string
	AuthorizedBy        string
	AuthorizedByRole    string
	ClientSignature     string
	ClientRole          string
	TechnicianSignature string
	TechnicianRole      string
	PaidBy              string
	PaidByRole          string
	ReceivedBy          string
	ReceivedByRole      string

	Statuses map[domain.AssignmentStatus]string
}

var indonesian = &Labels{
	Locale: "id",
	Tag:    language.Indonesian,
	Months: [12]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"},

	Phone:       "Telp",
	Placeholder: "-",

	WorkOrderTitle:        "SURAT PERINTAH KERJA (WORK ORDER)",
	CompletionReportTitle: "BERITA ACARA SERAH TERIMA (COMPLETION REPORT)",
	PaymentReceiptTitle:   "KWITANSI PEMBAYARAN (PAYMENT RECEIPT)",

	AssignmentDetails:   "Detail Penugasan",
	ClientInfo:          "Informasi Klien",
	TechnicianInfo:      "Informasi Teknisi",
	Equipment:           "Peralatan",
	EquipmentUsed:       "Peralatan yang Digunakan",
	Notes:               "Catatan",
	WorkSummary:         "Ringkasan Pekerjaan",
	ReceiptInfo:         "Informasi Kwitansi",
	IssuedBy:            "Diterbitkan Oleh",
	Payee:               "Penerima Pembayaran",
	AssignmentContext:   "Informasi Penugasan",
	CostBreakdown:       "Rincian Biaya",
	PaymentConfirmation: "Konfirmasi Pembayaran",

	AssignmentID:       "ID Penugasan",
	Client:             "Klien",
	Service:            "Layanan",
	Category:           "Kategori",
	StartDate:          "Tanggal Mulai",
	EndDate:            "Tanggal Selesai",
	Period:             "Periode",
	Status:             "Status",
	Location:           "Lokasi",
	Name:               "Nama",
	ContactPerson:      "Kontak",
	Address:            "Alamat",
	LeadTechnician:     "Teknisi Utama",
	Assistants:         "Asisten",
	Expertise:          "Keahlian",
	ServiceDescription: "Deskripsi",
	FinalCondition:     "Kondisi Akhir",
	ReceiptNumber:      "No. Kwitansi",
	IssueDate:          "Tanggal Terbit",
	PaymentStatus:      "Status Bayar",
	PaymentMethod:      "Metode Bayar",
	PaymentDate:        "Tanggal Bayar",

	ColNo:       "No",
	ColItem:     "Nama Barang",
	ColQuantity: "Jumlah",
	ColUnit:     "Satuan",
	ColAmount:   "Nominal",

	LeadBaseFee:    "Biaya Dasar Teknisi Utama",
	LeadBonus:      "Bonus Teknisi Utama (%s%%)",
	AssistantFee:   "Biaya Asisten (%d orang)",
	Transport:      "Biaya Transportasi",
	Accommodation:  "Akomodasi",
	IncidentalCost: "Biaya Peralatan Tambahan",
	Total:          "TOTAL",

	DefaultServiceDescription: "Layanan telah diselesaikan sesuai perjanjian",
	FinalConditionStatement:   "Seluruh pekerjaan telah selesai dan diuji dengan baik",
	PaidStatus:                "PAID",
	BankTransfer:              "Transfer Bank",

	SignatureDate:       "Tanggal",
	AuthorizedBy:        "Disetujui Oleh",
	AuthorizedByRole:    "Perwakilan Perusahaan",
	ClientSignature:     "Pihak Klien",
	ClientRole:          "Klien",
	TechnicianSignature: "Pihak Teknisi",
	TechnicianRole:      "Teknisi",
	PaidBy:              "Dibayar Oleh",
	PaidByRole:          "Perwakilan Perusahaan",
	ReceivedBy:          "Diterima Oleh",
	ReceivedByRole:      "Teknisi",

	Statuses: map[domain.AssignmentStatus]string{
		domain.AssignmentPending:    "Menunggu",
		domain.AssignmentInProgress: "Sedang Dikerjakan",
		domain.AssignmentCompleted:  "Selesai",
		domain.AssignmentCancelled:  "Dibatalkan",
	},
}

var english = &Labels{
	Locale: "en",
	Tag:    language.English,
	Months: [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},

	Phone:       "Phone",
	Placeholder: "-",

	WorkOrderTitle:        "WORK ORDER",
	CompletionReportTitle: "COMPLETION REPORT",
	PaymentReceiptTitle:   "PAYMENT RECEIPT",

	AssignmentDetails:   "Assignment Details",
	ClientInfo:          "Client Information",
	TechnicianInfo:      "Technician Information",
	Equipment:           "Equipment",
	EquipmentUsed:       "Equipment Used",
	Notes:               "Notes",
	WorkSummary:         "Work Summary",
	ReceiptInfo:         "Receipt Information",
	IssuedBy:            "Issued By",
	Payee:               "Payee",
	AssignmentContext:   "Assignment",
	CostBreakdown:       "Cost Breakdown",
	PaymentConfirmation: "Payment Confirmation",

	AssignmentID:       "Assignment ID",
	Client:             "Client",
	Service:            "Service",
	Category:           "Category",
	StartDate:          "Start Date",
	EndDate:            "End Date",
	Period:             "Period",
	Status:             "Status",
	Location:           "Location",
	Name:               "Name",
	ContactPerson:      "Contact",
	Address:            "Address",
	LeadTechnician:     "Lead Technician",
	Assistants:         "Assistants",
	Expertise:          "Expertise",
	ServiceDescription: "Description",
	FinalCondition:     "Final Condition",
	ReceiptNumber:      "Receipt No.",
	IssueDate:          "Issue Date",
	PaymentStatus:      "Status",
	PaymentMethod:      "Method",
	PaymentDate:        "Paid On",

	ColNo:       "No",
	ColItem:     "Item",
	ColQuantity: "Quantity",
	ColUnit:     "Unit",
	ColAmount:   "Amount",

	LeadBaseFee:    "Lead Technician Base Fee",
	LeadBonus:      "Lead Technician Bonus (%s%%)",
	AssistantFee:   "Assistant Fee (%d people)",
	Transport:      "Transport Cost",
	Accommodation:  "Accommodation",
	IncidentalCost: "Incidental Equipment Cost",
	Total:          "TOTAL",

	DefaultServiceDescription: "Service completed as per agreement",
	FinalConditionStatement:   "All work has been completed successfully and tested",
	PaidStatus:                "PAID",
	BankTransfer:              "Bank Transfer",

	SignatureDate:       "Date",
	AuthorizedBy:        "Authorized By",
	AuthorizedByRole:    "Company Representative",
	ClientSignature:     "Client",
	ClientRole:          "Client",
	TechnicianSignature: "Technician",
	TechnicianRole:      "Technician",
	PaidBy:              "Paid By",
	PaidByRole:          "Company Representative",
	ReceivedBy:          "Received By",
	ReceivedByRole:      "Technician",

	Statuses: map[domain.AssignmentStatus]string{
		domain.AssignmentPending:    "Pending",
		domain.AssignmentInProgress: "In Progress",
		domain.AssignmentCompleted:  "Completed",
		domain.AssignmentCancelled:  "Cancelled",
	},
}

var labelSets = map[string]*Labels{
	indonesian.Locale: indonesian,
	english.Locale:    english,
}

// LabelsFor returns the label set for locale and false when it is unknown.
func LabelsFor(locale string) (*Labels, bool) {
	l, ok := labelSets[locale]
	return l, ok
}
