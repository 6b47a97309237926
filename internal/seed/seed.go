package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
	"github.com/clasnet-dev/field-service/backend/internal/repository"
)

const TechniciansFile = "./internal/seed/data/technicians.csv"

var technicianHeaders = []string{"name", "phone", "address", "type", "expertise"}

// ParseTechnicians reads technicians from a CSV with a header row. Column
// order is free; every column in technicianHeaders must be present.
func ParseTechnicians(r io.Reader) ([]*domain.Technician, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}
	for _, h := range technicianHeaders {
		if !slices.Contains(headers, h) {
			return nil, fmt.Errorf("missing column %q", h)
		}
	}

	technicians := make([]*domain.Technician, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		record := make(map[string]string, len(headers))
		for i, value := range row {
			record[headers[i]] = strings.TrimSpace(value)
		}

		t := &domain.Technician{
			Name:      record["name"],
			Phone:     record["phone"],
			Address:   record["address"],
			Type:      domain.TechnicianType(strings.ToUpper(record["type"])),
			Expertise: record["expertise"],
		}
		if t.Name == "" {
			return nil, fmt.Errorf("line %d: name is empty", line)
		}
		switch t.Type {
		case "":
			t.Type = domain.TechnicianFreelance
		case domain.TechnicianFreelance, domain.TechnicianPermanent:
		default:
			return nil, fmt.Errorf("line %d: unknown technician type %q", line, t.Type)
		}

		technicians = append(technicians, t)
	}

	return technicians, nil
}

// ImportTechnicians inserts every technician in the CSV at path and returns
// how many were stored. Rows that fail to insert are logged and skipped.
func ImportTechnicians(r *repository.Repository, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	technicians, err := ParseTechnicians(file)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, t := range technicians {
		if err := r.CreateTechnician(t); err != nil {
			slog.Error("failed to insert technician", "name", t.Name, "error", err)
			continue
		}
		inserted++
	}

	return inserted, nil
}

type SampleData struct {
	Technicians  []*domain.Technician
	Clients      []*domain.Client
	ServiceTypes []*domain.ServiceType
	Equipment    []*domain.Equipment
}

// Sample is the small office data set used for demos and for checking the
// document output by hand.
func Sample() *SampleData {
	return &SampleData{
		Technicians: []*domain.Technician{
			{
				Name:      "Ahmad Wijaya",
				Phone:     "+62 812-3456-7890",
				Address:   "Jl. Merdeka No. 123, Banjarnegara",
				Type:      domain.TechnicianFreelance,
				Expertise: "Network Installation, CCTV Setup, Server Maintenance",
			},
			{
				Name:      "Budi Santoso",
				Phone:     "+62 813-5678-9012",
				Address:   "Jl. Sudirman No. 456, Banjarnegara",
				Type:      domain.TechnicianFreelance,
				Expertise: "CCTV Setup, Security Systems",
			},
			{
				Name:      "Siti Nurhaliza",
				Phone:     "+62 814-7890-1234",
				Address:   "Jl. Gatotkaca No. 789, Banjarnegara",
				Type:      domain.TechnicianPermanent,
				Expertise: "Server Maintenance, Network Administration",
			},
		},
		Clients: []*domain.Client{
			{
				Name:          "PT. Maju Bersama",
				ContactPerson: "Bapak Ahmad",
				Phone:         "+62 286-123456",
				Address:       "Jl. Industri No. 10, Banjarnegara",
			},
			{
				Name:          "CV. Teknologi Solusi",
				ContactPerson: "Ibu Siti",
				Phone:         "+62 286-789012",
				Address:       "Jl. Pahlawan No. 25, Banjarnegara",
			},
		},
		ServiceTypes: []*domain.ServiceType{
			{Name: "Instalasi Jaringan", Category: "Network", Description: "Instalasi jaringan LAN/WAN untuk kantor dan rumah"},
			{Name: "Setup CCTV", Category: "Security", Description: "Pemasangan dan konfigurasi sistem pengawasan CCTV"},
			{Name: "Maintenance Server", Category: "IT Support", Description: "Perawatan rutin dan troubleshooting server"},
		},
		Equipment: []*domain.Equipment{
			{Name: "Router WiFi", Unit: "unit", StockQuantity: 15},
			{Name: "CCTV Camera", Unit: "unit", StockQuantity: 25},
			{Name: "Kabel UTP", Unit: "meter", StockQuantity: 100},
		},
	}
}

// Assignment links the stored sample records into the demo job. It expects
// the ids assigned by the database to be filled in already.
func (s *SampleData) Assignment() *domain.Assignment {
	return &domain.Assignment{
		ClientID:         s.Clients[0].ID,
		ServiceTypeID:    s.ServiceTypes[0].ID,
		LeadTechnicianID: s.Technicians[0].ID,
		AssistantIDs:     []int64{s.Technicians[1].ID},
		Equipment: []domain.AssignmentEquipment{
			{EquipmentID: s.Equipment[0].ID, Quantity: 2},
			{EquipmentID: s.Equipment[2].ID, Quantity: 50},
		},
		StartDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC),
		Status:    domain.AssignmentInProgress,
		Notes:     "Instalasi jaringan untuk kantor baru",
		TotalCost: 2500000,
	}
}

// SeedSampleData stores the sample set and returns the demo assignment.
func SeedSampleData(r *repository.Repository) (*domain.Assignment, error) {
	s := Sample()

	for _, t := range s.Technicians {
		if err := r.CreateTechnician(t); err != nil {
			return nil, fmt.Errorf("technician %s: %w", t.Name, err)
		}
	}
	for _, c := range s.Clients {
		if err := r.CreateClient(c); err != nil {
			return nil, fmt.Errorf("client %s: %w", c.Name, err)
		}
	}
	for _, st := range s.ServiceTypes {
		if err := r.CreateServiceType(st); err != nil {
			return nil, fmt.Errorf("service type %s: %w", st.Name, err)
		}
	}
	for _, e := range s.Equipment {
		if err := r.CreateEquipment(e); err != nil {
			return nil, fmt.Errorf("equipment %s: %w", e.Name, err)
		}
	}

	a := s.Assignment()
	if err := r.CreateAssignment(a); err != nil {
		return nil, fmt.Errorf("assignment: %w", err)
	}

	slog.Info("sample data created", "assignment_id", a.ID)
	return a, nil
}
