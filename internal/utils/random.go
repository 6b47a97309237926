package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

var commonFirstNames = []string{
	"Ahmad", "Budi", "Siti", "Dewi", "Agus", "Rina", "Joko", "Eko", "Sri", "Wahyu",
	"Putri", "Andi", "Hendra", "Yuni", "Fajar", "Indah", "Rizky", "Dian", "Bayu", "Lestari",
}
var commonLastNames = []string{
	"Wijaya", "Santoso", "Nurhaliza", "Pratama", "Saputra", "Kurniawan", "Hidayat", "Setiawan",
	"Lestari", "Rahmawati", "Susanto", "Purnomo", "Gunawan", "Wibowo", "Hakim",
}
var streets = []string{
	"Jl. Merdeka", "Jl. Sudirman", "Jl. Gatotkaca", "Jl. Pahlawan", "Jl. Industri",
	"Jl. Diponegoro", "Jl. Veteran", "Jl. Ahmad Yani",
}
var expertise = []string{
	"Network Installation", "CCTV Setup", "Server Maintenance", "Security Systems",
	"Network Administration", "Fiber Optic Splicing", "Access Point Survey",
}
var companyPrefixes = []string{"PT.", "CV.", "UD.", "Koperasi"}
var companyWords = []string{
	"Maju", "Bersama", "Teknologi", "Solusi", "Sejahtera", "Mandiri", "Nusantara",
	"Digital", "Karya", "Abadi", "Sentosa", "Makmur",
}

var digits = "0123456789"

func GenerateRandomIndonesianName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

func GenerateRandomDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}

func GenerateRandomPhone() string {
	return fmt.Sprintf("+62 8%s-%s-%s", GenerateRandomDigits(2), GenerateRandomDigits(4), GenerateRandomDigits(4))
}

func GenerateRandomAddress(city string) string {
	return fmt.Sprintf("%s No. %d, %s", streets[rand.Intn(len(streets))], rand.Intn(200)+1, city)
}

// GenerateRandomSubset shuffles a copy with Fisher-Yates and keeps the first n.
func GenerateRandomSubset(items []string, n int) []string {
	cp := append([]string{}, items...)
	for i := len(cp) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		cp[i], cp[j] = cp[j], cp[i]
	}
	if n > len(cp) {
		n = len(cp)
	}
	return cp[:n]
}

func GenerateRandomTechnician() *domain.Technician {
	typ := domain.TechnicianFreelance
	if rand.Intn(3) == 0 {
		typ = domain.TechnicianPermanent
	}

	return &domain.Technician{
		Name:      GenerateRandomIndonesianName(),
		Phone:     GenerateRandomPhone(),
		Address:   GenerateRandomAddress("Banjarnegara"),
		Type:      typ,
		Expertise: strings.Join(GenerateRandomSubset(expertise, rand.Intn(3)+1), ", "),
	}
}

func GenerateRandomClient() *domain.Client {
	words := GenerateRandomSubset(companyWords, 2)
	name := companyPrefixes[rand.Intn(len(companyPrefixes))] + " " + strings.Join(words, " ") + " " + GenerateRandomDigits(2)
	contact := GenerateRandomIndonesianName()

	return &domain.Client{
		Name:          name,
		ContactPerson: contact,
		Phone:         fmt.Sprintf("+62 286-%s", GenerateRandomDigits(6)),
		Email:         strings.ToLower(strings.Fields(contact)[0]) + "@example.co.id",
		Address:       GenerateRandomAddress("Banjarnegara"),
	}
}
