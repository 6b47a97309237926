package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/message"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

// Dates on documents are printed in Western Indonesia Time regardless of the
// server's zone.
var wib = time.FixedZone("WIB", 7*60*60)

type formatter struct {
	labels  *Labels
	printer *message.Printer
}

func newFormatter(l *Labels) *formatter {
	return &formatter{labels: l, printer: message.NewPrinter(l.Tag)}
}

// Number groups thousands the way the locale does, with no fraction digits.
func (f *formatter) Number(v float64) string {
	r := math.Round(v)
	if math.IsNaN(r) || math.Abs(r) >= math.MaxInt64 {
		// outside int64 the conversion wraps
		return f.printer.Sprintf("%.0f", r)
	}
	return f.printer.Sprintf("%d", int64(r))
}

func (f *formatter) Money(v float64) string {
	return "Rp " + f.Number(v)
}

func (f *formatter) Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *formatter) Date(t time.Time) string {
	t = t.In(wib)
	month := f.labels.Months[t.Month()-1]
	if f.labels.Locale == "en" {
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
}

func (f *formatter) Period(start, end time.Time) string {
	return f.Date(start) + " - " + f.Date(end)
}

func (f *formatter) Status(s domain.AssignmentStatus) string {
	if name, ok := f.labels.Statuses[s]; ok {
		return name
	}
	return f.Or(string(s))
}

// Or returns v, or the placeholder when v is blank.
func (f *formatter) Or(v string) string {
	if strings.TrimSpace(v) == "" {
		return f.labels.Placeholder
	}
	return v
}
