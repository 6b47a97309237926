package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func TestFormatterMoney(t *testing.T) {
	assert.Equal(t, "Rp 1.000.000", newFormatter(indonesian).Money(1000000))
	assert.Equal(t, "Rp 1,000,000", newFormatter(english).Money(1000000))
	assert.Equal(t, "Rp 0", newFormatter(indonesian).Money(0))
	assert.Equal(t, "Rp 2.500.001", newFormatter(indonesian).Money(2500000.6))
}

func TestFormatterDate(t *testing.T) {
	// 20:00 UTC is already the next day in Jakarta
	ts := time.Date(2026, time.October, 16, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "17 Oktober 2026", newFormatter(indonesian).Date(ts))
	assert.Equal(t, "October 17, 2026", newFormatter(english).Date(ts))
}

func TestFormatterFallbacks(t *testing.T) {
	f := newFormatter(indonesian)

	assert.Equal(t, "-", f.Or(""))
	assert.Equal(t, "-", f.Or("   "))
	assert.Equal(t, "Budi", f.Or("Budi"))
	assert.Equal(t, "Sedang Dikerjakan", f.Status(domain.AssignmentInProgress))
	assert.Equal(t, "ARCHIVED", f.Status("ARCHIVED"))
}

func TestFormatterNumberBeyondInt64(t *testing.T) {
	f := newFormatter(indonesian)

	assert.Equal(t, "Rp 999.999.999.999", f.Money(999999999999))
	for _, v := range []float64{1e19, 9.3e18, 1e300} {
		s := f.Number(v)
		assert.NotEmpty(t, s)
		assert.False(t, strings.HasPrefix(s, "-"), "%v formatted as %s", v, s)
	}
}
