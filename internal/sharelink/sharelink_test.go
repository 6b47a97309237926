package sharelink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	s := NewSigner("rahasia", time.Hour)
	link := Link{AssignmentID: 42, DocumentType: "payment-receipt", Format: "pdf", Locale: "id"}

	token, expires, err := s.Sign(link)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	got, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, link, *got)
}

func TestVerifyRejectsExpired(t *testing.T) {
	s := NewSigner("rahasia", time.Minute)
	issued := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, _, err := s.Sign(Link{AssignmentID: 1, DocumentType: "work-order"})
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, _, err := NewSigner("rahasia", time.Hour).Sign(Link{AssignmentID: 1, DocumentType: "work-order"})
	require.NoError(t, err)

	_, err = NewSigner("lain", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewSigner("rahasia", time.Hour).Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
