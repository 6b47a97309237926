package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func TestTemplateDataDocumentLink(t *testing.T) {
	m := domain.MailMessage{
		Type: domain.MailTypeDocumentLink,
		To:   "ahmad@majubersama.co.id",
		// payloads arrive as decoded JSON, not as the typed struct
		Data: map[string]any{
			"recipientName": "Bapak Ahmad",
			"companyName":   "CLASNET GROUP",
			"documentTitle": "KWITANSI PEMBAYARAN (PAYMENT RECEIPT)",
			"assignmentId":  42,
			"link":          "http://docs.test/shared/documents/abc",
		},
	}

	data, fields, err := templateData(m)
	require.NoError(t, err)

	link := data.(domain.DocumentLinkMailData)
	assert.Equal(t, "Bapak Ahmad", link.RecipientName)
	assert.EqualValues(t, 42, link.AssignmentID)
	assert.Equal(t, "CLASNET GROUP - KWITANSI PEMBAYARAN (PAYMENT RECEIPT)", mailTemplates[m.Type].subject(fields))
}

func TestBuildMessageRejectsUnknownType(t *testing.T) {
	_, err := buildMessage("noreply@clasnet.co.id", domain.MailMessage{Type: "create_user", To: "a@b.co"})

	assert.ErrorContains(t, err, "unsupported mail type")
}
