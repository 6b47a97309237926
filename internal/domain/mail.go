package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeDocumentLink = "document_link"

type DocumentLinkMailData struct {
	RecipientName string `json:"recipientName"`
	CompanyName   string `json:"companyName"`
	DocumentTitle string `json:"documentTitle"`
	AssignmentID  int64  `json:"assignmentId"`
	Link          string `json:"link"`
	ExpiresAt     string `json:"expiresAt"`
}
