package api

// DateLayout is the timestamp format the service uses in message listings.
const DateLayout = "2006-01-02 15:04:05"

// MessageSummary represents one entry of a getMessages response.
type MessageSummary struct {
	ID      int    `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

// Message represents a readMessage response.
type Message struct {
	ID          int          `json:"id"`
	From        string       `json:"from"`
	Subject     string       `json:"subject"`
	Date        string       `json:"date"`
	Body        string       `json:"body"`
	TextBody    string       `json:"textBody"`
	HTMLBody    string       `json:"htmlBody"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment represents attachment metadata within a readMessage response.
// The payload itself comes from the download action.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}
