package tempbox

import (
	"fmt"
	"time"

	"github.com/tempbox/client-go/internal/api"
)

// MessageSummary is one entry of a mailbox listing. The service returns
// summaries in its own order (newest first); the SDK preserves that order
// and never re-sorts by timestamp.
type MessageSummary struct {
	ID      int
	From    string
	Subject string
	Date    time.Time
}

// Message is a fully fetched message. It is a pure data struct; attachment
// payloads are retrieved on demand with Mailbox.Attachment.
type Message struct {
	ID          int
	From        string
	Subject     string
	Date        time.Time
	Body        string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// Attachment describes one attachment of a fetched message.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int
}

func summaryFromAPI(raw *api.MessageSummary, op, mailbox string) (MessageSummary, error) {
	date, err := time.Parse(api.DateLayout, raw.Date)
	if err != nil {
		return MessageSummary{}, &ProtocolError{
			Op:      op,
			Mailbox: mailbox,
			Detail:  fmt.Sprintf("unparseable date %q on message %d", raw.Date, raw.ID),
			Err:     err,
		}
	}
	return MessageSummary{
		ID:      raw.ID,
		From:    raw.From,
		Subject: raw.Subject,
		Date:    date,
	}, nil
}

func messageFromAPI(raw *api.Message, mailbox string) (*Message, error) {
	date, err := time.Parse(api.DateLayout, raw.Date)
	if err != nil {
		return nil, &ProtocolError{
			Op:      "read message",
			Mailbox: mailbox,
			Detail:  fmt.Sprintf("unparseable date %q on message %d", raw.Date, raw.ID),
			Err:     err,
		}
	}

	attachments := make([]Attachment, 0, len(raw.Attachments))
	for _, a := range raw.Attachments {
		attachments = append(attachments, Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}

	return &Message{
		ID:          raw.ID,
		From:        raw.From,
		Subject:     raw.Subject,
		Date:        date,
		Body:        raw.Body,
		TextBody:    raw.TextBody,
		HTMLBody:    raw.HTMLBody,
		Attachments: attachments,
	}, nil
}
