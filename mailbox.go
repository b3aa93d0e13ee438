package tempbox

import (
	"context"
	"fmt"
	"os"
)

// Mailbox is a (login, domain) pair addressable as an inbox on the remote
// service. Constructing one is purely local; all its methods are read-only
// against remote state.
type Mailbox struct {
	login  string
	domain string
	client *Client
}

// Login returns the local part of the address.
func (m *Mailbox) Login() string {
	return m.login
}

// Domain returns the mail domain of the address.
func (m *Mailbox) Domain() string {
	return m.domain
}

// Address returns the full address in the login@domain form used by the
// remote API.
func (m *Mailbox) Address() string {
	return m.login + "@" + m.domain
}

// Messages lists the mailbox's messages in server-returned order. An empty
// mailbox yields an empty slice, not an error.
func (m *Mailbox) Messages(ctx context.Context) ([]MessageSummary, error) {
	raw, err := m.client.api.GetMessages(ctx, m.login, m.domain)
	if err != nil {
		return nil, wrapError("list messages", m.Address(), err)
	}

	summaries := make([]MessageSummary, 0, len(raw))
	for i := range raw {
		s, err := summaryFromAPI(&raw[i], "list messages", m.Address())
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Message fetches a single message by id, including its body and attachment
// metadata.
func (m *Mailbox) Message(ctx context.Context, id int) (*Message, error) {
	raw, err := m.client.api.ReadMessage(ctx, m.login, m.domain, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &NotFoundError{Mailbox: m.Address(), Resource: ResourceMessage, ID: id}
		}
		return nil, wrapError("read message", m.Address(), err)
	}
	return messageFromAPI(raw, m.Address())
}

// Attachment downloads the raw bytes of a message attachment.
func (m *Mailbox) Attachment(ctx context.Context, id int, filename string) ([]byte, error) {
	if filename == "" {
		return nil, &ArgumentError{Name: "filename", Reason: "must not be empty"}
	}

	data, err := m.client.api.DownloadAttachment(ctx, m.login, m.domain, id, filename)
	if err != nil {
		if isNotFound(err) {
			return nil, &NotFoundError{
				Mailbox:  m.Address(),
				Resource: ResourceAttachment,
				ID:       id,
				Filename: filename,
			}
		}
		return nil, wrapError("download attachment", m.Address(), err)
	}
	return data, nil
}

// SaveAttachment downloads an attachment and writes it to path.
func (m *Mailbox) SaveAttachment(ctx context.Context, id int, filename, path string) error {
	data, err := m.Attachment(ctx, id, filename)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write attachment: %w", err)
	}
	return nil
}
