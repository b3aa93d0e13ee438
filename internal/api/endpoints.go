package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// GetDomainList returns the currently available mail domains.
func (c *Client) GetDomainList(ctx context.Context) ([]string, error) {
	var domains []string
	if err := c.get(ctx, "getDomainList", nil, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// GenRandomMailbox returns count server-assigned addresses ("login@domain").
func (c *Client) GenRandomMailbox(ctx context.Context, count int) ([]string, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(count))

	var addrs []string
	if err := c.get(ctx, "genRandomMailbox", params, &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

// GetMessages lists the messages of a mailbox in server-returned order.
// A mailbox nobody has written to yet yields an empty list.
func (c *Client) GetMessages(ctx context.Context, login, domain string) ([]MessageSummary, error) {
	var msgs []MessageSummary
	if err := c.get(ctx, "getMessages", mailboxParams(login, domain), &msgs); err != nil {
		return nil, WithResource(err, ResourceMailbox)
	}
	return msgs, nil
}

// ReadMessage fetches a single message with its body and attachment metadata.
func (c *Client) ReadMessage(ctx context.Context, login, domain string, id int) (*Message, error) {
	params := mailboxParams(login, domain)
	params.Set("id", strconv.Itoa(id))

	body, err := c.fetch(ctx, "readMessage", params)
	if err != nil {
		return nil, WithResource(err, ResourceMessage)
	}
	// An unknown id is answered with a plain-text body and status 200.
	if notFoundBody(body) {
		return nil, &APIError{
			StatusCode: http.StatusNotFound,
			Body:       truncate(body),
			Resource:   ResourceMessage,
		}
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, &DecodeError{Action: "readMessage", Body: truncate(body), Err: err}
	}
	return &msg, nil
}

// DownloadAttachment fetches the raw bytes of a message attachment.
func (c *Client) DownloadAttachment(ctx context.Context, login, domain string, id int, filename string) ([]byte, error) {
	params := mailboxParams(login, domain)
	params.Set("id", strconv.Itoa(id))
	params.Set("file", filename)

	body, err := c.fetch(ctx, "download", params)
	if err != nil {
		return nil, WithResource(err, ResourceAttachment)
	}
	if notFoundBody(body) {
		return nil, &APIError{
			StatusCode: http.StatusNotFound,
			Body:       truncate(body),
			Resource:   ResourceAttachment,
		}
	}
	return body, nil
}

func mailboxParams(login, domain string) url.Values {
	params := url.Values{}
	params.Set("login", login)
	params.Set("domain", domain)
	return params
}
