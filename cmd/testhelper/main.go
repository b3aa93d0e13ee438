// Command testhelper drives the client from the command line so
// cross-language test harnesses can exercise it as a subprocess. Each
// command prints a single JSON document on stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	tempbox "github.com/tempbox/client-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: testhelper <command> [args]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	var opts []tempbox.Option
	if u := os.Getenv("TEMPBOX_URL"); u != "" {
		opts = append(opts, tempbox.WithBaseURL(u))
	}

	client, err := tempbox.New(opts...)
	if err != nil {
		fatal("create client: %v", err)
	}

	switch os.Args[1] {
	case "list-domains":
		listDomains(ctx, client)
	case "random-mailbox":
		randomMailbox(ctx, client)
	case "messages":
		if len(os.Args) < 3 {
			fatal("usage: testhelper messages <address>")
		}
		listMessages(ctx, client, os.Args[2])
	case "wait":
		if len(os.Args) < 3 {
			fatal("usage: testhelper wait <address> [subject-substring]")
		}
		waitForMessage(ctx, client, os.Args[2:])
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func listDomains(ctx context.Context, client *tempbox.Client) {
	domains, err := client.ListDomains(ctx)
	if err != nil {
		fatal("list domains: %v", err)
	}
	if err := json.NewEncoder(os.Stdout).Encode(domains); err != nil {
		fatal("encode output: %v", err)
	}
}

func randomMailbox(ctx context.Context, client *tempbox.Client) {
	mb, err := client.RandomMailbox(ctx)
	if err != nil {
		fatal("random mailbox: %v", err)
	}
	json.NewEncoder(os.Stdout).Encode(map[string]string{"address": mb.Address()})
}

type messageOutput struct {
	ID      int    `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

func listMessages(ctx context.Context, client *tempbox.Client, address string) {
	mb, err := client.Mailbox(address)
	if err != nil {
		fatal("parse address: %v", err)
	}

	msgs, err := mb.Messages(ctx)
	if err != nil {
		fatal("list messages: %v", err)
	}

	output := struct {
		Messages []messageOutput `json:"messages"`
	}{
		Messages: make([]messageOutput, 0, len(msgs)),
	}
	for _, m := range msgs {
		output.Messages = append(output.Messages, messageOutput{
			ID:      m.ID,
			From:    m.From,
			Subject: m.Subject,
			Date:    m.Date.Format(time.RFC3339),
		})
	}

	if err := json.NewEncoder(os.Stdout).Encode(output); err != nil {
		fatal("encode output: %v", err)
	}
}

func waitForMessage(ctx context.Context, client *tempbox.Client, args []string) {
	mb, err := client.Mailbox(args[0])
	if err != nil {
		fatal("parse address: %v", err)
	}

	waitOpts := []tempbox.WaitOption{tempbox.WithWaitTimeout(60 * time.Second)}
	if len(args) > 1 {
		waitOpts = append(waitOpts, tempbox.WithSubjectContains(args[1]))
	}

	msg, err := mb.WaitForMessage(ctx, waitOpts...)
	if err != nil {
		fatal("wait for message: %v", err)
	}

	json.NewEncoder(os.Stdout).Encode(map[string]any{
		"id":      msg.ID,
		"from":    msg.From,
		"subject": msg.Subject,
		"text":    msg.TextBody,
	})
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
