// Package tempbox provides a Go client for the 1secmail temporary email
// service.
//
// The service is unauthenticated and lazy about mailbox creation: a mailbox
// exists as soon as someone sends mail to its address. The client lists
// available domains, generates disposable addresses, reads inboxes, downloads
// attachments, and can block until a message matching a filter arrives.
//
// Basic usage:
//
//	client, err := tempbox.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mailbox, err := client.RandomMailbox(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", mailbox.Address())
//
//	// Wait for a message
//	msg, err := mailbox.WaitForMessage(ctx,
//	    tempbox.WithSubjectContains("welcome"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Subject:", msg.Subject)
package tempbox
