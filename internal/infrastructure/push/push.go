// Package push delivers device notifications through Firebase Cloud Messaging.
package push

import (
	"context"
)

type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Result is the outcome of one delivery. Err is nil on success.
// Unregistered is set when the provider reports the token as gone.
type Result struct {
	Token        string
	MessageID    string
	Err          error
	Unregistered bool
}

type Sender interface {
	Send(ctx context.Context, m Message) Result
}

// SendAsync runs s.Send in a goroutine detached from ctx cancellation.
// The channel yields one Result and is closed.
func SendAsync(ctx context.Context, s Sender, m Message) <-chan Result {
	out := make(chan Result, 1)
	bg := context.WithoutCancel(ctx)
	go func() {
		defer close(out)
		out <- s.Send(bg, m)
	}()
	return out
}
