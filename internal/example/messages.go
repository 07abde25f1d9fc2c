// Package example implements the demo /messages endpoints served by rawhttpd.
package example

import (
	"context"

	"github.com/advdv/rawhttp"
)

const (
	// GetMessagesBody is the body answered to GET /messages.
	GetMessagesBody = "Hello from GET /messages"
	// PostMessagesBody is the body answered to POST /messages.
	PostMessagesBody = "Hello from POST /messages"
)

// GetMessages answers with a fixed greeting.
func GetMessages(_ context.Context, w rawhttp.ResponseWriter, _ *rawhttp.Request) error {
	return w.WriteText(GetMessagesBody)
}

// PostMessages answers with a fixed greeting. The request body is read but not interpreted.
func PostMessages(_ context.Context, w rawhttp.ResponseWriter, _ *rawhttp.Request) error {
	return w.WriteText(PostMessagesBody)
}

// Register installs the demo routes.
func Register(t *rawhttp.RouteTable) {
	t.HandleFunc("GET", "/messages", GetMessages, "get-messages")
	t.HandleFunc("POST", "/messages", PostMessages, "post-messages")
}
