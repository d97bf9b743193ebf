// Package gist provides an HTTP client for the GitHub gist API.
//
// # Overview
//
// This package defines the client parasvg uses to store and retrieve SVG
// snapshots as gist files. It handles HTTP communication, JSON
// serialization, and the mapping of API failures onto errors the rest of
// the editor can branch on.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - errors.go: Sentinel and typed errors for precondition and API failures
//
// # Client Usage
//
// Create a client using the gist host from configuration:
//
//	client, err := gist.NewClient("https://api.github.com", 10*time.Second)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	// Save a snapshot; an empty RemoteID creates a new gist.
//	id, err := client.CreateOrUpdate(ctx, gist.SaveRequest{
//		ResourceName: "sketch.parametric.svg",
//		Content:      payload,
//		Token:        token,
//	})
//
//	// Download a snapshot.
//	content, err := client.Fetch(ctx, id, "sketch.parametric.svg")
//
// # API Endpoints
//
//   - POST /gists: Create a new gist holding the snapshot file
//   - PATCH /gists/<id>: Update the snapshot file in an existing gist
//   - GET /gists/<id>: Fetch a gist and extract one file's content
//
// # Error Handling
//
// Preconditions are checked before any network I/O: a save without content
// fails with ErrNoContent, a save without a token with ErrNoToken, both
// without touching the wire. Fetching an unknown gist returns a
// *NotFoundError carrying the id; any other non-2xx response surfaces as a
// *StatusError with the status code and a bounded slice of the body. A
// file too large for the inline API response fails with ErrTruncated
// rather than silently returning a prefix.
package gist
