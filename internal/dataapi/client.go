// Package dataapi talks to a MongoDB Data API style HTTP proxy: every
// operation is a JSON POST to <url>/action/<verb>.
package dataapi

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrUnavailable covers transport failures and an open circuit breaker.
	ErrUnavailable = errors.New("remote data API unavailable")
	// ErrBadStatus is returned for any non-2xx response.
	ErrBadStatus = errors.New("remote data API returned an error status")
	// ErrMalformedResponse is returned when a response body does not decode.
	ErrMalformedResponse = errors.New("malformed remote data API response")
)

// Actions of the Data API.
const (
	ActionFind      = "find"
	ActionFindOne   = "findOne"
	ActionInsertOne = "insertOne"
	ActionUpdateOne = "updateOne"
	ActionDeleteOne = "deleteOne"
)

// Target addresses one collection behind one Data API endpoint.
type Target struct {
	URL        string
	APIKey     string
	Database   string
	DataSource string
	Collection string
}

// Client is the set of Data API actions the content store uses. Filters,
// sorts and documents are any JSON-encodable values.
type Client interface {
	Find(ctx context.Context, t Target, filter, sort any) ([]json.RawMessage, error)
	// FindOne returns ok=false when no document matches.
	FindOne(ctx context.Context, t Target, filter any) (doc json.RawMessage, ok bool, err error)
	InsertOne(ctx context.Context, t Target, document any) error
	UpdateOne(ctx context.Context, t Target, filter, update any) error
	DeleteOne(ctx context.Context, t Target, filter any) error
}

// ByID is the filter every entity lookup uses.
func ByID(id int64) map[string]any {
	return map[string]any{"id": id}
}

// Set wraps a full document into a $set update.
func Set(document any) map[string]any {
	return map[string]any{"$set": document}
}
