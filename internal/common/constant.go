// Package common contains shared constants and sentinel errors used across
// MusicBox components.
package common

const (
	// AuthHeaderName is the HTTP header carrying the access token.
	AuthHeaderName = "Authorization"

	// BearerPrefix is the expected scheme prefix of the auth header value.
	BearerPrefix = "Bearer "
)
