// Package common contains shared constants and sentinel errors used across
// itemkeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound requests.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName is the standard metadata key accepted as an
// alternative carrier, in the form "Bearer <token>".
const AuthorizationHeaderName = "authorization"

// FallbackUserName is the debug-only identity accepted when the server runs
// with the fallback user enabled.
const FallbackUserName = "alice"
