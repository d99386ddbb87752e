// Package common contains shared constants and sentinel errors used across
// letshang components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultMaxAttendees is applied when a hang is saved without a usable capacity.
const DefaultMaxAttendees = 10
