// Package common contains constants and sentinel errors shared by the studio
// client and the development backend.
package common

// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
const AccessTokenHeaderName = "access_token"
