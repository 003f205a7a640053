// Package client talks to the remote blueprint backend.
//
// The backend is a gRPC service described by BackendServiceDesc. Messages
// are plain Go structs carried by a JSON codec registered under the "json"
// content subtype, so client and server share one set of types without
// generated code.
//
// GRPCClient implements Backend. It attaches the access token from a
// TokenSource to every call, bounds calls without a deadline by a default
// timeout and maps gRPC status codes to ErrAuthenticationRequired,
// ErrUnavailable, ErrNotSupported or *RejectedError.
//
// Monitor pings the backend on an interval and exposes it through Backend()
// only while it is reachable.
package client
