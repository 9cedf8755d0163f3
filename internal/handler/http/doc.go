// Package http implements the HTTP transport layer of the exam hub.
//
// It wires chi routes to the service layer and carries the cross-cutting
// concerns that sit in front of every request: trace ids, access logging,
// CORS, per-IP rate limiting on the public auth endpoints and the session
// gate that turns a bearer credential into an identity.
package http
