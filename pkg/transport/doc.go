// Package transport implements the host's session/cookie transport
// envelope: a JSON frame carrying a base64-wrapped Wire3 message alongside
// the session and connection identifiers the host needs to route traffic.
//
// # Outbound envelope
//
//	{"t":"ToBackend","s":<sessionId>,"c":<connectionId-or-sessionId>,"b":<base64 wire3 message>}
//
// # Inbound classification
//
// A received text frame is classified into exactly one of four kinds,
// never raising an error:
//
//   - Election:   {"t":"e","l":<leaderId>}
//   - Message:    a "b" field whose base64-decoded, Wire3-decoded payload
//     matches the expected message tag
//   - Protocol:   any other frame carrying recognizable JSON
//   - ParseError: anything that is not valid JSON, or whose top-level
//     value is a number, string, boolean or array
//
// Unknown JSON keys are ignored on both directions.
package transport
