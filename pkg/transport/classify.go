package transport

import (
	"encoding/base64"
	"encoding/json"

	"github.com/vango-dev/lamdera-ws/pkg/wire3"
)

// Kind identifies which of the four inbound frame classes a Classified
// frame belongs to.
type Kind uint8

const (
	// KindElection is a {"t":"e","l":...} leader-election announcement.
	KindElection Kind = iota
	// KindMessage is an application payload matching the expected tag.
	KindMessage
	// KindProtocol is any other well-formed JSON frame (typically the
	// handshake, carrying a connectionId).
	KindProtocol
	// KindParseError is a frame that is not valid JSON, or whose top-level
	// value is a number, string, boolean or array rather than an object.
	KindParseError
)

// String returns the name of the classification kind.
func (k Kind) String() string {
	switch k {
	case KindElection:
		return "Election"
	case KindMessage:
		return "Message"
	case KindProtocol:
		return "Protocol"
	case KindParseError:
		return "ParseError"
	default:
		return "Unknown"
	}
}

// Classified is the result of classifying one inbound text frame. Only the
// fields relevant to Kind are populated; the rest are zero values.
type Classified struct {
	Kind Kind

	// Election
	LeaderID string

	// Message
	Data string

	// Message and Protocol
	SessionID    string
	ConnectionID string

	// Protocol
	Raw map[string]any

	// ParseError
	RawText string
}

type inboundEnvelope struct {
	T *string `json:"t"`
	L *string `json:"l"`
	B *string `json:"b"`
	S *string `json:"s"`
	C *string `json:"c"`
}

// Classify inspects a received text frame and returns its classification.
// It never panics and never returns an error: every failure mode is
// reified as a Classified value instead.
func Classify(frame []byte, expectedTag byte) Classified {
	var env inboundEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Classified{Kind: KindParseError, RawText: string(frame)}
	}

	if env.T != nil && *env.T == "e" {
		leaderID := ""
		if env.L != nil {
			leaderID = *env.L
		}
		return Classified{Kind: KindElection, LeaderID: leaderID}
	}

	sessionID, connectionID := derefOr(env.S, ""), derefOr(env.C, "")

	if env.B != nil {
		if decoded, ok := decodeMessageField(*env.B, expectedTag); ok {
			return Classified{
				Kind:         KindMessage,
				Data:         decoded,
				SessionID:    sessionID,
				ConnectionID: connectionID,
			}
		}
	}

	var raw map[string]any
	// Best-effort; a frame that unmarshaled into inboundEnvelope above will
	// also unmarshal into a generic map.
	_ = json.Unmarshal(frame, &raw)

	return Classified{
		Kind:         KindProtocol,
		SessionID:    sessionID,
		ConnectionID: connectionID,
		Raw:          raw,
	}
}

func decodeMessageField(b64 string, expectedTag byte) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", false
	}
	return wire3.DecodeMessage(raw, expectedTag)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
