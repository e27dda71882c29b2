package transport

import (
	"encoding/base64"
	"encoding/json"

	"github.com/vango-dev/lamdera-ws/pkg/wire3"
)

// outboundEnvelope is the wire shape of a frame sent to the host. Field
// names are dictated by the host's protocol, not Go convention.
type outboundEnvelope struct {
	T string `json:"t"`
	S string `json:"s"`
	C string `json:"c"`
	B string `json:"b"`
	V int    `json:"v,omitempty"`
}

// EncodeOutbound builds and JSON-encodes the "ToBackend" envelope for a
// single application message. connectionID should be the current
// ConnectionID, or sessionID itself before the handshake has assigned one.
// duVariant is an opaque compatibility knob; it is only included on the
// wire when non-zero, since the host ignores unknown keys but there is no
// reason to send a zero-value reserved field.
func EncodeOutbound(sessionID, connectionID, payload string, tag byte, duVariant int) ([]byte, error) {
	body := wire3.EncodeMessage(nil, payload, tag)
	env := outboundEnvelope{
		T: "ToBackend",
		S: sessionID,
		C: connectionID,
		B: base64.StdEncoding.EncodeToString(body),
		V: duVariant,
	}
	return json.Marshal(env)
}
