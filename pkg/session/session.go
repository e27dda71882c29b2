package session

import (
	"math/rand"
	"regexp"
	"strconv"
)

// Length is the fixed length of a SessionID, enforced by GenerateID.
const Length = 40

// seed is the fixed tail every SessionID is padded with. It is part of the
// wire contract with the host and must match byte-for-byte; it is not a
// secret, just a filler that happens to look like hex.
const seed = "c04b8f7b594cdeedebc2a8029b82943b0a620815"

// cookiePattern extracts the value of a "sid" cookie from a raw Cookie
// header or document.cookie-shaped string.
var cookiePattern = regexp.MustCompile(`sid=([^;]+)`)

// NotPresent is returned by ExtractFromCookie when no "sid=" segment is
// found.
const NotPresent = "not present"

// GenerateID produces a new 40-character SessionID: a random integer in
// [10000, 1000000) rendered in base 10, right-padded with the fixed seed
// to a total length of 40. Two successive calls differ with overwhelming
// probability, but the generator is not cryptographically strong — a
// SessionID is a routing hint, not a credential.
func GenerateID() string {
	n := 10000 + rand.Intn(1000000-10000)
	digits := strconv.Itoa(n)
	return (digits + seed)[:Length]
}

// Cookie renders a SessionID as the literal "sid=" cookie value this
// adapter sends on the initial HTTP upgrade when not running inside a
// browser.
func Cookie(id string) string {
	return "sid=" + id
}

// ExtractFromCookie returns the session id captured by the first "sid=...;"
// segment of c, or NotPresent if none is found.
func ExtractFromCookie(c string) string {
	m := cookiePattern.FindStringSubmatch(c)
	if m == nil || m[1] == "" {
		return NotPresent
	}
	return m[1]
}
