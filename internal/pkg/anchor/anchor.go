// Package anchor computes the content-addressed digest chain that links
// consecutive audit events of an application. Each event digest commits to
// the previous digest and the event payload, so any rewrite of history is
// detectable by re-walking the chain.
package anchor

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// GenesisDigest anchors the first event of every application chain.
const GenesisDigest = "0000000000000000000000000000000000000000000000000000000000000000"

// EventPayload is the canonical content committed into an event digest.
type EventPayload struct {
	ApplicationID string
	EventType     string
	Subject       string // document type, form type, or empty
	Actor         string
	Detail        string
	OccurredAt    time.Time
}

// Digest returns the hex digest chaining prevDigest to the payload.
// Each field is length-prefixed in the canonical encoding, so fields
// carrying arbitrary text (actor identities, rejection reasons) can
// never collide across a field boundary.
func Digest(prevDigest string, p EventPayload) string {
	fields := []string{
		prevDigest,
		p.ApplicationID,
		p.EventType,
		p.Subject,
		p.Actor,
		p.Detail,
		strconv.FormatInt(p.OccurredAt.UTC().UnixNano(), 10),
	}

	var buf strings.Builder
	for _, f := range fields {
		buf.WriteString(strconv.Itoa(len(f)))
		buf.WriteByte(':')
		buf.WriteString(f)
	}
	sum := sha256.Sum256([]byte(buf.String()))
	return hex.EncodeToString(sum[:])
}

// Verify re-walks a chain of (payload, digest) pairs and reports whether
// every digest commits to its predecessor.
func Verify(payloads []EventPayload, digests []string) bool {
	if len(payloads) != len(digests) {
		return false
	}

	prev := GenesisDigest
	for i, p := range payloads {
		if Digest(prev, p) != digests[i] {
			return false
		}
		prev = digests[i]
	}
	return true
}
