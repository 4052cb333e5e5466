package anchor

import (
	"testing"
	"time"
)

func samplePayload(eventType string, at time.Time) EventPayload {
	return EventPayload{
		ApplicationID: "STU001",
		EventType:     eventType,
		Subject:       "SSCE",
		Actor:         "registrar@school.edu",
		Detail:        "0xabc",
		OccurredAt:    at,
	}
}

func TestDigestDeterministic(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := samplePayload("document.submitted", at)

	d1 := Digest(GenesisDigest, p)
	d2 := Digest(GenesisDigest, p)
	if d1 != d2 {
		t.Fatalf("digest not deterministic: %s vs %s", d1, d2)
	}
	if len(d1) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(d1))
	}
}

func TestDigestSensitiveToFields(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	base := samplePayload("document.submitted", at)

	variants := []EventPayload{
		samplePayload("document.reviewed", at),
		samplePayload("document.submitted", at.Add(time.Nanosecond)),
	}
	changedActor := base
	changedActor.Actor = "officer@school.edu"
	variants = append(variants, changedActor)

	baseDigest := Digest(GenesisDigest, base)
	for i, v := range variants {
		if Digest(GenesisDigest, v) == baseDigest {
			t.Errorf("variant %d produced an identical digest", i)
		}
	}
}

func TestDigestFieldBoundaries(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// Free-text fields may contain any bytes, including the old join
	// separator. Shifting content across a field boundary must change
	// the digest.
	a := samplePayload("document.reviewed", at)
	a.Actor = "registrar@school.edu"
	a.Detail = "rejected: blurry\nscan"

	b := samplePayload("document.reviewed", at)
	b.Actor = "registrar@school.edu\nrejected: blurry"
	b.Detail = "scan"

	if Digest(GenesisDigest, a) == Digest(GenesisDigest, b) {
		t.Fatal("payloads differing only in the actor/detail boundary must not share a digest")
	}
}

func TestDigestChainsOnPrevious(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := samplePayload("document.submitted", at)

	d1 := Digest(GenesisDigest, p)
	d2 := Digest(d1, p)
	if d1 == d2 {
		t.Fatal("same payload under different prev digests must differ")
	}
}

func TestVerify(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	payloads := []EventPayload{
		samplePayload("application.registered", at),
		samplePayload("document.submitted", at.Add(time.Minute)),
		samplePayload("document.reviewed", at.Add(2*time.Minute)),
	}

	digests := make([]string, 0, len(payloads))
	prev := GenesisDigest
	for _, p := range payloads {
		d := Digest(prev, p)
		digests = append(digests, d)
		prev = d
	}

	if !Verify(payloads, digests) {
		t.Fatal("expected valid chain to verify")
	}

	// Tamper with a middle event
	tampered := make([]EventPayload, len(payloads))
	copy(tampered, payloads)
	tampered[1].Detail = "0xdef"
	if Verify(tampered, digests) {
		t.Fatal("tampered chain must not verify")
	}

	// Length mismatch
	if Verify(payloads[:2], digests) {
		t.Fatal("length mismatch must not verify")
	}
}
