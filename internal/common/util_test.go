package common

import (
	"bytes"
	"testing"
)

func TestGenerateRandBytes_Length(t *testing.T) {
	const n = 64
	b, err := GenerateRandBytes(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != n {
		t.Fatalf("expected %d bytes, got %d", n, len(b))
	}
}

func TestGenerateRandBytes_ZeroSize(t *testing.T) {
	b, err := GenerateRandBytes(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if len(b) != 0 {
		t.Fatalf("expected empty slice for size=0, got %d bytes", len(b))
	}
}

func TestGenerateRandBytes_EntropyHint(t *testing.T) {
	const n = 32
	a, err := GenerateRandBytes(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateRandBytes(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two independent draws produced identical bytes")
	}
}
