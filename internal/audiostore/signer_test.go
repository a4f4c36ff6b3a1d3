package audiostore

import (
	"testing"
	"time"
)

func TestSignerRoundTrip(t *testing.T) {
	s := NewSigner("secret")
	exp := time.Now().Add(time.Hour)

	sig := s.Sign("study-1", exp)
	if !s.Verify("study-1", exp.Unix(), sig) {
		t.Error("valid signature rejected")
	}
}

func TestSignerRejectsTampering(t *testing.T) {
	s := NewSigner("secret")
	exp := time.Now().Add(time.Hour)
	sig := s.Sign("study-1", exp)

	if s.Verify("study-2", exp.Unix(), sig) {
		t.Error("signature accepted for a different key")
	}
	if s.Verify("study-1", exp.Add(time.Hour).Unix(), sig) {
		t.Error("signature accepted for a shifted expiry")
	}
	if s.Verify("study-1", exp.Unix(), sig+"00") {
		t.Error("mangled signature accepted")
	}
}

func TestSignerRejectsExpired(t *testing.T) {
	s := NewSigner("secret")
	exp := time.Now().Add(-time.Minute)
	sig := s.Sign("study-1", exp)

	if s.Verify("study-1", exp.Unix(), sig) {
		t.Error("expired signature accepted")
	}
}

func TestSignerSecretMatters(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	sig := NewSigner("secret-a").Sign("study-1", exp)

	if NewSigner("secret-b").Verify("study-1", exp.Unix(), sig) {
		t.Error("signature verified under a different secret")
	}
}
