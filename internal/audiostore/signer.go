package audiostore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Signer mints and verifies HMAC-SHA256 signed access tokens for artifact
// keys. A token binds the key to an expiry timestamp.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer with the given secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the signature for key valid until exp.
func (s *Signer) Sign(key string, exp time.Time) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", key, exp.Unix())
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks sig against key and exp and that exp has not passed.
func (s *Signer) Verify(key string, expUnix int64, sig string) bool {
	if time.Now().Unix() > expUnix {
		return false
	}
	want := s.Sign(key, time.Unix(expUnix, 0))
	return hmac.Equal([]byte(want), []byte(sig))
}
