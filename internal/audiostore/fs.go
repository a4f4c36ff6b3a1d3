package audiostore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SpoonyCreature/berea/internal/apperr"
)

// FS implements Cache backed by the local file system. The artifact bytes
// live at <root>/<key> with the content type in a <key>.type sidecar.
type FS struct {
	root     string // absolute path to cache directory
	signer   *Signer
	basePath string // URL path prefix for signed links, e.g. /api/audio
}

var _ Cache = (*FS)(nil)

// NewFS creates an FS cache rooted at the given directory. The directory
// must already exist.
func NewFS(root string, signer *Signer, basePath string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("audiostore: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("audiostore: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("audiostore: root is not a directory: %s", abs)
	}
	return &FS{root: abs, signer: signer, basePath: strings.TrimRight(basePath, "/")}, nil
}

// safePath resolves a key against the cache root and rejects any result
// that escapes it (directory traversal).
func (f *FS) safePath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("audiostore: empty key")
	}
	cleaned := filepath.Clean(key)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("audiostore: absolute keys not allowed: %s", key)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("audiostore: resolve key: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("audiostore: key escapes cache root: %s", key)
	}
	return abs, nil
}

// Exists reports whether an artifact is stored under key.
func (f *FS) Exists(key string) (bool, error) {
	abs, err := f.safePath(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %s: %v", apperr.ErrStorage, key, err)
	}
	return true, nil
}

// Write atomically stores data under key: tmp file → fsync → rename.
// An existing key is left untouched; synthesis input is deterministic per
// study, so the first artifact is as good as any later one.
func (f *FS) Write(key string, data []byte, contentType string) error {
	abs, err := f.safePath(key)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %v", apperr.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), ".berea-tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", apperr.ErrStorage, err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("%w: write temp: %v", apperr.ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: fsync: %v", apperr.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp: %v", apperr.ErrStorage, err)
	}
	if err := os.WriteFile(abs+".type", []byte(contentType), 0o644); err != nil {
		return fmt.Errorf("%w: write sidecar: %v", apperr.ErrStorage, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("%w: rename: %v", apperr.ErrStorage, err)
	}
	success = true
	return nil
}

// Read returns the artifact bytes and content type for key.
func (f *FS) Read(key string) ([]byte, string, error) {
	abs, err := f.safePath(key)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", apperr.ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: read %s: %v", apperr.ErrStorage, key, err)
	}
	ct := "audio/mpeg"
	if raw, err := os.ReadFile(abs + ".type"); err == nil && len(raw) > 0 {
		ct = string(raw)
	}
	return data, ct, nil
}

// SignedURL mints a time-limited capability URL for key.
func (f *FS) SignedURL(key string, ttl time.Duration) (string, error) {
	if _, err := f.safePath(key); err != nil {
		return "", err
	}
	exp := time.Now().Add(ttl)
	sig := f.signer.Sign(key, exp)
	return fmt.Sprintf("%s/%s?exp=%d&sig=%s",
		f.basePath, url.PathEscape(key), exp.Unix(), sig), nil
}
