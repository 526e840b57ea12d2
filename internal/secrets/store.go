// Package secrets keeps LLM provider API keys in a per-user file (0600) with
// AES-GCM obfuscation. It is not a replacement for an OS keychain, but keeps keys
// out of config.toml.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

const fileName = "keys.json"

// ErrNotFound is returned by Get when no key is stored for the provider.
var ErrNotFound = errors.New("key not found")

type secretFile struct {
	Keys map[string]string `json:"keys"` // provider -> base64(nonce|ciphertext)
}

// Store reads and writes keys.json under Dir.
type Store struct {
	Dir string
}

// Default returns the store under the user config dir, e.g. ~/.config/docqa.
func Default() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, errors.Wrap(err, "user config dir")
	}
	return &Store{Dir: filepath.Join(dir, "docqa")}, nil
}

func (s *Store) Set(provider, key string) error {
	if provider = norm(provider); provider == "" {
		return errors.New("provider required")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("key required")
	}
	sf, err := s.load()
	if err != nil {
		return err
	}
	if sf.Keys == nil {
		sf.Keys = map[string]string{}
	}
	ct, err := encrypt([]byte(strings.TrimSpace(key)))
	if err != nil {
		return err
	}
	sf.Keys[provider] = base64.StdEncoding.EncodeToString(ct)
	return s.save(sf)
}

func (s *Store) Get(provider string) (string, error) {
	if provider = norm(provider); provider == "" {
		return "", errors.New("provider required")
	}
	sf, err := s.load()
	if err != nil {
		return "", err
	}
	enc, ok := sf.Keys[provider]
	if !ok {
		return "", ErrNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", errors.Wrap(err, "decode key")
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", errors.Wrap(err, "decrypt key")
	}
	return string(pt), nil
}

// Delete removes the provider's key; deleting a missing key is not an error.
func (s *Store) Delete(provider string) error {
	if provider = norm(provider); provider == "" {
		return errors.New("provider required")
	}
	sf, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := sf.Keys[provider]; !ok {
		return nil
	}
	delete(sf.Keys, provider)
	return s.save(sf)
}

// Providers lists the providers that have a stored key.
func (s *Store) Providers() ([]string, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(sf.Keys))
	for p := range sf.Keys {
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) path() string { return filepath.Join(s.Dir, fileName) }

func (s *Store) load() (secretFile, error) {
	var sf secretFile
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return secretFile{}, nil
		}
		return sf, errors.Wrap(err, "read keys")
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, errors.Wrap(err, "parse keys")
	}
	return sf, nil
}

func (s *Store) save(sf secretFile) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return errors.Wrap(err, "mkdir keys dir")
	}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "write keys")
	}
	return os.Rename(tmp, s.path())
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func masterKey() []byte {
	hash := sha256.Sum256([]byte("docqa-" + runtime.GOOS + "-" + os.Getenv("USER")))
	return hash[:]
}

func newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plain []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
