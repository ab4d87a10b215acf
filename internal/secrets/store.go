// Package secrets keeps credentials such as the Redis password out of the
// plain-text config file.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RedisPassword is the name under which the notify password is stored.
const RedisPassword = "redis_password"

const (
	fileName = "secrets.json"
	keyName  = "secrets.key"
)

// Store is a per-user secret file (0600) sealed with AES-GCM under a random
// key kept next to it. It is not a replacement for an OS keychain.
type Store struct {
	Dir string
}

type secretFile struct {
	Values map[string]string `json:"values"` // name -> base64(nonce|ciphertext)
}

// DefaultStore lives in the user config dir.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{Dir: filepath.Join(dir, "inventory")}, nil
}

func (s *Store) Put(name, value string) error {
	if name = norm(name); name == "" {
		return fmt.Errorf("secret name required")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	key, err := s.key(true)
	if err != nil {
		return err
	}
	sf, err := s.load()
	if err != nil {
		return err
	}
	ct, err := seal(key, []byte(value))
	if err != nil {
		return err
	}
	sf.Values[name] = base64.StdEncoding.EncodeToString(ct)
	return s.save(sf)
}

// Get returns the secret and whether it was found.
func (s *Store) Get(name string) (string, bool, error) {
	name = norm(name)
	sf, err := s.load()
	if err != nil {
		return "", false, err
	}
	enc, ok := sf.Values[name]
	if !ok {
		return "", false, nil
	}
	key, err := s.key(false)
	if err != nil {
		return "", false, err
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", false, err
	}
	pt, err := open(key, raw)
	if err != nil {
		return "", false, fmt.Errorf("decrypt %s: %w", name, err)
	}
	return string(pt), true, nil
}

func (s *Store) Delete(name string) error {
	sf, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := sf.Values[norm(name)]; !ok {
		return nil
	}
	delete(sf.Values, norm(name))
	return s.save(sf)
}

func (s *Store) key(create bool) ([]byte, error) {
	path := filepath.Join(s.Dir, keyName)
	key, err := os.ReadFile(path)
	if err == nil && len(key) == 32 {
		return key, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if !create {
		return nil, fmt.Errorf("secret key missing in %s", s.Dir)
	}
	key = make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *Store) load() (secretFile, error) {
	sf := secretFile{Values: map[string]string{}}
	data, err := os.ReadFile(filepath.Join(s.Dir, fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sf, nil
		}
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, err
	}
	if sf.Values == nil {
		sf.Values = map[string]string{}
	}
	return sf, nil
}

func (s *Store) save(sf secretFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.Dir, fileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func seal(key, plain []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func open(key, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
