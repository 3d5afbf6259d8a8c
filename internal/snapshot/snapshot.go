// Package snapshot persists hierarchy vet results on disk, keyed by the
// manifest's content digest. Re-vetting an unchanged manifest becomes a
// single cache read.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// Digest identifies a manifest by its content hash.
type Digest [sha256.Size]byte

// DigestBytes hashes raw manifest content.
func DigestBytes(content []byte) Digest {
	return sha256.Sum256(content)
}

// DigestFile hashes a manifest file's content.
func DigestFile(path string) (Digest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, err
	}
	return DigestBytes(content), nil
}

// IsZero reports the all-zero digest, which never keys a real manifest.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

// Payload stores the vet results for one manifest.
type Payload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	ManifestPath string
	VettedAt     time.Time

	// Classes in declaration order, with their computed ancestry.
	Classes        []string
	Parents        map[string][]string
	Linearizations map[string][]string

	// Vet problems, empty when the hierarchy is consistent.
	Problems []string
}

// Store хранит результаты проверки иерархий по дайджесту манифеста.
// Thread-safe for concurrent access.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a store at the standard XDG cache location.
func Open(app string) (*Store, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app))
}

// OpenAt initializes a store rooted at an explicit directory.
func OpenAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "vet" — для удобства читаемости и очистки.
	return filepath.Join(s.dir, "vet", hexKey+".mp")
}

// Put serializes and writes a payload to the store.
func (s *Store) Put(key Digest, payload *Payload) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	payload.Schema = schemaVersion
	p := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the store. A schema mismatch
// reads as a miss so stale entries invalidate themselves.
func (s *Store) Get(key Digest, out *Payload) (bool, error) {
	if s == nil {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the store, useful after format changes.
func (s *Store) DropAll() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// тривиально: переименуем каталог и удалим целиком
	old := s.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(s.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
