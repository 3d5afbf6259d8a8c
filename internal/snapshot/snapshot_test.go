package snapshot

import (
	"os"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	return s
}

func samplePayload() *Payload {
	return &Payload{
		ManifestPath: "fixtures/rtgen.toml",
		VettedAt:     time.Now().UTC(),
		Classes:      []string{"Foo", "Bar"},
		Parents: map[string][]string{
			"Bar": {"Foo[T]"},
		},
		Linearizations: map[string][]string{
			"Foo": {"Foo[any]"},
			"Bar": {"Bar[any]", "Foo[any]"},
		},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := testStore(t)
	key := DigestBytes([]byte("[classes.Foo]\n"))

	if err := s.Put(key, samplePayload()); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	var out Payload
	ok, err := s.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("get = %v, %v", ok, err)
	}
	if out.ManifestPath != "fixtures/rtgen.toml" {
		t.Fatalf("manifest path = %q", out.ManifestPath)
	}
	if len(out.Linearizations["Bar"]) != 2 || out.Linearizations["Bar"][1] != "Foo[any]" {
		t.Fatalf("linearizations = %v", out.Linearizations)
	}
}

func TestGetMissesOnUnknownKey(t *testing.T) {
	s := testStore(t)
	var out Payload
	ok, err := s.Get(DigestBytes([]byte("never stored")), &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatalf("unknown key must miss")
	}
}

func TestStaleSchemaReadsAsMiss(t *testing.T) {
	s := testStore(t)
	key := DigestBytes([]byte("stale"))
	if err := s.Put(key, samplePayload()); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// Rewrite the entry as if a different schema generation produced it.
	stale := samplePayload()
	stale.Schema = schemaVersion + 1
	raw, err := msgpack.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(s.pathFor(key), raw, 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	var out Payload
	ok, err := s.Get(key, &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Fatalf("stale schema must read as a miss")
	}
}

func TestDigestDistinguishesContent(t *testing.T) {
	a := DigestBytes([]byte("[classes.Foo]\n"))
	b := DigestBytes([]byte("[classes.Bar]\n"))
	if a == b {
		t.Fatalf("digests collide")
	}
	if a.IsZero() {
		t.Fatalf("content digest must not be zero")
	}
	var z Digest
	if !z.IsZero() {
		t.Fatalf("zero digest misreported")
	}
}

func TestDropAll(t *testing.T) {
	s := testStore(t)
	key := DigestBytes([]byte("drop me"))
	if err := s.Put(key, samplePayload()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.DropAll(); err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	var out Payload
	ok, err := s.Get(key, &out)
	if err != nil || ok {
		t.Fatalf("store must be empty after drop: %v, %v", ok, err)
	}
}
