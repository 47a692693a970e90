package media

import (
	"context"
	"fmt"
	"io"
	"sync"

	"property-service/internal/model"
	"property-service/prometheus"
)

// MemoryStore keeps images in process. It backs development runs without
// Cloudinary credentials and records every call for inspection.
type MemoryStore struct {
	BaseURL string

	mu     sync.Mutex
	seq    int
	assets map[string][]byte
	calls  []Call
	failOn map[string]error
}

// Call is one recorded store operation.
type Call struct {
	Op       string // "upload" or "delete"
	PublicID string
}

// NewMemoryStore returns an empty store serving URLs under baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		BaseURL: baseURL,
		assets:  make(map[string][]byte),
		failOn:  make(map[string]error),
	}
}

// FailOn makes the next calls for op ("upload" or "delete") return err.
func (s *MemoryStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

func (s *MemoryStore) Upload(ctx context.Context, f File) (model.Image, error) {
	if err := ctx.Err(); err != nil {
		return model.Image{}, err
	}
	var data []byte
	if f.Content != nil {
		b, err := io.ReadAll(f.Content)
		if err != nil {
			return model.Image{}, fmt.Errorf("read %s: %w", f.Name, err)
		}
		data = b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn["upload"]; err != nil {
		prometheus.RecordMediaOperation("upload", err)
		return model.Image{}, err
	}
	s.seq++
	id := fmt.Sprintf("mem-%d", s.seq)
	s.assets[id] = data
	s.calls = append(s.calls, Call{Op: "upload", PublicID: id})
	prometheus.RecordMediaOperation("upload", nil)
	return model.Image{URL: s.BaseURL + "/" + id, PublicID: id}, nil
}

func (s *MemoryStore) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: "delete", PublicID: publicID})
	if err := s.failOn["delete"]; err != nil {
		prometheus.RecordMediaOperation("delete", err)
		return err
	}
	delete(s.assets, publicID)
	prometheus.RecordMediaOperation("delete", nil)
	return nil
}

// Calls returns the recorded operations in order.
func (s *MemoryStore) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Deleted returns the public ids passed to Delete, in order.
func (s *MemoryStore) Deleted() []string {
	var ids []string
	for _, c := range s.Calls() {
		if c.Op == "delete" {
			ids = append(ids, c.PublicID)
		}
	}
	return ids
}

// Uploaded returns the public ids created by Upload, in order.
func (s *MemoryStore) Uploaded() []string {
	var ids []string
	for _, c := range s.Calls() {
		if c.Op == "upload" {
			ids = append(ids, c.PublicID)
		}
	}
	return ids
}

// Has reports whether an asset is stored.
func (s *MemoryStore) Has(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.assets[publicID]
	return ok
}
