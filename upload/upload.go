// Package upload moves local files into the document: an Uploader turns a
// file into an image source, skeleton placeholders hold the spot while the
// upload runs and an object URL store serves as the fallback uploader.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// File is a file handed to the editor by a paste, drop or picker.
type File struct {
	Name string
	// Type is the MIME type, e.g. "image/png".
	Type string
	Data []byte
}

// IsImage reports whether the MIME type names an image.
func (f File) IsImage() bool { return strings.Contains(strings.ToLower(f.Type), "image") }

// Uploader stores a file and returns the source to reference it by.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

type UploaderFunc func(ctx context.Context, f File) (string, error)

func (fn UploaderFunc) Upload(ctx context.Context, f File) (string, error) { return fn(ctx, f) }

const (
	ObjectURLPrefix = "blob:"

	// DefaultReleaseTimeout bounds how long an unsettled object URL is kept.
	DefaultReleaseTimeout = 30 * time.Second
)

// IsObjectURL reports whether src was issued by an ObjectURLStore.
func IsObjectURL(src string) bool { return strings.HasPrefix(src, ObjectURLPrefix) }

// StoreOptions configures an ObjectURLStore. Zero values select defaults.
type StoreOptions struct {
	// Timeout releases an object URL that never settles.
	Timeout time.Duration
	// AfterFunc schedules f after d and returns a function that cancels it.
	// Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) (stop func() bool)
	Logger    *slog.Logger
}

func normalizeStoreOptions(opt StoreOptions) StoreOptions {
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultReleaseTimeout
	}
	if opt.AfterFunc == nil {
		opt.AfterFunc = func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		}
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return opt
}

// ObjectURLStore keeps uploaded files in memory under blob: URLs. It is the
// uploader used when the host does not provide one. Safe for concurrent use.
type ObjectURLStore struct {
	opt StoreOptions

	mu    sync.Mutex
	seq   int
	files map[string]File
}

func NewObjectURLStore(opt StoreOptions) *ObjectURLStore {
	return &ObjectURLStore{opt: normalizeStoreOptions(opt), files: make(map[string]File)}
}

// Upload issues a new object URL for f.
func (s *ObjectURLStore) Upload(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	src := fmt.Sprintf("%stiptap/%d", ObjectURLPrefix, s.seq)
	s.files[src] = f
	return src, nil
}

// Open returns the file behind src while it is still held.
func (s *ObjectURLStore) Open(src string) (File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[src]
	return f, ok
}

// Len returns the number of held object URLs.
func (s *ObjectURLStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Revoke drops src. Unknown sources are ignored.
func (s *ObjectURLStore) Revoke(src string) {
	s.mu.Lock()
	_, ok := s.files[src]
	delete(s.files, src)
	s.mu.Unlock()
	if ok {
		s.opt.Logger.Debug("Object URL revoked", "src", src)
	}
}

// ReleaseOnSettle arranges for src to be revoked once the image showing it
// has settled, or after the store timeout. It returns the function to call
// when the image settles. Sources that are not object URLs are left alone
// and the returned function does nothing.
func (s *ObjectURLStore) ReleaseOnSettle(src string) (settle func()) {
	if !IsObjectURL(src) {
		return func() {}
	}
	var once sync.Once
	release := func() { once.Do(func() { s.Revoke(src) }) }
	stop := s.opt.AfterFunc(s.opt.Timeout, release)
	return func() {
		stop()
		release()
	}
}
