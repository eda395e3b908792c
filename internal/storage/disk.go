package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiskClient stores objects as plain files under a root directory.
// It mirrors the on-disk "files/" layout served statically by the
// HTTP layer and is the default backend.
type DiskClient struct {
	root string
}

// NewDiskClient constructs a disk backend rooted at the given directory.
func NewDiskClient(root string) (*DiskClient, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("disk storage root is required")
	}
	return &DiskClient{root: root}, nil
}

// EnsureBucket creates the root directory when missing.
func (d *DiskClient) EnsureBucket(_ context.Context) error {
	return os.MkdirAll(d.root, 0o755)
}

// Put writes an object to disk, creating parent directories as needed.
func (d *DiskClient) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	target, err := d.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return err
	}
	return f.Close()
}

// Get opens a reader for the object under the given key.
func (d *DiskClient) Get(_ context.Context, key string) (io.ReadCloser, error) {
	target, err := d.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(target)
}

// Delete removes the object under the given key. Deleting a missing
// object is not an error, so best-effort cleanup stays quiet.
func (d *DiskClient) Delete(_ context.Context, key string) error {
	target, err := d.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Bucket returns the root directory.
func (d *DiskClient) Bucket() string {
	return d.root
}

// Root returns the root directory for static file serving.
func (d *DiskClient) Root() string {
	return d.root
}

func (d *DiskClient) resolve(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage key is required")
	}

	target := filepath.Join(d.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(d.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New("storage key escapes the root directory")
	}
	return target, nil
}
