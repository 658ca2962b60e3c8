package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/errors"
)

// LocalStore writes media under a public directory that the HTTP server
// serves statically.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Backend() string {
	return constants.MediaBackendLocal
}

// Put writes obj to <root>/<uploads|qr-codes>/<name> through a temp file and
// returns the public path.
func (s *LocalStore) Put(ctx context.Context, obj Object) (Reference, error) {
	if err := ctx.Err(); err != nil {
		return Reference{}, err
	}

	name := filepath.Base(obj.Name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return Reference{}, errors.Validation("file name is required")
	}

	subdir := dirForKind(obj.Kind)
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return Reference{}, errors.Storage("failed to create upload directory", err)
	}

	fullPath := filepath.Join(dir, name)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return Reference{}, errors.Storage("failed to create file", err)
	}

	if _, err := f.Write(obj.Data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return Reference{}, errors.Storage("failed to write file", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return Reference{}, errors.Storage("failed to close file", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return Reference{}, errors.Storage("failed to move file into place", err)
	}

	return Reference{Path: path.Join("/", subdir, name)}, nil
}

// Open reads back the bytes behind a reference returned by Put.
func (s *LocalStore) Open(ref string) ([]byte, error) {
	clean := path.Clean("/" + ref)
	parts := strings.SplitN(strings.TrimPrefix(clean, "/"), "/", 2)
	if len(parts) != 2 || (parts[0] != constants.UploadsDirName && parts[0] != constants.QRCodesDirName) {
		return nil, errors.Validation(fmt.Sprintf("not a local media reference: %s", ref))
	}

	data, err := os.ReadFile(filepath.Join(s.root, parts[0], filepath.FromSlash(parts[1])))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("file not found")
		}
		return nil, errors.Storage("failed to read file", err)
	}
	return data, nil
}
