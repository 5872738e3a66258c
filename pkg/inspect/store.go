package inspect

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/vango-dev/viewcore/internal/errors"
)

// ErrSnapshotNotFound is returned by Load for an unknown name.
var ErrSnapshotNotFound = stderrors.New("inspect: snapshot not found")

// SnapshotStore persists encoded tree snapshots by name.
type SnapshotStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

const snapshotExt = ".json"

var snapshotNameRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// SnapshotName derives a content addressed name for data. Equal snapshots
// get equal names.
func SnapshotName(prefix string, data []byte) string {
	digest := fmt.Sprintf("%016x", xxhash.Sum64(data))
	if prefix == "" {
		return digest + snapshotExt
	}
	return prefix + "-" + digest + snapshotExt
}

// ValidSnapshotName reports whether name is safe to use as a file or
// object key.
func ValidSnapshotName(name string) bool {
	return snapshotNameRE.MatchString(name) && !strings.Contains(name, "..")
}

func checkName(name string) error {
	if !ValidSnapshotName(name) {
		return errors.New("VC030").WithDetail(fmt.Sprintf("invalid snapshot name %q", name))
	}
	return nil
}

// FileStore keeps snapshots as files in one directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("VC030").Wrap(err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes data atomically: a temp file in the same directory is
// renamed over the target.
func (s *FileStore) Save(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return errors.New("VC030").Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.New("VC030").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.New("VC030").Wrap(err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return errors.New("VC030").Wrap(err)
	}
	return nil
}

// Load reads a snapshot.
func (s *FileStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, errors.New("VC030").Wrap(err)
	}
	return data, nil
}

// List returns stored snapshot names in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.New("VC030").Wrap(err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
