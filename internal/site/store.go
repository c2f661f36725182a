
package site

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrOutsideRoot = errors.New("path outside root")
	ErrNotFound    = errors.New("not found")
)

// Store is read-only access to a served site directory. Every path is
// resolved inside the root; symlinks pointing out of it are refused.
type Store struct {
	root string // absolute path to the public dir of a site
}

func NewStore(siteDir string, publicRel string) (*Store, error) {
	if publicRel == "" {
		publicRel = "public"
	}
	var joined string
	if filepath.IsAbs(publicRel) {
		joined = filepath.Clean(publicRel)
	} else {
		joined = filepath.Join(siteDir, publicRel)
	}
	root, err := filepath.Abs(joined)
	if err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

// FileInfo describes one entry of a directory listing.
type FileInfo struct {
	Path  string `json:"path"` // root-relative, forward slashes
	Size  int64  `json:"size"`
	ETag  string `json:"etag,omitempty"` // sha256:<hex>, files only
	Mod   int64  `json:"mod"`            // unix seconds
	IsDir bool   `json:"is_dir"`
}

func (s *Store) RootAbs() string { return s.root }

func (s *Store) EnsureRoot() error {
	return os.MkdirAll(s.root, 0o755)
}

// Read returns bytes + etag.
func (s *Store) Read(ctx context.Context, rel string) ([]byte, string, error) {
	abs, err := s.cleanAbs(rel)
	if err != nil {
		return nil, "", err
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return b, etagBytes(b), nil
}

// Stat reports whether rel exists and whether it is a directory.
func (s *Store) Stat(ctx context.Context, rel string) (isDir bool, err error) {
	abs, err := s.cleanAbs(rel)
	if err != nil {
		return false, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, ErrNotFound
		}
		return false, err
	}
	return st.IsDir(), nil
}

// List returns the direct entries of a directory.
func (s *Store) List(ctx context.Context, relDir string) ([]FileInfo, error) {
	absDir, err := s.cleanAbs(relDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	out := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return nil, err
		}

		rel := filepath.ToSlash(filepath.Join(relDir, e.Name()))
		fi := FileInfo{
			Path:  strings.TrimPrefix(rel, "/"),
			Size:  info.Size(),
			Mod:   info.ModTime().Unix(),
			IsDir: info.IsDir(),
		}

		if !fi.IsDir {
			b, err := os.ReadFile(filepath.Join(absDir, e.Name()))
			if err == nil {
				fi.ETag = etagBytes(b)
			}
		}
		out = append(out, fi)
	}
	return out, nil
}

// Version hashes every served file (path + content) into a short aggregate
// content version. Hidden files and directories are skipped. The version
// feeds the service-worker cache name, so any content change retires the
// old cache on the next worker activation.
func (s *Store) Version(ctx context.Context) (string, error) {
	h := sha256.New()

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, os.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && p != s.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		io.WriteString(h, filepath.ToSlash(rel))
		h.Write([]byte{0})

		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		h.Write(b)
		h.Write([]byte{0})
		return nil
	})
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil))[:12], nil
}

// --- safety boundary ---

func (s *Store) cleanAbs(rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	rel = strings.TrimPrefix(rel, "/")
	rel = filepath.FromSlash(rel)

	abs := filepath.Clean(filepath.Join(s.root, rel))

	rootClean := filepath.Clean(s.root)
	rootPrefix := rootClean + string(filepath.Separator)
	if abs != rootClean && !strings.HasPrefix(abs, rootPrefix) {
		return "", ErrOutsideRoot
	}

	// prevent symlink escape on existing paths
	if p, err := filepath.EvalSymlinks(abs); err == nil {
		if p != rootClean && !strings.HasPrefix(p, rootPrefix) {
			return "", ErrOutsideRoot
		}
	}

	return abs, nil
}

func etagBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(sum[:])
}
