package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrShortBody   = errors.New("unexpected body length")
)

// File is one entry of the library directory.
type File struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// Library is a flat directory of book files.
type Library struct {
	Dir string
}

// List returns the visible files, sorted by name.
func (l Library) List() ([]File, error) {
	entries, err := os.ReadDir(l.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{Name: name, Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Path returns the full path of name, or ErrInvalidName if name escapes the library.
func (l Library) Path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(l.Dir, name), nil
}

// Save streams exactly size bytes from src into name. A partial upload is removed.
func (l Library) Save(name string, src io.Reader, size int64) error {
	target, err := l.Path(SanitizeFilename(name))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(l.Dir, ".upload-"+strconv.FormatInt(time.Now().UnixNano(), 10))
	if err := writeStreamToFile(tmp, src, size); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, target)
}

func (l Library) Delete(name string) error {
	target, err := l.Path(name)
	if err != nil {
		return err
	}
	return os.Remove(target)
}

// SanitizeFilename flattens path separators and parent references.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	return strings.TrimLeft(name, ".")
}

func writeStreamToFile(targetPath string, src io.Reader, expectedBytes int64) error {
	f, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	written, err := io.Copy(f, io.LimitReader(src, expectedBytes))
	if err != nil {
		return err
	}
	if written != expectedBytes {
		return fmt.Errorf("%w: written=%d expected=%d", ErrShortBody, written, expectedBytes)
	}
	return f.Sync()
}

// HumanSize formats a byte count for list values, e.g. "1.4 MB".
func HumanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
