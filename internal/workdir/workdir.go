// Package workdir resolves where blogsmith keeps its files and saves
// downloads into it.
package workdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Root returns the base directory for blogsmith files:
//
//	$HOME/Documents/Alkime/Blogsmith
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Alkime", "Blogsmith"), nil
}

// PostsDir is where downloaded posts land unless overridden.
func PostsDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "posts"), nil
}

// ArchiveDir is the default location of the generation archive.
func ArchiveDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "archive"), nil
}

// Prep ensures dir exists.
func Prep(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Saver writes downloads into a directory.
type Saver struct {
	Dir string
}

// NewSaver returns a Saver for dir, falling back to PostsDir when dir is empty.
func NewSaver(dir string) (*Saver, error) {
	if dir == "" {
		var err error
		if dir, err = PostsDir(); err != nil {
			return nil, err
		}
	}
	return &Saver{Dir: dir}, nil
}

// ErrBadFilename is returned for names that cannot be a file in the
// directory.
var ErrBadFilename = errors.New("invalid download filename")

// FileName maps a download name onto a single path element. Path separators
// become hyphens so a topic like "CI/CD" keeps every part of its name.
func FileName(filename string) (string, error) {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return '-'
		}
		return r
	}, filename)

	switch strings.TrimSpace(name) {
	case "", ".", "..":
		return "", fmt.Errorf("%w: %q", ErrBadFilename, filename)
	}

	return name, nil
}

// Path returns where filename is written.
func (s *Saver) Path(filename string) (string, error) {
	name, err := FileName(filename)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, name), nil
}

// Save writes data to filename inside the directory, replacing any file of
// the same name. Only text downloads are accepted.
func (s *Saver) Save(filename, mimeType string, data []byte) error {
	if !strings.HasPrefix(mimeType, "text/") {
		return fmt.Errorf("unsupported download type %q", mimeType)
	}

	path, err := s.Path(filename)
	if err != nil {
		return err
	}

	if err := Prep(s.Dir); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // posts are meant to be readable
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
