// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// DefaultBackgroundFolder is the reserved folder holding noise clips.
const DefaultBackgroundFolder = ".background"

// Catalog enumerates a dataset laid out as one folder per class.
// All listings are sorted.
type Catalog interface {
	// ClassFolders lists class folder names, reserved folders excluded.
	ClassFolders() ([]string, error)
	// BackgroundFiles lists the paths of the background clips.
	BackgroundFiles() ([]string, error)
	// Files lists the audio file paths inside a class folder.
	Files(folder string) ([]string, error)
}

// AudioFilter decides which file names count as audio.
type AudioFilter interface {
	Supports(path string) bool
}

// DirCatalog reads a dataset directory through an afero filesystem.
type DirCatalog struct {
	fs         afero.Fs
	root       string
	background string
	filter     AudioFilter
}

// NewDirCatalog lists root on fs. Files are kept when filter supports
// their extension.
func NewDirCatalog(fsys afero.Fs, root, backgroundFolder string, filter AudioFilter) *DirCatalog {
	if backgroundFolder == "" {
		backgroundFolder = DefaultBackgroundFolder
	}

	return &DirCatalog{
		fs:         fsys,
		root:       root,
		background: backgroundFolder,
		filter:     filter,
	}
}

func (c *DirCatalog) ClassFolders() ([]string, error) {
	entries, err := afero.ReadDir(c.fs, c.root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.root, err)
	}

	var folders []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") && e.Name() != c.background {
			folders = append(folders, e.Name())
		}
	}
	slices.Sort(folders)

	return folders, nil
}

// BackgroundFiles returns no paths when the background folder is absent.
func (c *DirCatalog) BackgroundFiles() ([]string, error) {
	files, err := c.audioFiles(c.background)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	return files, err
}

func (c *DirCatalog) Files(folder string) ([]string, error) {
	return c.audioFiles(folder)
}

func (c *DirCatalog) audioFiles(folder string) ([]string, error) {
	dir := filepath.Join(c.root, folder)
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !c.filter.Supports(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)

	return files, nil
}
