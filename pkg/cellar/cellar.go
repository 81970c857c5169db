// Package cellar knows the on-disk layout of installed packages: one
// rack per package name under the cellar, one keg per installed
// version inside the rack, and the opt / linked symlinks that mark the
// active keg.
package cellar

import (
	"os"
	"path/filepath"

	"github.com/maltpkg/malt/pkg/errors"
	"github.com/maltpkg/malt/pkg/logging"
	"github.com/maltpkg/malt/pkg/types"
)

// Layout implements types.KegLayout for a prefix-rooted installation.
type Layout struct {
	prefix string
	cellar string
	fs     types.FS
}

// New builds a layout for the given installation prefix and cellar
// directory.
func New(prefix, cellar string, fs types.FS) *Layout {
	return &Layout{prefix: prefix, cellar: cellar, fs: fs}
}

// Rack returns the top-level installed-versions directory for a name.
func (l *Layout) Rack(name string) string {
	return filepath.Join(l.cellar, name)
}

// Subdirs returns the version subdirectories of a rack, in lexical
// order. A missing rack yields an empty result, not an error.
func (l *Layout) Subdirs(rack string) ([]string, error) {
	entries, err := l.fs.ReadDir(rack)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read rack").
			WithDetail("rack", rack)
	}

	var subdirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		subdirs = append(subdirs, filepath.Join(rack, entry.Name()))
	}

	logger := logging.GetLogger("cellar")
	logger.Trace().
		Str("rack", rack).
		Int("kegs", len(subdirs)).
		Msg("Enumerated rack")

	return subdirs, nil
}

// OptPrefix returns the path of the opt symlink for a name. The link
// may not exist.
func (l *Layout) OptPrefix(name string) string {
	return filepath.Join(l.prefix, "opt", name)
}

// LinkedKeg returns the path of the linked-keg symlink for a name.
func (l *Layout) LinkedKeg(name string) string {
	return filepath.Join(l.prefix, "var", "malt", "linked", name)
}

// RackNames returns the names of every rack in the cellar, in lexical
// order. Used to seed suggestions for unknown names.
func (l *Layout) RackNames() []string {
	entries, err := l.fs.ReadDir(l.cellar)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}
