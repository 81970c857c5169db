package types

import (
	"io/fs"
)

// FS is the filesystem interface required for malt operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Readlink(name string) (string, error)

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// DescriptorResolver resolves a package name to its descriptor.
// Implementations return a NOT_FOUND coded error when the name does not
// resolve; the caller decides whether that is fatal.
type DescriptorResolver interface {
	// Resolve loads the descriptor for name, pinned to spec when spec is
	// not SpecNone.
	Resolve(name string, spec VersionSpec) (*Descriptor, error)
}

// KegLayout enumerates the installed-package directory layout.
type KegLayout interface {
	// Rack returns the top-level installed-versions directory for a name.
	Rack(name string) string

	// Subdirs returns the version subdirectories of a rack, in lexical
	// order. An empty slice means nothing is installed.
	Subdirs(rack string) ([]string, error)

	// OptPrefix returns the path of the opt symlink for a name. The link
	// may not exist; callers probe it.
	OptPrefix(name string) string

	// LinkedKeg returns the path of the linked-keg symlink for a name.
	LinkedKeg(name string) string
}

// Suggester produces a human-readable "did you mean" hint for an unknown
// name, or "" when it has nothing plausible to offer.
type Suggester interface {
	Suggest(name string) string
}
