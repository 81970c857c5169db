package types

import "fmt"

// VersionSpec is the requested version channel of a package.
type VersionSpec string

const (
	// SpecNone means the caller did not request any particular channel.
	SpecNone VersionSpec = ""

	// SpecStable is the released channel.
	SpecStable VersionSpec = "stable"

	// SpecHead is the latest-source channel.
	SpecHead VersionSpec = "head"

	// SpecDevel is the development-branch channel.
	SpecDevel VersionSpec = "devel"
)

// String implements fmt.Stringer
func (s VersionSpec) String() string {
	if s == SpecNone {
		return "(unspecified)"
	}
	return string(s)
}

// RefKind distinguishes formula references from cask references.
type RefKind string

const (
	FormulaRef RefKind = "formula"
	CaskRef    RefKind = "cask"
)

// PackageReference is a classified, resolved reference to one package.
type PackageReference struct {
	Kind RefKind

	// Name is the canonical (bare) package name.
	Name string

	// Descriptor is the loaded descriptor backing this reference.
	Descriptor *Descriptor
}

// Descriptor is the parsed build/install descriptor of one package,
// loaded from a tap or directly from a file path.
type Descriptor struct {
	// Name is the canonical bare name, e.g. "wget".
	Name string `toml:"name"`

	// Tap is the qualified tap the descriptor came from, e.g.
	// "malt/core". Empty for descriptors loaded by direct path.
	Tap string `toml:"-"`

	// Path is the descriptor file the definition was loaded from.
	Path string `toml:"-"`

	// Kind records whether this is a formula or a cask.
	Kind RefKind `toml:"-"`

	// Desc is the one-line description.
	Desc string `toml:"desc"`

	// Homepage is the upstream project URL.
	Homepage string `toml:"homepage"`

	// Versions available per channel. Stable is required for formulae;
	// Head and Devel are optional.
	Versions DescriptorVersions `toml:"versions"`

	// ActiveSpec is the channel this descriptor has been pinned to.
	// SpecNone for descriptors loaded in lightweight mode.
	ActiveSpec VersionSpec `toml:"-"`
}

// DescriptorVersions holds the per-channel version strings of a descriptor.
type DescriptorVersions struct {
	Stable string `toml:"stable"`
	Head   string `toml:"head"`
	Devel  string `toml:"devel"`
}

// FullName returns the tap-qualified name when the descriptor came from a
// tap, the bare name otherwise.
func (d *Descriptor) FullName() string {
	if d.Tap == "" {
		return d.Name
	}
	return fmt.Sprintf("%s/%s", d.Tap, d.Name)
}

// Version returns the version string for the given channel, or "" when
// the descriptor does not define that channel.
func (d *Descriptor) Version(spec VersionSpec) string {
	switch spec {
	case SpecHead:
		return d.Versions.Head
	case SpecDevel:
		return d.Versions.Devel
	default:
		return d.Versions.Stable
	}
}

// KegRef is a resolved handle to one installed, version-specific
// package directory.
type KegRef struct {
	// Name is the bare package name the keg was resolved for.
	Name string

	// Path is the absolute keg directory.
	Path string
}

// String implements fmt.Stringer
func (k KegRef) String() string {
	return fmt.Sprintf("%s (%s)", k.Name, k.Path)
}
