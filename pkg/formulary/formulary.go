// Package formulary resolves package names to descriptors. Descriptors
// are TOML documents living in taps (Formula/ for formulae, Casks/ for
// casks) or loaded directly from a file path.
package formulary

import (
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/maltpkg/malt/pkg/errors"
	"github.com/maltpkg/malt/pkg/logging"
	"github.com/maltpkg/malt/pkg/types"
)

const descriptorExt = ".toml"

// Formulary looks descriptors up across the installed taps.
type Formulary struct {
	tapsDir    string
	defaultTap string
	fs         types.FS
	logger     zerolog.Logger
}

// New builds a formulary over the given taps directory. defaultTap is
// the "user/repo" tap searched first for bare names.
func New(tapsDir, defaultTap string, fs types.FS) *Formulary {
	return &Formulary{
		tapsDir:    tapsDir,
		defaultTap: defaultTap,
		fs:         fs,
		logger:     logging.GetLogger("formulary"),
	}
}

// Resolve implements types.DescriptorResolver.
//
// Names ending in the descriptor extension, or matching an existing
// file, load by direct path. Tap-qualified names (user/repo/name) load
// from that tap only. Bare names search the default tap first (an
// exact tap match wins outright), then every other tap; a bare name
// matching in more than one tap is ambiguous and never tie-broken.
func (f *Formulary) Resolve(name string, spec types.VersionSpec) (*types.Descriptor, error) {
	if name == "" {
		return nil, errors.New(errors.ErrUsage, "empty package name")
	}

	if strings.HasSuffix(name, descriptorExt) || f.exists(name) {
		return f.loadPath(name, spec)
	}

	parts := strings.Split(name, "/")
	switch len(parts) {
	case 1:
		return f.resolveBare(name, spec)
	case 3:
		tap := parts[0] + "/" + parts[1]
		return f.resolveInTap(tap, parts[2], spec)
	default:
		return nil, errors.Newf(errors.ErrFormulaUnavailable, "invalid package name %q", name).
			WithDetail("name", name)
	}
}

func (f *Formulary) resolveBare(name string, spec types.VersionSpec) (*types.Descriptor, error) {
	if candidate, ok := f.findInTap(f.defaultTap, name); ok {
		return f.loadTapped(candidate, spec)
	}

	matches := f.findAcrossTaps(name)
	switch len(matches) {
	case 0:
		return nil, errors.Newf(errors.ErrFormulaUnavailable, "no available formula or cask named %q", name).
			WithDetail("name", name)
	case 1:
		return f.loadTapped(matches[0], spec)
	default:
		taps := make([]string, len(matches))
		for i, m := range matches {
			taps[i] = m.tap
		}
		return nil, errors.Newf(errors.ErrFormulaAmbiguous, "%q is provided by multiple taps", name).
			WithDetail("name", name).
			WithDetail("taps", taps)
	}
}

// tappedPath locates one descriptor inside one tap.
type tappedPath struct {
	tap  string
	kind types.RefKind
	path string
}

func (f *Formulary) resolveInTap(tap, name string, spec types.VersionSpec) (*types.Descriptor, error) {
	if candidate, ok := f.findInTap(tap, name); ok {
		return f.loadTapped(candidate, spec)
	}
	return nil, errors.Newf(errors.ErrFormulaUnavailable, "no formula or cask %q in tap %s", name, tap).
		WithDetail("name", name).
		WithDetail("tap", tap)
}

// findInTap probes one tap for a name without loading anything.
func (f *Formulary) findInTap(tap, name string) (tappedPath, bool) {
	for _, candidate := range f.tapCandidates(tap, name) {
		if f.exists(candidate.path) {
			return candidate, true
		}
	}
	return tappedPath{}, false
}

func (f *Formulary) tapCandidates(tap, name string) []tappedPath {
	tapDir := filepath.Join(f.tapsDir, filepath.FromSlash(tap))
	return []tappedPath{
		{tap: tap, kind: types.FormulaRef, path: filepath.Join(tapDir, "Formula", name+descriptorExt)},
		{tap: tap, kind: types.CaskRef, path: filepath.Join(tapDir, "Casks", name+descriptorExt)},
	}
}

// findAcrossTaps returns every tap providing a bare name, in lexical
// tap order, the default tap excluded (it was already searched).
func (f *Formulary) findAcrossTaps(name string) []tappedPath {
	var matches []tappedPath
	for _, tap := range f.tapNames() {
		if tap == f.defaultTap {
			continue
		}
		if candidate, ok := f.findInTap(tap, name); ok {
			matches = append(matches, candidate)
		}
	}
	return matches
}

func (f *Formulary) loadTapped(candidate tappedPath, spec types.VersionSpec) (*types.Descriptor, error) {
	d, err := f.loadFile(candidate.path, candidate.kind)
	if err != nil {
		return nil, err
	}
	d.Tap = candidate.tap
	return f.pin(d, spec)
}

// loadPath loads a descriptor directly from a file path, bypassing tap
// search entirely.
func (f *Formulary) loadPath(path string, spec types.VersionSpec) (*types.Descriptor, error) {
	kind := types.FormulaRef
	if filepath.Base(filepath.Dir(path)) == "Casks" {
		kind = types.CaskRef
	}
	d, err := f.loadFile(path, kind)
	if err != nil {
		return nil, err
	}
	return f.pin(d, spec)
}

func (f *Formulary) loadFile(path string, kind types.RefKind) (*types.Descriptor, error) {
	data, err := f.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFormulaUnavailable, "cannot read descriptor %s", path).
			WithDetail("path", path)
	}

	var d types.Descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFormulaParse, "malformed descriptor %s", path).
			WithDetail("path", path)
	}

	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), descriptorExt)
	}
	d.Path = path
	d.Kind = kind

	f.logger.Trace().Str("name", d.Name).Str("path", path).Msg("Loaded descriptor")
	return &d, nil
}

// pin fixes the descriptor to the requested channel. SpecNone leaves
// the descriptor unpinned (lightweight mode).
func (f *Formulary) pin(d *types.Descriptor, spec types.VersionSpec) (*types.Descriptor, error) {
	if spec == types.SpecNone {
		return d, nil
	}
	if d.Version(spec) == "" {
		return nil, errors.Newf(errors.ErrFormulaUnavailable, "%s has no %s version", d.Name, spec).
			WithDetail("name", d.Name).
			WithDetail("spec", string(spec))
	}
	d.ActiveSpec = spec
	return d, nil
}

// AllNames returns every bare descriptor name across all taps, sorted
// and deduplicated. Used to seed the suggestion engine.
func (f *Formulary) AllNames() []string {
	seen := make(map[string]struct{})
	for _, tap := range f.tapNames() {
		tapDir := filepath.Join(f.tapsDir, filepath.FromSlash(tap))
		for _, sub := range []string{"Formula", "Casks"} {
			entries, err := f.fs.ReadDir(filepath.Join(tapDir, sub))
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), descriptorExt) {
					continue
				}
				seen[strings.TrimSuffix(entry.Name(), descriptorExt)] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tapNames enumerates installed taps as "user/repo", in lexical order.
func (f *Formulary) tapNames() []string {
	var taps []string
	users, err := f.fs.ReadDir(f.tapsDir)
	if err != nil {
		return nil
	}
	for _, user := range users {
		if !user.IsDir() {
			continue
		}
		repos, err := f.fs.ReadDir(filepath.Join(f.tapsDir, user.Name()))
		if err != nil {
			continue
		}
		for _, repo := range repos {
			if repo.IsDir() {
				taps = append(taps, user.Name()+"/"+repo.Name())
			}
		}
	}
	return taps
}

func (f *Formulary) exists(path string) bool {
	_, err := f.fs.Stat(path)
	return err == nil
}
