// Package keg resolves a package name to exactly one installed keg
// directory. Resolution is a fixed priority chain: opt symlink, linked
// symlink, sole version directory, descriptor-derived prefix. When the
// chain cannot single out one keg, resolution fails; it never guesses.
package keg

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maltpkg/malt/pkg/errors"
	"github.com/maltpkg/malt/pkg/logging"
	"github.com/maltpkg/malt/pkg/types"
)

// Resolver maps package names to installed keg directories.
type Resolver struct {
	layout types.KegLayout
	desc   types.DescriptorResolver
	sugg   types.Suggester
	fs     types.FS
	logger zerolog.Logger

	// cache holds resolved kegs per name for the process lifetime.
	cache map[string]types.KegRef
}

// NewResolver builds a keg resolver. desc and sugg may be nil; without
// them the descriptor-prefix strategy and suggestions are skipped.
func NewResolver(layout types.KegLayout, desc types.DescriptorResolver, sugg types.Suggester, fs types.FS) *Resolver {
	return &Resolver{
		layout: layout,
		desc:   desc,
		sugg:   sugg,
		fs:     fs,
		logger: logging.GetLogger("keg.resolver"),
		cache:  make(map[string]types.KegRef),
	}
}

// strategy is one step of the disambiguation chain. It reports the keg
// path and whether it applied; an inapplicable strategy passes control
// to the next one.
type strategy struct {
	name  string
	probe func(r *Resolver, name, rack string, subdirs []string) (string, bool)
}

// strategies is the fixed priority chain. Order is behavior: the first
// applicable strategy wins.
var strategies = []strategy{
	{name: "opt-symlink", probe: probeOptSymlink},
	{name: "linked-symlink", probe: probeLinkedSymlink},
	{name: "single-keg", probe: probeSingleKeg},
	{name: "descriptor-prefix", probe: probeDescriptorPrefix},
}

// Resolve maps one normalized name to its installed keg. Results are
// cached; repeated calls return the identical handle.
func (r *Resolver) Resolve(name string) (types.KegRef, error) {
	if name == "" {
		return types.KegRef{}, errors.New(errors.ErrUsage, "this command requires a keg name, not an empty argument")
	}
	if strings.ContainsRune(name, '/') || r.isFile(name) {
		return types.KegRef{}, errors.Newf(errors.ErrUsage, "%q is a path, not an installed keg name", name).
			WithDetail("name", name)
	}

	if ref, hit := r.cache[name]; hit {
		return ref, nil
	}

	rack := r.layout.Rack(name)
	subdirs, err := r.layout.Subdirs(rack)
	if err != nil {
		return types.KegRef{}, err
	}
	if len(subdirs) == 0 {
		return types.KegRef{}, r.notInstalled(name, rack)
	}

	for _, s := range strategies {
		if path, ok := s.probe(r, name, rack, subdirs); ok {
			r.logger.Debug().
				Str("name", name).
				Str("keg", path).
				Str("strategy", s.name).
				Msg("Resolved keg")
			ref := types.KegRef{Name: name, Path: path}
			r.cache[name] = ref
			return ref, nil
		}
	}

	return types.KegRef{}, errors.Newf(errors.ErrKegAmbiguous,
		"multiple kegs installed for %s and none is linked; remove all but one and retry", name).
		WithDetail("name", name).
		WithDetail("rack", rack).
		WithDetail("kegs", subdirs)
}

func (r *Resolver) notInstalled(name, rack string) error {
	err := errors.Newf(errors.ErrKegNotFound, "no such keg: %s", name).
		WithDetail("name", name).
		WithDetail("rack", rack)
	if r.sugg != nil {
		if hint := r.sugg.Suggest(name); hint != "" {
			r.logger.Info().Str("name", name).Str("suggestion", hint).Msg("Suggesting alternative")
			err = err.WithDetail("suggestion", hint)
		}
	}
	return err
}

func probeOptSymlink(r *Resolver, name, rack string, subdirs []string) (string, bool) {
	return r.probeLink(r.layout.OptPrefix(name))
}

func probeLinkedSymlink(r *Resolver, name, rack string, subdirs []string) (string, bool) {
	return r.probeLink(r.layout.LinkedKeg(name))
}

func probeSingleKeg(r *Resolver, name, rack string, subdirs []string) (string, bool) {
	if len(subdirs) == 1 {
		return subdirs[0], true
	}
	return "", false
}

// probeDescriptorPrefix consults the package descriptor and uses its
// currently-installed prefix when that directory exists. An
// unavailable descriptor just means the strategy does not apply.
func probeDescriptorPrefix(r *Resolver, name, rack string, subdirs []string) (string, bool) {
	if r.desc == nil {
		return "", false
	}
	d, err := r.desc.Resolve(name, types.SpecNone)
	if err != nil {
		r.logger.Debug().Str("name", name).Err(err).Msg("Descriptor unavailable, cannot disambiguate")
		return "", false
	}
	for _, spec := range []types.VersionSpec{types.SpecStable, types.SpecHead, types.SpecDevel} {
		version := d.Version(spec)
		if version == "" {
			continue
		}
		prefix := filepath.Join(rack, version)
		if r.isDir(prefix) {
			return prefix, true
		}
	}
	return "", false
}

// probeLink resolves a symlink and accepts it only when the target is
// a real directory.
func (r *Resolver) probeLink(link string) (string, bool) {
	target, err := r.fs.Readlink(link)
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	if !r.isDir(target) {
		return "", false
	}
	return target, true
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.fs.Lstat(path)
	return err == nil && !info.IsDir()
}
