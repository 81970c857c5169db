// Package resolve turns normalized named arguments into package
// references (casks and formulae) and installed kegs. All results are
// computed lazily on first access and cached for the process lifetime.
package resolve

import (
	"regexp"

	"github.com/rs/zerolog"

	"github.com/maltpkg/malt/pkg/cli"
	"github.com/maltpkg/malt/pkg/errors"
	"github.com/maltpkg/malt/pkg/keg"
	"github.com/maltpkg/malt/pkg/logging"
	"github.com/maltpkg/malt/pkg/types"
)

// Context resolves one invocation's named arguments. It owns the
// memoized derived collections; none of them is ever recomputed.
type Context struct {
	args   *cli.Args
	desc   types.DescriptorResolver
	kegs   *keg.Resolver
	caskRE *regexp.Regexp

	// defaultSpec is the channel used by strict resolution when
	// neither --HEAD nor --devel was requested.
	defaultSpec types.VersionSpec

	logger zerolog.Logger

	refs       []types.PackageReference
	refsErr    error
	refsDone   bool
	pinned     []types.PackageReference
	pinnedErr  error
	pinnedDone bool
	kegList    []types.KegRef
	kegErr     error
	kegDone    bool
}

// NewContext wires a resolution context. caskPattern is the fixed
// pattern identifying cask-style names.
func NewContext(args *cli.Args, desc types.DescriptorResolver, kegs *keg.Resolver, caskPattern string, defaultSpec types.VersionSpec) (*Context, error) {
	caskRE, err := regexp.Compile(caskPattern)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid cask name pattern").
			WithDetail("pattern", caskPattern)
	}
	return &Context{
		args:        args,
		desc:        desc,
		kegs:        kegs,
		caskRE:      caskRE,
		defaultSpec: defaultSpec,
		logger:      logging.GetLogger("resolve"),
	}, nil
}

// Args exposes the underlying argument context.
func (c *Context) Args() *cli.Args {
	return c.args
}

// Spec is the version channel in effect for this context.
func (c *Context) Spec() types.VersionSpec {
	return c.args.Spec(c.defaultSpec)
}

// IsCaskName reports whether a normalized name matches the cask
// naming pattern.
func (c *Context) IsCaskName(name string) bool {
	return c.caskRE.MatchString(name)
}

// References resolves every named argument in lightweight mode: the
// descriptors load without pinning a version channel. Deduplicated by
// canonical name, first occurrence wins.
func (c *Context) References() ([]types.PackageReference, error) {
	if !c.refsDone {
		c.refs, c.refsErr = c.resolveAll(types.SpecNone)
		c.refsDone = true
	}
	return c.refs, c.refsErr
}

// PinnedReferences resolves every named argument in strict mode,
// pinning each descriptor to the version channel in effect.
func (c *Context) PinnedReferences() ([]types.PackageReference, error) {
	if !c.pinnedDone {
		c.pinned, c.pinnedErr = c.resolveAll(c.Spec())
		c.pinnedDone = true
	}
	return c.pinned, c.pinnedErr
}

func (c *Context) resolveAll(spec types.VersionSpec) ([]types.PackageReference, error) {
	named := c.args.Named()
	seen := make(map[string]struct{}, len(named))
	refs := make([]types.PackageReference, 0, len(named))

	for _, name := range named {
		if name == "" {
			return nil, errors.New(errors.ErrUsage, "empty package name")
		}

		d, err := c.desc.Resolve(name, spec)
		if err != nil {
			// Unresolvable names surface to the caller untouched.
			return nil, err
		}

		kind := d.Kind
		if c.IsCaskName(name) {
			kind = types.CaskRef
		}

		canonical := d.FullName()
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}

		refs = append(refs, types.PackageReference{
			Kind:       kind,
			Name:       d.Name,
			Descriptor: d,
		})
	}

	c.logger.Debug().
		Int("named", len(named)).
		Int("resolved", len(refs)).
		Str("spec", spec.String()).
		Msg("Resolved package references")

	return refs, nil
}

// Formulae returns the formula references among References.
func (c *Context) Formulae() ([]types.PackageReference, error) {
	return c.filtered(types.FormulaRef)
}

// Casks returns the cask references among References.
func (c *Context) Casks() ([]types.PackageReference, error) {
	return c.filtered(types.CaskRef)
}

func (c *Context) filtered(kind types.RefKind) ([]types.PackageReference, error) {
	refs, err := c.References()
	if err != nil {
		return nil, err
	}
	var out []types.PackageReference
	for _, ref := range refs {
		if ref.Kind == kind {
			out = append(out, ref)
		}
	}
	return out, nil
}

// FormulaPaths returns the descriptor file path of every formula
// reference, in reference order.
func (c *Context) FormulaPaths() ([]string, error) {
	formulae, err := c.Formulae()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(formulae))
	for i, ref := range formulae {
		paths[i] = ref.Descriptor.Path
	}
	return paths, nil
}

// Kegs resolves every non-cask named argument to exactly one installed
// keg. Any name failing to resolve fails the whole call.
func (c *Context) Kegs() ([]types.KegRef, error) {
	if !c.kegDone {
		c.kegList, c.kegErr = c.resolveKegs()
		c.kegDone = true
	}
	return c.kegList, c.kegErr
}

func (c *Context) resolveKegs() ([]types.KegRef, error) {
	var out []types.KegRef
	for _, name := range c.args.Named() {
		if c.IsCaskName(name) {
			continue
		}
		ref, err := c.kegs.Resolve(name)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}
