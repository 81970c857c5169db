package resolve

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltpkg/malt/pkg/cellar"
	"github.com/maltpkg/malt/pkg/cli"
	"github.com/maltpkg/malt/pkg/errors"
	"github.com/maltpkg/malt/pkg/filesystem"
	"github.com/maltpkg/malt/pkg/formulary"
	"github.com/maltpkg/malt/pkg/keg"
	"github.com/maltpkg/malt/pkg/types"
)

const (
	testPrefix   = "/opt/malt"
	testCellar   = "/opt/malt/Cellar"
	testTaps     = "/opt/malt/Library/Taps"
	caskPattern  = `^caskroom/(cask|versions)/[\w@.+-]+$`
	archiveGlobs = ".tar.gz"
)

type harness struct {
	mem afero.Fs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{mem: afero.NewMemMapFs()}
}

func (h *harness) addFormula(t *testing.T, tap, name, body string) {
	t.Helper()
	path := testTaps + "/" + tap + "/Formula/" + name + ".toml"
	require.NoError(t, afero.WriteFile(h.mem, path, []byte(body), 0644))
}

func (h *harness) addCask(t *testing.T, tap, name, body string) {
	t.Helper()
	path := testTaps + "/" + tap + "/Casks/" + name + ".toml"
	require.NoError(t, afero.WriteFile(h.mem, path, []byte(body), 0644))
}

func (h *harness) addKeg(t *testing.T, name, version string) string {
	t.Helper()
	path := testCellar + "/" + name + "/" + version
	require.NoError(t, h.mem.MkdirAll(path, 0755))
	return path
}

func (h *harness) context(t *testing.T, argv []string) *Context {
	t.Helper()
	fs := filesystem.NewAferoFS(h.mem)
	layout := cellar.New(testPrefix, testCellar, fs)
	taps := formulary.New(testTaps, "malt/core", fs)
	kegs := keg.NewResolver(layout, taps, nil, fs)
	args := cli.NewArgs(cli.Capture(argv), fs, []string{archiveGlobs})

	ctx, err := NewContext(args, taps, kegs, caskPattern, types.SpecStable)
	require.NoError(t, err)
	return ctx
}

const stableOnly = `[versions]
stable = "1.0"
`

const withHead = `[versions]
stable = "1.0"
head = "HEAD"
`

func TestReferencesResolveAndDeduplicate(t *testing.T) {
	h := newHarness(t)
	h.addFormula(t, "malt/core", "wget", withHead)
	h.addFormula(t, "malt/core", "curl", stableOnly)

	ctx := h.context(t, []string{"wget", "Wget", "curl", "wget"})

	refs, err := ctx.References()
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "wget", refs[0].Name)
	assert.Equal(t, "curl", refs[1].Name)
	assert.Equal(t, types.SpecNone, refs[0].Descriptor.ActiveSpec)
}

func TestReferencesDeduplicateByCanonicalName(t *testing.T) {
	h := newHarness(t)
	h.addFormula(t, "malt/core", "wget", stableOnly)

	// Bare and tap-qualified spellings of the same package collapse to
	// the first occurrence.
	ctx := h.context(t, []string{"wget", "malt/core/wget"})

	refs, err := ctx.References()
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "malt/core/wget", refs[0].Descriptor.FullName())
}

func TestReferencesUnresolvableNamePropagates(t *testing.T) {
	h := newHarness(t)

	ctx := h.context(t, []string{"no-such-package"})

	_, err := ctx.References()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFormulaUnavailable))
}

func TestReferencesEmptyNameIsUsageError(t *testing.T) {
	h := newHarness(t)

	ctx := h.context(t, []string{""})

	_, err := ctx.References()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
}

func TestFormulaeAndCasksSplit(t *testing.T) {
	h := newHarness(t)
	h.addFormula(t, "malt/core", "wget", stableOnly)
	h.addCask(t, "caskroom/cask", "firefox", stableOnly)

	ctx := h.context(t, []string{"wget", "caskroom/cask/firefox"})

	formulae, err := ctx.Formulae()
	require.NoError(t, err)
	require.Len(t, formulae, 1)
	assert.Equal(t, "wget", formulae[0].Name)

	casks, err := ctx.Casks()
	require.NoError(t, err)
	require.Len(t, casks, 1)
	assert.Equal(t, "firefox", casks[0].Name)
}

func TestFormulaPaths(t *testing.T) {
	h := newHarness(t)
	h.addFormula(t, "malt/core", "wget", stableOnly)

	ctx := h.context(t, []string{"wget"})

	paths, err := ctx.FormulaPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{testTaps + "/malt/core/Formula/wget.toml"}, paths)
}

func TestPinnedReferencesUseRequestedSpec(t *testing.T) {
	h := newHarness(t)
	h.addFormula(t, "malt/core", "wget", withHead)

	ctx := h.context(t, []string{"--HEAD", "wget"})
	markParsed(t, ctx, map[string]bool{"HEAD": true}, []string{"wget"})

	refs, err := ctx.PinnedReferences()
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, types.SpecHead, refs[0].Descriptor.ActiveSpec)
}

func TestPinnedReferencesMissingChannelFails(t *testing.T) {
	h := newHarness(t)
	h.addFormula(t, "malt/core", "curl", stableOnly)

	ctx := h.context(t, []string{"--HEAD", "curl"})

	_, err := ctx.PinnedReferences()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFormulaUnavailable))
}

func TestSpecDefaultsToStable(t *testing.T) {
	h := newHarness(t)
	ctx := h.context(t, []string{"wget"})
	assert.Equal(t, types.SpecStable, ctx.Spec())
}

func TestKegsSkipCasks(t *testing.T) {
	h := newHarness(t)
	h.addFormula(t, "malt/core", "wget", stableOnly)
	target := h.addKeg(t, "wget", "1.0")

	ctx := h.context(t, []string{"wget", "caskroom/cask/firefox"})

	kegs, err := ctx.Kegs()
	require.NoError(t, err)
	require.Len(t, kegs, 1)
	assert.Equal(t, target, kegs[0].Path)
}

func TestKegsRejectTapQualifiedNames(t *testing.T) {
	h := newHarness(t)
	h.addKeg(t, "wget", "1.0")

	ctx := h.context(t, []string{"malt/core/wget"})

	_, err := ctx.Kegs()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
}

func TestDerivedCollectionsAreMemoized(t *testing.T) {
	h := newHarness(t)
	h.addFormula(t, "malt/core", "wget", stableOnly)
	h.addKeg(t, "wget", "1.0")

	ctx := h.context(t, []string{"wget"})

	refs1, err := ctx.References()
	require.NoError(t, err)
	kegs1, err := ctx.Kegs()
	require.NoError(t, err)

	// Changing the world after the first access must not change the
	// answers.
	h.addFormula(t, "malt/core", "extra", stableOnly)
	h.addKeg(t, "wget", "2.0")

	refs2, err := ctx.References()
	require.NoError(t, err)
	kegs2, err := ctx.Kegs()
	require.NoError(t, err)

	assert.Equal(t, refs1, refs2)
	assert.Equal(t, kegs1, kegs2)
	require.Len(t, kegs2, 1)
}

// markParsed simulates the external parser finishing with the given
// boolean flags set and positional remainder.
func markParsed(t *testing.T, ctx *Context, bools map[string]bool, remainder []string) {
	t.Helper()
	builder := cli.NewTableBuilder()
	for long, value := range bools {
		require.NoError(t, builder.SetBool(long, value))
	}
	require.NoError(t, builder.SetRemainder(remainder))
	require.NoError(t, ctx.Args().CompleteParse(builder.Freeze()))
}
