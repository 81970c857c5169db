package cli

import (
	"strings"
	"sync/atomic"

	"github.com/maltpkg/malt/pkg/errors"
	"github.com/maltpkg/malt/pkg/logging"
	"github.com/maltpkg/malt/pkg/types"
)

// Args is the resolution context for one invocation. It starts in the
// unparsed state, answering flag queries from a raw scan of the command
// line, and transitions exactly once to the parsed state when the
// external parser hands over the frozen option table. The transition is
// one-way; there is no way back to unparsed.
//
// All derived collections are computed lazily on first access and kept
// for the process lifetime. Args is meant for single-threaded use; only
// the parse-completed transition is guarded.
type Args struct {
	cmdline CommandLine
	scanner Scanner
	fs      types.FS

	// archiveSuffixes are the filename endings that keep a named
	// argument's casing intact.
	archiveSuffixes []string

	table atomic.Pointer[OptionTable]

	// named caches the normalized named arguments. Never invalidated.
	named     []string
	namedDone bool
}

// NewArgs builds a resolution context over a captured command line.
// The filesystem is consulted only to decide whether a named argument
// refers to an existing entry.
func NewArgs(cmdline CommandLine, fs types.FS, archiveSuffixes []string) *Args {
	suffixes := make([]string, len(archiveSuffixes))
	copy(suffixes, archiveSuffixes)
	return &Args{
		cmdline:         cmdline,
		scanner:         NewScanner(cmdline),
		fs:              fs,
		archiveSuffixes: suffixes,
	}
}

// Parsed reports whether structured parsing has completed.
func (a *Args) Parsed() bool {
	return a.table.Load() != nil
}

// CompleteParse installs the frozen option table, transitioning the
// context to the parsed state. It fails if called twice.
func (a *Args) CompleteParse(table *OptionTable) error {
	if table == nil {
		return errors.New(errors.ErrInternal, "nil option table")
	}
	if !a.table.CompareAndSwap(nil, table) {
		return errors.New(errors.ErrInternal, "parse already completed")
	}
	logger := logging.GetLogger("cli.args")
	logger.Trace().Msg("Option table frozen, context is now parsed")
	return nil
}

// Flag reports whether the given recognized boolean option was
// requested. After parsing the frozen table is authoritative; before,
// the raw command line is scanned for the option's spellings.
func (a *Args) Flag(long string) bool {
	def, ok := LookupOption(long)
	if !ok || def.Kind != BoolOption {
		return false
	}
	if table := a.table.Load(); table != nil {
		return table.Bool(long)
	}
	return a.scanner.FlagRequested(def.Spellings()...)
}

// Value returns the value of a recognized string option. Pre-parse,
// only the inline --flag=value spelling is visible.
func (a *Args) Value(long string) (string, bool) {
	if table := a.table.Load(); table != nil {
		value := table.Str(long)
		return value, value != ""
	}
	def, ok := LookupOption(long)
	if !ok {
		return "", false
	}
	return a.scanner.ValueOf("--" + def.Long)
}

// Values returns the values of a recognized list option.
func (a *Args) Values(long string) []string {
	if table := a.table.Load(); table != nil {
		return table.List(long)
	}
	def, ok := LookupOption(long)
	if !ok {
		return nil
	}
	return a.scanner.ValuesOf("--" + def.Long)
}

// Named returns the deduplicated, ordered named (non-flag) arguments
// with casing rules applied. The result is computed once and cached.
//
// A name keeps its casing when it contains a path separator, ends in a
// known archive suffix, or matches an existing filesystem entry;
// every other name is lowercased. Duplicates keep their first
// occurrence.
func (a *Args) Named() []string {
	if !a.namedDone {
		a.named = a.normalizeNamed(a.rawNamed())
		a.namedDone = true
	}
	out := make([]string, len(a.named))
	copy(out, a.named)
	return out
}

// rawNamed is the source token list for Named: the post-parse
// remainder when available, a raw positional scan otherwise.
func (a *Args) rawNamed() []string {
	if table := a.table.Load(); table != nil {
		return table.Remainder()
	}
	return a.scanner.Positionals()
}

func (a *Args) normalizeNamed(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		name := tok
		if !a.preservesCase(name) {
			name = strings.ToLower(name)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// preservesCase reports whether a named argument's casing is
// semantically significant: paths, archives, and existing files keep
// it, bare package names do not.
func (a *Args) preservesCase(name string) bool {
	if strings.ContainsRune(name, '/') {
		return true
	}
	for _, suffix := range a.archiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	if name == "" {
		return false
	}
	if _, err := a.fs.Lstat(name); err == nil {
		return true
	}
	return false
}

// Raw returns the full captured argument vector.
func (a *Args) Raw() []string {
	return a.cmdline.Tokens()
}

// OptionsOnly returns every raw token that starts with a flag prefix.
func (a *Args) OptionsOnly() []string {
	var out []string
	for _, tok := range a.cmdline.Tokens() {
		if strings.HasPrefix(tok, "-") {
			out = append(out, tok)
		}
	}
	return out
}

// FlagsOnly returns every raw token that starts with a long-flag
// prefix.
func (a *Args) FlagsOnly() []string {
	var out []string
	for _, tok := range a.cmdline.Tokens() {
		if strings.HasPrefix(tok, "--") {
			out = append(out, tok)
		}
	}
	return out
}

// Passthrough returns the option tokens that are not globally
// recognized, for forwarding to a sub-invocation.
func (a *Args) Passthrough() []string {
	var out []string
	for _, tok := range a.cmdline.Tokens() {
		if strings.HasPrefix(tok, "-") && !recognizedToken(tok) {
			out = append(out, tok)
		}
	}
	return out
}
