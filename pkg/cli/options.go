package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/maltpkg/malt/pkg/errors"
)

// OptionKind is the value kind of a recognized option.
type OptionKind int

const (
	BoolOption OptionKind = iota
	StringOption
	ListOption
)

// OptionDef describes one recognized option. The set of definitions is
// closed: unknown flags are never readable through the option table,
// only through the passthrough view.
type OptionDef struct {
	Long  string // canonical long name, without dashes
	Short string // optional single-letter alias, without dash
	Kind  OptionKind
	Usage string
}

// Spellings returns the literal command-line spellings of the option,
// long form first.
func (d OptionDef) Spellings() []string {
	spellings := []string{"--" + d.Long}
	if d.Short != "" {
		spellings = append(spellings, "-"+d.Short)
	}
	return spellings
}

// Options returns the closed set of options malt recognizes, in
// definition order.
func Options() []OptionDef {
	return []OptionDef{
		{Long: "HEAD", Kind: BoolOption, Usage: "Install the latest-source (head) channel"},
		{Long: "devel", Kind: BoolOption, Usage: "Install the development-branch channel"},
		{Long: "universal", Kind: BoolOption, Usage: "Build a universal binary"},
		{Long: "build-bottle", Kind: BoolOption, Usage: "Build a bottle-ready keg"},
		{Long: "build-from-source", Short: "s", Kind: BoolOption, Usage: "Compile from source even if a bottle exists"},
		{Long: "force", Kind: BoolOption, Usage: "Override safety checks"},
		{Long: "debug", Short: "d", Kind: BoolOption, Usage: "Open an interactive shell on build failure"},
		{Long: "quiet", Short: "q", Kind: BoolOption, Usage: "Suppress informational output"},
		{Long: "dry-run", Kind: BoolOption, Usage: "Show what would be done without doing it"},
		{Long: "ignore-dependencies", Kind: BoolOption, Usage: "Skip dependency resolution"},
		{Long: "cask", Kind: BoolOption, Usage: "Treat named arguments as casks"},
		{Long: "formula", Kind: BoolOption, Usage: "Treat named arguments as formulae"},
		{Long: "cc", Kind: StringOption, Usage: "Compiler to use for source builds"},
		{Long: "env", Kind: StringOption, Usage: "Build environment to apply (std or super)"},
		{Long: "with", Kind: ListOption, Usage: "Optional features to enable"},
		{Long: "without", Kind: ListOption, Usage: "Default features to disable"},
	}
}

var optionIndex = func() map[string]OptionDef {
	index := make(map[string]OptionDef, len(Options()))
	for _, def := range Options() {
		index[def.Long] = def
	}
	return index
}()

// LookupOption returns the definition of a recognized option.
func LookupOption(long string) (OptionDef, bool) {
	def, ok := optionIndex[long]
	return def, ok
}

// recognizedToken reports whether a raw option token spells a
// recognized flag, in plain or =value form.
func recognizedToken(tok string) bool {
	name := strings.TrimPrefix(tok, "-")
	name = strings.TrimPrefix(name, "-")
	if eq := strings.IndexByte(name, '='); eq >= 0 {
		name = name[:eq]
	}
	if strings.HasPrefix(tok, "--") {
		_, ok := optionIndex[name]
		return ok
	}
	for _, def := range Options() {
		if def.Short != "" && def.Short == name {
			return true
		}
	}
	return false
}

// OptionTable is the frozen result of structured flag parsing. It is
// built exactly once by a TableBuilder and never mutated afterwards.
type OptionTable struct {
	bools     map[string]bool
	strings   map[string]string
	lists     map[string][]string
	remainder []string
}

// Bool returns the value of a boolean option, false when unset.
func (t *OptionTable) Bool(long string) bool {
	return t.bools[long]
}

// Str returns the value of a string option, "" when unset.
func (t *OptionTable) Str(long string) string {
	return t.strings[long]
}

// List returns a copy of the values of a list option, nil when unset.
func (t *OptionTable) List(long string) []string {
	values := t.lists[long]
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Remainder returns a copy of the non-flag arguments left over after
// parsing, in command-line order.
func (t *OptionTable) Remainder() []string {
	out := make([]string, len(t.remainder))
	copy(out, t.remainder)
	return out
}

// TableBuilder accumulates parsed option values and freezes them into
// an immutable OptionTable. A builder is single-use.
type TableBuilder struct {
	table  *OptionTable
	frozen bool
}

// NewTableBuilder returns an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{
		table: &OptionTable{
			bools:   make(map[string]bool),
			strings: make(map[string]string),
			lists:   make(map[string][]string),
		},
	}
}

func (b *TableBuilder) set(long string, kind OptionKind) error {
	if b.frozen {
		return errors.New(errors.ErrInternal, "option table is frozen")
	}
	def, ok := optionIndex[long]
	if !ok {
		return errors.Newf(errors.ErrInvalidInput, "unrecognized option %q", long)
	}
	if def.Kind != kind {
		return errors.Newf(errors.ErrInvalidInput, "option %q has a different value kind", long)
	}
	return nil
}

// SetBool records a boolean option value.
func (b *TableBuilder) SetBool(long string, value bool) error {
	if err := b.set(long, BoolOption); err != nil {
		return err
	}
	b.table.bools[long] = value
	return nil
}

// SetString records a string option value.
func (b *TableBuilder) SetString(long, value string) error {
	if err := b.set(long, StringOption); err != nil {
		return err
	}
	b.table.strings[long] = value
	return nil
}

// SetList records a list option value.
func (b *TableBuilder) SetList(long string, values []string) error {
	if err := b.set(long, ListOption); err != nil {
		return err
	}
	copied := make([]string, len(values))
	copy(copied, values)
	b.table.lists[long] = copied
	return nil
}

// SetRemainder records the non-flag arguments left over after parsing.
func (b *TableBuilder) SetRemainder(args []string) error {
	if b.frozen {
		return errors.New(errors.ErrInternal, "option table is frozen")
	}
	copied := make([]string, len(args))
	copy(copied, args)
	b.table.remainder = copied
	return nil
}

// Freeze seals the table. The builder is unusable afterwards.
func (b *TableBuilder) Freeze() *OptionTable {
	b.frozen = true
	table := b.table
	b.table = nil
	return table
}

// BindOptions registers every recognized option on a pflag set, so an
// external cobra command can parse them.
func BindOptions(flags *pflag.FlagSet) {
	for _, def := range Options() {
		switch def.Kind {
		case BoolOption:
			flags.BoolP(def.Long, def.Short, false, def.Usage)
		case StringOption:
			flags.StringP(def.Long, def.Short, "", def.Usage)
		case ListOption:
			flags.StringSliceP(def.Long, def.Short, nil, def.Usage)
		}
	}
}

// TableFromFlagSet builds a frozen option table from a parsed pflag
// set. This is the single point where the external parser's result
// enters the resolution layer.
func TableFromFlagSet(flags *pflag.FlagSet) (*OptionTable, error) {
	builder := NewTableBuilder()
	for _, def := range Options() {
		switch def.Kind {
		case BoolOption:
			value, err := flags.GetBool(def.Long)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInternal, "reading flag --%s", def.Long)
			}
			if err := builder.SetBool(def.Long, value); err != nil {
				return nil, err
			}
		case StringOption:
			value, err := flags.GetString(def.Long)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInternal, "reading flag --%s", def.Long)
			}
			if err := builder.SetString(def.Long, value); err != nil {
				return nil, err
			}
		case ListOption:
			values, err := flags.GetStringSlice(def.Long)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInternal, "reading flag --%s", def.Long)
			}
			if err := builder.SetList(def.Long, values); err != nil {
				return nil, err
			}
		}
	}
	if err := builder.SetRemainder(flags.Args()); err != nil {
		return nil, err
	}
	return builder.Freeze(), nil
}
