package malt

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/maltpkg/malt/internal/version"
	"github.com/maltpkg/malt/pkg/cellar"
	"github.com/maltpkg/malt/pkg/cli"
	"github.com/maltpkg/malt/pkg/config"
	"github.com/maltpkg/malt/pkg/filesystem"
	"github.com/maltpkg/malt/pkg/formulary"
	"github.com/maltpkg/malt/pkg/keg"
	"github.com/maltpkg/malt/pkg/logging"
	"github.com/maltpkg/malt/pkg/resolve"
	"github.com/maltpkg/malt/pkg/suggest"
	"github.com/maltpkg/malt/pkg/types"
)

var verbosity int

// NewRootCmd builds the malt command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "malt",
		Short: MsgRootShort,
		Long:  MsgRootLong,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newKegsCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("malt version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

// env is the wired-up resolution environment of one invocation.
type env struct {
	cfg *config.Settings
	ctx *resolve.Context
}

// buildEnv wires configuration, collaborators, and the resolution
// context for a command. The option table freezes here: the cobra
// flag set is the external parser, and handing its result over is the
// one-way unparsed-to-parsed transition.
func buildEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	fs := filesystem.NewOS()
	layout := cellar.New(cfg.Paths.Prefix, cfg.Paths.Cellar, fs)
	taps := formulary.New(cfg.Paths.Taps, cfg.Taps.Default, fs)
	suggester := suggest.New(taps.AllNames(), layout.RackNames())
	kegs := keg.NewResolver(layout, taps, suggester, fs)

	args := cli.NewArgs(cli.Capture(invocationTokens(cmd)), fs, cfg.Names.ArchiveSuffixes)

	table, err := cli.TableFromFlagSet(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := args.CompleteParse(table); err != nil {
		return nil, err
	}

	ctx, err := resolve.NewContext(args, taps, kegs, cfg.Names.CaskPattern, types.SpecStable)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, ctx: ctx}, nil
}

// invocationTokens captures the raw argument vector for this command,
// with the subcommand token itself stripped.
func invocationTokens(cmd *cobra.Command) []string {
	raw := os.Args[1:]
	var tokens []string
	stripped := false
	for _, tok := range raw {
		if !stripped && tok == cmd.Name() {
			stripped = true
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
