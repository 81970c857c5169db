package malt

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maltpkg/malt/pkg/cli"
	"github.com/maltpkg/malt/pkg/errors"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [package...]",
		Short: MsgInfoShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(cmd)
			if err != nil {
				return err
			}

			refs, err := e.ctx.References()
			if err != nil {
				return describeResolutionError(err)
			}
			if len(refs) == 0 {
				fmt.Println(MsgNoNames)
				return nil
			}

			for _, ref := range refs {
				d := ref.Descriptor
				fmt.Printf(MsgInfoHeader, string(ref.Kind), d.FullName(), d.Version(e.ctx.Spec()))
				if d.Homepage != "" {
					fmt.Printf(MsgInfoHomepage, d.Homepage)
				}
				fmt.Printf(MsgInfoPath, d.Path)
			}

			fmt.Printf(MsgRequestedSpec, e.ctx.Spec())
			if flags := e.ctx.Args().BuildFlags(); len(flags) > 0 {
				fmt.Printf(MsgBuildFlags, strings.Join(flags, " "))
			}
			return nil
		},
	}
	cli.BindOptions(cmd.Flags())
	return cmd
}

func newKegsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kegs [package...]",
		Short: MsgKegsShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(cmd)
			if err != nil {
				return err
			}

			kegs, err := e.ctx.Kegs()
			if err != nil {
				return describeResolutionError(err)
			}
			if len(kegs) == 0 {
				fmt.Println(MsgNoNames)
				return nil
			}

			for _, ref := range kegs {
				fmt.Printf(MsgKegItem, ref.Name, ref.Path)
			}
			return nil
		},
	}
	cli.BindOptions(cmd.Flags())
	return cmd
}

// describeResolutionError surfaces a suggestion to the user when the
// failed lookup produced one. The error itself propagates unchanged.
func describeResolutionError(err error) error {
	if details := errors.GetErrorDetails(err); details != nil {
		if hint, ok := details["suggestion"].(string); ok && hint != "" {
			fmt.Printf(MsgDidYouMean, hint)
		}
	}
	return err
}
