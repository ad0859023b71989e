package cli

import (
	"fmt"

	"github.com/arthur-debert/waylandify/pkg/commands/initialize"
	"github.com/spf13/cobra"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			p, err := opts.host.paths()
			if err != nil {
				return opts.fail(cmd, fmt.Errorf(MsgErrInitPaths, err))
			}

			result, err := initialize.Init(initialize.Options{
				FS:         opts.host.fs,
				ConfigPath: p.ConfigFile(),
			})
			if err != nil {
				return opts.fail(cmd, err)
			}
			return r.RenderResult(result)
		},
	}
}
