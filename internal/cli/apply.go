package cli

import (
	"fmt"

	"github.com/arthur-debert/waylandify/pkg/backup"
	"github.com/arthur-debert/waylandify/pkg/commands/apply"
	"github.com/arthur-debert/waylandify/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newApplyCmd(opts *rootOptions) *cobra.Command {
	var (
		dryRun   bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:               "apply [programs...]",
		Short:             MsgApplyShort,
		Long:              MsgApplyLong,
		Example:           MsgApplyExample,
		GroupID:           "core",
		ValidArgsFunction: programNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			p, err := opts.host.paths()
			if err != nil {
				return opts.fail(cmd, fmt.Errorf(MsgErrInitPaths, err))
			}

			var overrides map[string]interface{}
			if noBackup {
				overrides = map[string]interface{}{"backup": false}
			}
			cfg, err := config.Load(p.ConfigFile(), overrides)
			if err != nil {
				return opts.fail(cmd, err)
			}
			logEffectiveConfig(cfg)

			var bm *backup.Manager
			if cfg.Backup {
				bm = backup.New(opts.host.fs, p.BackupDir(), opts.host.clock)
			}

			result, err := apply.Apply(apply.Options{
				Config:       cfg,
				FS:           opts.host.fs,
				Locator:      opts.host.locator,
				LauncherDirs: p.LauncherDirs(),
				UserDir:      p.UserApplicationsDir(),
				Backup:       bm,
				DryRun:       dryRun,
				Programs:     args,
				Clock:        opts.host.clock,
			})

			// A failed run still reports what it did before stopping
			if result != nil {
				if rerr := r.RenderResult(result); rerr != nil && err == nil {
					err = rerr
				}
			}
			if err != nil {
				return opts.fail(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, MsgFlagNoBackup)

	return cmd
}

// logEffectiveConfig dumps the merged configuration at debug level.
func logEffectiveConfig(cfg *config.Config) {
	e := log.Debug()
	if !e.Enabled() {
		return
	}
	dump, err := config.Encode(cfg)
	if err != nil {
		e.Err(err).Msg("Cannot encode effective configuration")
		return
	}
	e.Msg("Effective configuration:\n" + dump)
}

// programNamesCompletion completes the names of configured programs not
// already on the command line.
func programNamesCompletion(opts *rootOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		p, err := opts.host.paths()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		// Completion output must stay clean
		prev := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.Disabled)
		defer zerolog.SetGlobalLevel(prev)

		cfg, err := config.Load(p.ConfigFile(), nil)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		seen := make(map[string]bool, len(args))
		for _, a := range args {
			seen[a] = true
		}

		var names []string
		for _, prog := range cfg.Programs {
			if !seen[prog.Name] {
				names = append(names, prog.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
