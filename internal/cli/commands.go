package cli

import (
	"errors"
	"fmt"
	"io"

	helptopics "github.com/arthur-debert/waylandify/internal/cli/topics"
	"github.com/arthur-debert/waylandify/internal/version"
	"github.com/arthur-debert/waylandify/pkg/cobrax/topics"
	"github.com/arthur-debert/waylandify/pkg/commands/apply"
	"github.com/arthur-debert/waylandify/pkg/filesystem"
	"github.com/arthur-debert/waylandify/pkg/locator"
	"github.com/arthur-debert/waylandify/pkg/logging"
	"github.com/arthur-debert/waylandify/pkg/output"
	"github.com/arthur-debert/waylandify/pkg/paths"
	"github.com/arthur-debert/waylandify/pkg/types"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// host is everything the commands take from the machine they run on.
type host struct {
	fs      types.FS
	locator apply.Locator
	paths   func() (types.Pather, error)
	clock   clockwork.Clock
}

func systemHost() host {
	return host{
		fs:      filesystem.NewOS(),
		locator: locator.New(),
		paths:   func() (types.Pather, error) { return paths.New() },
		clock:   clockwork.NewRealClock(),
	}
}

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	host      host
	verbosity int
	format    string
}

// reportedError marks an error that was already rendered to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(systemHost())
}

func newRootCmd(h host) *cobra.Command {
	opts := &rootOptions{host: h}

	rootCmd := &cobra.Command{
		Use:     "waylandify",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Full(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", output.FormatAuto.String(), MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "Other Commands:"})

	rootCmd.AddCommand(newApplyCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newTopicsCmd())

	// Topics are embedded, so a failure here means a broken build; plain
	// cobra help still works.
	if err := topics.InitializeWithOptions(rootCmd, helptopics.FS, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// Execute runs the waylandify CLI and returns the process exit code.
// Errors that commands have not rendered themselves (unknown flags, bad
// arguments) are printed to stderr.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// renderer builds the output renderer selected by --format.
func (o *rootOptions) renderer(w io.Writer) (output.Renderer, error) {
	format, err := output.ParseFormat(o.format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrFormat, err)
	}
	return output.NewRenderer(format, w)
}

// fail renders err and returns it marked as reported. JSON errors go to
// stdout next to the result so the output stays one parseable stream; the
// other formats use stderr.
func (o *rootOptions) fail(cmd *cobra.Command, err error) error {
	w := cmd.ErrOrStderr()
	if format, _ := output.ParseFormat(o.format); format == output.FormatJSON {
		w = cmd.OutOrStdout()
	}

	r, rerr := o.renderer(w)
	if rerr != nil {
		return err
	}
	if rerr := r.RenderError(err); rerr != nil {
		log.Error().Err(rerr).Msg("Failed to render error")
		return err
	}
	return &reportedError{err: err}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == nil || helpCmd.Name() != "help" {
				return fmt.Errorf("help command not found")
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}
