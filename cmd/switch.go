package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/connorhough/imeswitch/internal/config"
	"github.com/connorhough/imeswitch/internal/iostreams"
	"github.com/connorhough/imeswitch/internal/profile"
	"github.com/connorhough/imeswitch/internal/switcher"
	"github.com/connorhough/imeswitch/internal/tsf"
	"github.com/spf13/cobra"
)

// openManager is replaced in tests.
var openManager tsf.Opener = tsf.Open

func newSwitchCmd() *cobra.Command {
	var activateFlags string

	cmd := &cobra.Command{
		Use:   "switch <selector>",
		Short: "Activate the input method with the given selector",
		Long: `Activate the input method registered under selector.

The profile is looked up by CLSID and LANGID among the profiles registered
with the Text Services Framework, and the first match is activated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelector(cmd, args[0], activateFlags)
		},
	}

	cmd.Flags().StringVar(&activateFlags, "flags", "", "activation flags, numeric or a list such as session,process,enable,dontcare")

	return cmd
}

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the active input method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ResolveSwitchConfig()
			if err != nil {
				return err
			}
			return switcher.Current(cmd.Context(), openManager, cfg.Table, streamsFor(cmd))
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered input method profile",
		Long: `List every input method profile registered with the Text Services Framework.

Profiles known to the selector table are prefixed with their selector; the
active one is marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ResolveSwitchConfig()
			if err != nil {
				return err
			}
			return switcher.List(cmd.Context(), openManager, cfg.Table, streamsFor(cmd))
		},
	}
}

// runSelector activates the profile selected by arg, or prints the active
// one for an empty or -1 selector.
func runSelector(cmd *cobra.Command, arg string, activateFlags string) error {
	cfg, err := config.ResolveSwitchConfig()
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(activateFlags); err != nil {
		return err
	}

	streams := streamsFor(cmd)

	sel, err := profile.ParseSelector(arg, cfg.Table)
	if err != nil {
		fmt.Fprintln(streams.ErrOut, err)
	}

	if sel.Current {
		return switcher.Current(cmd.Context(), openManager, cfg.Table, streams)
	}

	slog.Debug("resolved selector", "arg", arg, "name", sel.Profile.Name, "flags", fmt.Sprintf("0x%08X", uint32(cfg.Flags)))
	return switcher.Switch(cmd.Context(), openManager, sel.Profile, cfg.Flags, streams)
}

func streamsFor(cmd *cobra.Command) *iostreams.IOStreams {
	out := cmd.OutOrStdout()
	if out != os.Stdout {
		return iostreams.New(cmd.InOrStdin(), out, cmd.ErrOrStderr())
	}
	s := iostreams.System()
	s.ErrOut = cmd.ErrOrStderr()
	return s
}
