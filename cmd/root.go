// Package cmd provides the command-line interface for the imeswitch application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/connorhough/imeswitch/internal/config"
	"github.com/connorhough/imeswitch/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
	rootCmd  *cobra.Command
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.go. It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	if rootCmd == nil {
		rootCmd = NewRootCmd()
	}
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd creates and returns the root command for imeswitch
func NewRootCmd() *cobra.Command {
	var activateFlags string

	rootCmd := &cobra.Command{
		Use:   "imeswitch [selector]",
		Short: "Switch the active input method",
		Long: `Switch the active Windows input method (keyboard layout or IME) by selector,
or print the active one.

Selectors:
  0   English keyboard (EN)
  1   Sogou Pinyin (SG)
  2   Microsoft Pinyin (WR)
  3   Hi English input (HI)
  -1  print the active profile (same as no selector)

An unknown selector falls back to 0. More selectors can be added under
"profiles" in the config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var selector string
			if len(args) == 1 {
				selector = args[0]
			}
			return runSelector(cmd, selector, activateFlags)
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default locations: $XDG_CONFIG_HOME/imeswitch/config.yaml, ~/.config/imeswitch/config.yaml, or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")
	rootCmd.Flags().StringVar(&activateFlags, "flags", "", "activation flags, numeric or a list such as session,process,enable,dontcare")

	// Add subcommands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newCurrentCmd())
	rootCmd.AddCommand(newListCmd())

	// PersistentPreRun handles configuration initialization
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		return initLogging(cmd)
	}

	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find config file in standard locations
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, config.AppName))
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get user home directory: %w", err)
			}
			viper.AddConfigPath(filepath.Join(home, ".config", config.AppName))
			if dir, err := os.UserConfigDir(); err == nil {
				viper.AddConfigPath(filepath.Join(dir, config.AppName))
			}
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("IMESWITCH")
	viper.AutomaticEnv()

	if f := cmd.Root().PersistentFlags().Lookup("log-level"); f != nil {
		if err := viper.BindPFlag(config.KeyLogLevel, f); err != nil {
			return err
		}
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; "config init" creates it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// initLogging installs the default slog handler on stderr.
func initLogging(cmd *cobra.Command) error {
	level, err := config.ParseLogLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	slog.Debug("configuration loaded", "file", viper.ConfigFileUsed(), "log_level", level.String())
	return nil
}

var negativeSelector = regexp.MustCompile(`^-\d+$`)

// normalizeArgs moves a negative selector such as -1 behind "--", since
// pflag would otherwise read it as a shorthand flag.
func normalizeArgs(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if negativeSelector.MatchString(arg) {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, args[i+1:]...)
			return append(out, "--", arg)
		}
	}
	return args
}
