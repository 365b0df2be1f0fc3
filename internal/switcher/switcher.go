// Package switcher activates input-method profiles and reports the active
// one through a tsf.Manager.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/connorhough/imeswitch/internal/iostreams"
	"github.com/connorhough/imeswitch/internal/profile"
	"github.com/connorhough/imeswitch/internal/tsf"
)

// ErrProfileNotInstalled means no registered profile matched the requested
// CLSID and LANGID.
var ErrProfileNotInstalled = errors.New("profile is not installed")

// Switch activates the first registered profile matching want.
func Switch(ctx context.Context, open tsf.Opener, want profile.Profile, flags tsf.ActivateFlags, streams *iostreams.IOStreams) error {
	return withManager(ctx, open, func(mgr tsf.Manager) error {
		return activate(ctx, mgr, want, flags, streams)
	})
}

func activate(ctx context.Context, mgr tsf.Manager, want profile.Profile, flags tsf.ActivateFlags, streams *iostreams.IOStreams) error {
	profiles, err := mgr.Profiles(ctx)
	if err != nil {
		return err
	}

	for _, p := range profiles {
		if !want.Matches(p.CLSID, p.LangID) {
			continue
		}

		slog.Info("Activating profile", "name", want.Name, "label", want.Label, "profile", tsf.FormatGUID(p.GUIDProfile))
		if err := mgr.Activate(ctx, p, flags); err != nil {
			if hr, ok := tsf.ResultOf(err); ok {
				if hr == tsf.E_FAIL {
					fmt.Fprintln(streams.Out, "ActivateProfile E_FAIL")
				} else {
					fmt.Fprintln(streams.Out, "ActivateProfile Unknown")
				}
			}
			return err
		}

		fmt.Fprintln(streams.Out, "ActivateProfile success")
		return nil
	}

	return fmt.Errorf("%w: %s (CLSID %s, LangID %d)", ErrProfileNotInstalled, want.Label, tsf.FormatGUID(want.CLSID), want.LangID)
}

// Current prints the active keyboard profile.
func Current(ctx context.Context, open tsf.Opener, table profile.Table, streams *iostreams.IOStreams) error {
	return withManager(ctx, open, func(mgr tsf.Manager) error {
		p, err := mgr.ActiveProfile(ctx)
		if err != nil {
			return err
		}
		writeBlock(streams.Out, labelFor(table, p), p)
		return nil
	})
}

// List prints every registered profile.
func List(ctx context.Context, open tsf.Opener, table profile.Table, streams *iostreams.IOStreams) error {
	return withManager(ctx, open, func(mgr tsf.Manager) error {
		return list(ctx, mgr, table, streams)
	})
}

func list(ctx context.Context, mgr tsf.Manager, table profile.Table, streams *iostreams.IOStreams) error {
	profiles, err := mgr.Profiles(ctx)
	if err != nil {
		return err
	}

	enabled := 0
	for _, p := range profiles {
		label := labelFor(table, p)
		if known, ok := table.Find(p.CLSID, p.LangID); ok {
			label = fmt.Sprintf("[%d] %s", known.Selector, label)
		}
		if p.Active() {
			label += " (active)"
		}
		if p.Enabled() {
			enabled++
		}
		writeBlock(streams.Out, label, p)
	}

	if streams.IsTerminal() {
		fmt.Fprintf(streams.Out, "%d profiles, %d enabled\n", len(profiles), enabled)
	}
	return nil
}

// withManager opens a manager with open, or tsf.Open when nil, runs fn and
// closes it again.
func withManager(ctx context.Context, open tsf.Opener, fn func(tsf.Manager) error) (err error) {
	if open == nil {
		open = tsf.Open
	}
	mgr, err := open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open profile manager: %w", err)
	}
	defer func() {
		if cerr := mgr.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(mgr)
}

func labelFor(table profile.Table, p tsf.InstalledProfile) string {
	if known, ok := table.Find(p.CLSID, p.LangID); ok {
		return known.Label
	}
	return p.Type.String()
}
