// Package tsf talks to the Text Services Framework input processor profile
// manager. Only Windows has one; elsewhere Open reports ErrUnsupported.
package tsf

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupported is returned by Open on platforms without TSF.
var ErrUnsupported = errors.New("text services framework is only available on Windows")

// ProfileType distinguishes text services from plain keyboard layouts.
type ProfileType uint32

const (
	ProfileTypeInputProcessor ProfileType = 0x0001
	ProfileTypeKeyboardLayout ProfileType = 0x0002
)

func (t ProfileType) String() string {
	switch t {
	case ProfileTypeInputProcessor:
		return "input processor"
	case ProfileTypeKeyboardLayout:
		return "keyboard layout"
	default:
		return fmt.Sprintf("profile type 0x%x", uint32(t))
	}
}

// Profile flags reported by enumeration.
const (
	FlagActive                      uint32 = 0x00000001
	FlagEnabled                     uint32 = 0x00000002
	FlagSubstitutedByInputProcessor uint32 = 0x00000004
)

// ActivateFlags is the TF_IPPMF_* bitmask passed to ActivateProfile.
type ActivateFlags uint32

const (
	ActivateEnableProfile                ActivateFlags = 0x00000001
	ActivateDisableProfile               ActivateFlags = 0x00000002
	ActivateDontCareCurrentInputLanguage ActivateFlags = 0x00000004
	ActivateForProcess                   ActivateFlags = 0x10000000
	ActivateForSession                   ActivateFlags = 0x20000000
	ActivateForSystemAll                 ActivateFlags = 0x40000000
)

// DefaultActivateFlags switches the session and current process to the
// profile, enabling it if needed, whatever the current input language is.
const DefaultActivateFlags = ActivateForSession | ActivateDontCareCurrentInputLanguage | ActivateForProcess | ActivateEnableProfile

// CategoryKeyboard is GUID_TFCAT_TIP_KEYBOARD, the category of the active
// keyboard text service.
var CategoryKeyboard = uuid.MustParse("34745C63-B2F0-4784-8B67-5E12C8701A31")

// InstalledProfile is one entry returned by the profile manager.
type InstalledProfile struct {
	Type          ProfileType
	LangID        uint16
	CLSID         uuid.UUID
	GUIDProfile   uuid.UUID
	CatID         uuid.UUID
	HKLSubstitute uintptr
	Caps          uint32
	HKL           uintptr
	Flags         uint32
}

// Active reports whether the profile is the one currently in use.
func (p InstalledProfile) Active() bool {
	return p.Flags&FlagActive != 0
}

// Enabled reports whether the user has the profile enabled.
func (p InstalledProfile) Enabled() bool {
	return p.Flags&FlagEnabled != 0
}

// Manager is an open handle to the profile manager.
type Manager interface {
	// Profiles enumerates every registered profile for every language.
	Profiles(ctx context.Context) ([]InstalledProfile, error)

	// ActiveProfile returns the active keyboard profile.
	ActiveProfile(ctx context.Context) (InstalledProfile, error)

	// Activate makes p the active profile.
	Activate(ctx context.Context, p InstalledProfile, flags ActivateFlags) error

	// Close releases the manager. It is safe to call more than once.
	Close() error
}

// Opener opens a Manager.
type Opener func(ctx context.Context) (Manager, error)

var activateFlagNames = map[string]ActivateFlags{
	"enable":   ActivateEnableProfile,
	"disable":  ActivateDisableProfile,
	"dontcare": ActivateDontCareCurrentInputLanguage,
	"process":  ActivateForProcess,
	"session":  ActivateForSession,
	"system":   ActivateForSystemAll,
}

// ParseActivateFlags accepts a number ("0x30000005") or a comma separated
// list of enable, disable, dontcare, process, session and system.
func ParseActivateFlags(s string) (ActivateFlags, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultActivateFlags, nil
	}
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		return ActivateFlags(n), nil
	}

	var flags ActivateFlags
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		f, ok := activateFlagNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown activation flag %q", part)
		}
		flags |= f
	}
	return flags, nil
}

var errManagerClosed = errors.New("profile manager is closed")

// open is set by the platform implementation.
var open Opener

// Open returns a handle to the system profile manager.
func Open(ctx context.Context) (Manager, error) {
	if open == nil {
		return nil, ErrUnsupported
	}
	return open(ctx)
}
