//go:build windows

package tsf

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const clsctxInprocServer = 0x1

var (
	clsidInputProcessorProfiles = windows.GUID{Data1: 0x33C53A50, Data2: 0xF456, Data3: 0x4884, Data4: [8]byte{0xB0, 0x49, 0x85, 0xFD, 0x64, 0x3E, 0xCF, 0xED}}
	iidInputProcessorProfileMgr = windows.GUID{Data1: 0x71C6E74C, Data2: 0x0F28, Data3: 0x11D8, Data4: [8]byte{0xA8, 0x2A, 0x00, 0x06, 0x5B, 0x84, 0x43, 0x5C}}

	ole32                = windows.NewLazySystemDLL("ole32.dll")
	procCoCreateInstance = ole32.NewProc("CoCreateInstance")
)

// Vtable slots. Both interfaces start with IUnknown.
const (
	methodRelease = 2

	// ITfInputProcessorProfileMgr
	methodActivateProfile  = 3
	methodEnumProfiles     = 6
	methodGetActiveProfile = 10

	// IEnumTfInputProcessorProfiles
	methodNext = 4
)

// tfInputProcessorProfile is TF_INPUTPROCESSORPROFILE.
type tfInputProcessorProfile struct {
	ProfileType   uint32
	LangID        uint16
	CLSID         windows.GUID
	GUIDProfile   windows.GUID
	CatID         windows.GUID
	HKLSubstitute uintptr
	Caps          uint32
	HKL           uintptr
	Flags         uint32
}

func (p *tfInputProcessorProfile) installed() InstalledProfile {
	return InstalledProfile{
		Type:          ProfileType(p.ProfileType),
		LangID:        p.LangID,
		CLSID:         fromCOM(comGUID(p.CLSID)),
		GUIDProfile:   fromCOM(comGUID(p.GUIDProfile)),
		CatID:         fromCOM(comGUID(p.CatID)),
		HKLSubstitute: p.HKLSubstitute,
		Caps:          p.Caps,
		HKL:           p.HKL,
		Flags:         p.Flags,
	}
}

// comObject is the head of any COM interface: a pointer to its vtable.
type comObject struct {
	vtbl *[16]uintptr
}

// call invokes vtable slot method with o as the receiver. Pointer arguments
// must be converted to uintptr in the call expression itself.
//
//go:uintptrescapes
func (o *comObject) call(method int, args ...uintptr) HRESULT {
	full := make([]uintptr, 0, len(args)+1)
	full = append(full, uintptr(unsafe.Pointer(o)))
	full = append(full, args...)
	r, _, _ := syscall.SyscallN(o.vtbl[method], full...)
	return HRESULT(int32(r))
}

func (o *comObject) release() {
	o.call(methodRelease)
}

type comManager struct {
	mu     sync.Mutex
	mgr    *comObject
	uninit bool
	closed bool
}

func init() {
	open = openCOM
}

// openCOM initialises COM on the calling goroutine's thread and creates the
// profile manager. The returned Manager must be used and closed from the
// same goroutine.
func openCOM(ctx context.Context) (Manager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runtime.LockOSThread()

	uninit := true
	if err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED); err != nil {
		hr := hresultFromErr(err)
		switch hr {
		case S_FALSE:
			// Already initialised on this thread; still balanced by CoUninitialize.
		case RPC_E_CHANGED_MODE:
			uninit = false
			slog.Debug("COM already initialised with another apartment model")
		default:
			runtime.UnlockOSThread()
			return nil, &CallError{Op: "CoInitialize", HR: hr}
		}
	}

	var mgr *comObject
	r, _, _ := procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(&clsidInputProcessorProfiles)),
		0,
		clsctxInprocServer,
		uintptr(unsafe.Pointer(&iidInputProcessorProfileMgr)),
		uintptr(unsafe.Pointer(&mgr)),
	)
	if err := check("CoCreateInstance", HRESULT(int32(r))); err != nil {
		if uninit {
			windows.CoUninitialize()
		}
		runtime.UnlockOSThread()
		return nil, err
	}
	if mgr == nil {
		if uninit {
			windows.CoUninitialize()
		}
		runtime.UnlockOSThread()
		return nil, &CallError{Op: "CoCreateInstance", HR: E_POINTER}
	}

	slog.Debug("opened input processor profile manager")
	return &comManager{mgr: mgr, uninit: uninit}, nil
}

func (m *comManager) Profiles(ctx context.Context) ([]InstalledProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, errManagerClosed
	}

	var enum *comObject
	// LANGID 0 enumerates profiles for every language.
	hr := m.mgr.call(methodEnumProfiles, 0, uintptr(unsafe.Pointer(&enum)))
	if err := check("EnumProfiles", hr); err != nil {
		return nil, err
	}
	if enum == nil {
		return nil, nil
	}
	defer enum.release()

	var profiles []InstalledProfile
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var raw tfInputProcessorProfile
		var fetched uint32
		hr := enum.call(methodNext, 1, uintptr(unsafe.Pointer(&raw)), uintptr(unsafe.Pointer(&fetched)))
		if hr != S_OK || fetched == 0 {
			if hr.Failed() {
				return nil, &CallError{Op: "IEnumTfInputProcessorProfiles::Next", HR: hr}
			}
			break
		}
		profiles = append(profiles, raw.installed())
	}

	slog.Debug("enumerated profiles", "count", len(profiles))
	return profiles, nil
}

func (m *comManager) ActiveProfile(ctx context.Context) (InstalledProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return InstalledProfile{}, errManagerClosed
	}
	if err := ctx.Err(); err != nil {
		return InstalledProfile{}, err
	}

	catid := windows.GUID(toCOM(CategoryKeyboard))
	var raw tfInputProcessorProfile
	hr := m.mgr.call(methodGetActiveProfile, uintptr(unsafe.Pointer(&catid)), uintptr(unsafe.Pointer(&raw)))
	if err := check("GetActiveProfile", hr); err != nil {
		return InstalledProfile{}, err
	}
	return raw.installed(), nil
}

func (m *comManager) Activate(ctx context.Context, p InstalledProfile, flags ActivateFlags) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errManagerClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	clsid := windows.GUID(toCOM(p.CLSID))
	guidProfile := windows.GUID(toCOM(p.GUIDProfile))

	profileType := p.Type
	if profileType == 0 {
		profileType = ProfileTypeInputProcessor
	}
	var hkl uintptr
	if profileType == ProfileTypeKeyboardLayout {
		hkl = p.HKL
	}

	slog.Debug("activating profile",
		"type", profileType.String(),
		"langid", p.LangID,
		"clsid", FormatGUID(p.CLSID),
		"profile", FormatGUID(p.GUIDProfile),
		"flags", uint32(flags))

	hr := m.mgr.call(methodActivateProfile,
		uintptr(profileType),
		uintptr(p.LangID),
		uintptr(unsafe.Pointer(&clsid)),
		uintptr(unsafe.Pointer(&guidProfile)),
		hkl,
		uintptr(flags),
	)
	return check("ActivateProfile", hr)
}

func (m *comManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	m.mgr.release()
	m.mgr = nil
	if m.uninit {
		windows.CoUninitialize()
	}
	runtime.UnlockOSThread()
	return nil
}

func hresultFromErr(err error) HRESULT {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return HRESULT(int32(uint32(errno)))
	}
	return E_FAIL
}
