package tsf

import (
	"errors"
	"fmt"
)

// HRESULT is a COM status code.
type HRESULT int32

// Well-known HRESULT values.
const (
	S_OK    HRESULT = 0
	S_FALSE HRESULT = 1

	E_NOTIMPL      HRESULT = -0x7fffbfff // 0x80004001
	E_NOINTERFACE  HRESULT = -0x7fffbffe // 0x80004002
	E_POINTER      HRESULT = -0x7fffbffd // 0x80004003
	E_ABORT        HRESULT = -0x7fffbffc // 0x80004004
	E_FAIL         HRESULT = -0x7fffbffb // 0x80004005
	E_UNEXPECTED   HRESULT = -0x7fff0001 // 0x8000FFFF
	E_ACCESSDENIED HRESULT = -0x7ff8fffb // 0x80070005
	E_OUTOFMEMORY  HRESULT = -0x7ff8fff2 // 0x8007000E
	E_INVALIDARG   HRESULT = -0x7ff8ffa9 // 0x80070057

	RPC_E_CHANGED_MODE  HRESULT = -0x7ffefefa // 0x80010106
	REGDB_E_CLASSNOTREG HRESULT = -0x7ffbfeac // 0x80040154
	CO_E_NOTINITIALIZED HRESULT = -0x7ffbfe10 // 0x800401F0
)

var hresultNames = map[HRESULT]string{
	S_OK:                "S_OK",
	S_FALSE:             "S_FALSE",
	E_NOTIMPL:           "E_NOTIMPL",
	E_NOINTERFACE:       "E_NOINTERFACE",
	E_POINTER:           "E_POINTER",
	E_ABORT:             "E_ABORT",
	E_FAIL:              "E_FAIL",
	E_UNEXPECTED:        "E_UNEXPECTED",
	E_ACCESSDENIED:      "E_ACCESSDENIED",
	E_OUTOFMEMORY:       "E_OUTOFMEMORY",
	E_INVALIDARG:        "E_INVALIDARG",
	RPC_E_CHANGED_MODE:  "RPC_E_CHANGED_MODE",
	REGDB_E_CLASSNOTREG: "REGDB_E_CLASSNOTREG",
	CO_E_NOTINITIALIZED: "CO_E_NOTINITIALIZED",
}

// Failed reports whether hr is an error code.
func (hr HRESULT) Failed() bool {
	return hr < 0
}

func (hr HRESULT) String() string {
	if name, ok := hresultNames[hr]; ok {
		return fmt.Sprintf("0x%08X (%s)", uint32(hr), name)
	}
	return fmt.Sprintf("0x%08X", uint32(hr))
}

// CallError reports a failed call into the profile manager.
type CallError struct {
	Op string
	HR HRESULT
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.HR)
}

// Is lets errors.Is match a CallError against a bare HRESULT.
func (e *CallError) Is(target error) bool {
	hr, ok := target.(HRESULT)
	return ok && hr == e.HR
}

// Error makes HRESULT usable as an errors.Is target.
func (hr HRESULT) Error() string {
	return hr.String()
}

// check returns a *CallError for a failing hr and nil otherwise.
func check(op string, hr HRESULT) error {
	if hr.Failed() {
		return &CallError{Op: op, HR: hr}
	}
	return nil
}

// ResultOf extracts the HRESULT carried by err, if any.
func ResultOf(err error) (HRESULT, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.HR, true
	}
	return 0, false
}
