// Package iostreams bundles the standard streams so commands can be driven
// from tests.
package iostreams

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams abstracts standard I/O for testability.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	isTerminalFunc func(fd int) bool
	stdoutFd       int
}

// System returns IOStreams connected to os.Stdin/Stdout/Stderr.
func System() *IOStreams {
	return &IOStreams{
		In:             os.Stdin,
		Out:            os.Stdout,
		ErrOut:         os.Stderr,
		isTerminalFunc: term.IsTerminal,
		stdoutFd:       int(os.Stdout.Fd()),
	}
}

// New returns IOStreams over the given streams. They never report a terminal.
func New(in io.Reader, out, errOut io.Writer) *IOStreams {
	return &IOStreams{In: in, Out: out, ErrOut: errOut}
}

// IsTerminal reports whether Out is a terminal.
func (s *IOStreams) IsTerminal() bool {
	if s.isTerminalFunc == nil {
		return false
	}
	return s.isTerminalFunc(s.stdoutFd)
}

// Test returns IOStreams over in-memory buffers along with the stdout and
// stderr buffers. It reports itself as a terminal.
func Test() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &IOStreams{
		In:             &bytes.Buffer{},
		Out:            out,
		ErrOut:         errOut,
		isTerminalFunc: func(int) bool { return true },
	}, out, errOut
}

// TestPiped is like Test but reports a non-terminal stdout.
func TestPiped() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	s, out, errOut := Test()
	s.isTerminalFunc = func(int) bool { return false }
	return s, out, errOut
}
