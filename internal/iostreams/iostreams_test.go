package iostreams

import (
	"bytes"
	"testing"
)

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name string
		fn   func(int) bool
		want bool
	}{
		{name: "terminal", fn: func(int) bool { return true }, want: true},
		{name: "pipe", fn: func(int) bool { return false }, want: false},
		{name: "nil func", fn: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &IOStreams{
				In:             &bytes.Buffer{},
				Out:            &bytes.Buffer{},
				ErrOut:         &bytes.Buffer{},
				isTerminalFunc: tt.fn,
			}
			if got := s.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTestStreams(t *testing.T) {
	s, out, errOut := Test()
	if s.Out != out {
		t.Error("expected Out to be the output buffer")
	}
	if s.ErrOut != errOut {
		t.Error("expected ErrOut to be the error buffer")
	}
	if !s.IsTerminal() {
		t.Error("expected Test streams to simulate a terminal")
	}

	piped, _, _ := TestPiped()
	if piped.IsTerminal() {
		t.Error("expected TestPiped streams to report a pipe")
	}
}

func TestSystem(t *testing.T) {
	s := System()
	if s.In == nil || s.Out == nil || s.ErrOut == nil {
		t.Fatal("expected all streams to be set")
	}
	if s.isTerminalFunc == nil {
		t.Error("expected isTerminalFunc to be set")
	}
}

func TestNew(t *testing.T) {
	out := &bytes.Buffer{}
	s := New(&bytes.Buffer{}, out, out)
	if s.Out != out || s.ErrOut != out {
		t.Error("expected streams to be used as given")
	}
	if s.IsTerminal() {
		t.Error("expected New streams to report a pipe")
	}
}
