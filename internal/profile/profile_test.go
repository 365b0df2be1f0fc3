package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

func TestParseSelector(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name        string
		arg         string
		wantCurrent bool
		wantName    string
		wantWarn    bool
	}{
		{name: "absent selects current", arg: "", wantCurrent: true},
		{name: "minus one selects current", arg: "-1", wantCurrent: true},
		{name: "english", arg: "0", wantName: "EN"},
		{name: "sogou", arg: "1", wantName: "SG"},
		{name: "microsoft pinyin", arg: "2", wantName: "WR"},
		{name: "hi english", arg: "3", wantName: "HI"},
		{name: "surrounding space", arg: " 2 ", wantName: "WR"},
		{name: "trailing text ignored", arg: "1abc", wantName: "SG"},
		{name: "fraction truncated", arg: "1.5", wantName: "SG"},
		{name: "explicit plus", arg: "+2", wantName: "WR"},
		{name: "leading zero", arg: "03", wantName: "HI"},
		{name: "out of range falls back", arg: "7", wantName: "EN", wantWarn: true},
		{name: "negative falls back", arg: "-2", wantName: "EN", wantWarn: true},
		{name: "not a number falls back", arg: "sogou", wantName: "EN", wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ParseSelector(tt.arg, table)
			if tt.wantWarn {
				var selErr *SelectorError
				if !errors.As(err, &selErr) {
					t.Fatalf("expected *SelectorError, got %v", err)
				}
				if selErr.Fallback.Name != "EN" {
					t.Errorf("fallback: got %q, want EN", selErr.Fallback.Name)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if sel.Current != tt.wantCurrent {
				t.Errorf("current: got %v, want %v", sel.Current, tt.wantCurrent)
			}
			if !tt.wantCurrent && sel.Profile.Name != tt.wantName {
				t.Errorf("profile: got %q, want %q", sel.Profile.Name, tt.wantName)
			}
		})
	}
}

func TestSelectorErrorMessage(t *testing.T) {
	_, err := ParseSelector("abc", DefaultTable())
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Invalid flag value: abc, defaulting to EN"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	_, err = ParseSelector("9", DefaultTable())
	if !errors.Is(err, ErrUnknownSelector) {
		t.Errorf("expected ErrUnknownSelector, got %v", err)
	}

	tests := []struct {
		arg  string
		want string
	}{
		// Out of range values are echoed as parsed.
		{arg: "07", want: "Invalid flag value: 7, defaulting to EN"},
		{arg: "9xyz", want: "Invalid flag value: 9, defaulting to EN"},
		// Values that do not parse are echoed as given.
		{arg: "99999999999999999999", want: "Invalid flag value: 99999999999999999999, defaulting to EN"},
		{arg: "x1", want: "Invalid flag value: x1, defaulting to EN"},
	}
	for _, tt := range tests {
		_, err := ParseSelector(tt.arg, DefaultTable())
		if err == nil {
			t.Errorf("ParseSelector(%q): expected error", tt.arg)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("ParseSelector(%q): got %q, want %q", tt.arg, err.Error(), tt.want)
		}
	}
}

func TestTableFind(t *testing.T) {
	table := DefaultTable()

	p, ok := table.Find(Sogou.CLSID, 2052)
	if !ok || p.Name != "SG" {
		t.Errorf("expected SG, got %+v (ok=%v)", p, ok)
	}

	// Same CLSID under another locale is a different profile.
	if _, ok := table.Find(Sogou.CLSID, 1033); ok {
		t.Error("expected no match for SG CLSID with LANGID 1033")
	}

	p, ok = table.Find(uuid.Nil, 1033)
	if !ok || p.Name != "EN" {
		t.Errorf("expected EN, got %+v (ok=%v)", p, ok)
	}
}

func TestParseLangID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{in: "2052", want: 2052},
		{in: "0x0804", want: 0x0804},
		{in: "0x409", want: 1033},
		{in: "", wantErr: true},
		{in: "70000", wantErr: true},
		{in: "zh-CN", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLangID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLangID(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLangID(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLangID(%q): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoadTable(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	configContent := `
profiles:
  - selector: 3
    name: HI
    clsid: "{E7EA138F-69F8-11D7-EEEE-00065B844310}"
    langid: 1033
  - selector: 4
    name: JP
    clsid: 03B5835F-F03C-411B-9CE2-AA23E1171E36
    langid: "0x0411"
    label: Microsoft IME
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("failed to read config: %v", err)
	}

	table, err := LoadTable(v)
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	if len(table) != 5 {
		t.Fatalf("expected 5 profiles, got %d", len(table))
	}

	hi, _ := table.Lookup(3)
	if hi.LangID != 1033 {
		t.Errorf("HI langid: got %d, want 1033", hi.LangID)
	}
	if hi.Label != "HI" {
		t.Errorf("HI label should default to name, got %q", hi.Label)
	}

	jp, ok := table.Lookup(4)
	if !ok {
		t.Fatal("expected selector 4 to be added")
	}
	if jp.LangID != 0x0411 || jp.Label != "Microsoft IME" {
		t.Errorf("unexpected JP profile: %+v", jp)
	}
	if table[4].Selector != 4 {
		t.Error("table should stay ordered by selector")
	}

	// Untouched built-ins survive.
	sg, _ := table.Lookup(1)
	if sg != Sogou {
		t.Errorf("SG changed: %+v", sg)
	}
}

func TestLoadTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []map[string]any
	}{
		{name: "missing selector", entries: []map[string]any{{"clsid": "", "langid": 1033}}},
		{name: "bad clsid", entries: []map[string]any{{"selector": 5, "clsid": "nope", "langid": 1033}}},
		{name: "missing langid", entries: []map[string]any{{"selector": 5}}},
		{name: "negative selector", entries: []map[string]any{{"selector": -1, "langid": 1033}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(ConfigKey, tt.entries)
			if _, err := LoadTable(v); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTableWithoutOverrides(t *testing.T) {
	table, err := LoadTable(viper.New())
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if len(table) != 4 {
		t.Errorf("expected built-in table, got %d entries", len(table))
	}
}
