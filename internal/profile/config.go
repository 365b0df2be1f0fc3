package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// ConfigKey is the configuration key holding profile overrides.
const ConfigKey = "profiles"

type entry struct {
	Selector *int   `mapstructure:"selector"`
	Name     string `mapstructure:"name"`
	CLSID    string `mapstructure:"clsid"`
	LangID   string `mapstructure:"langid"`
	Label    string `mapstructure:"label"`
}

// LoadTable returns the built-in table with any entries under "profiles" in
// v laid over it. An entry replaces the built-in profile that has the same
// selector, or adds a new one.
func LoadTable(v *viper.Viper) (Table, error) {
	t := DefaultTable()
	if v == nil || !v.IsSet(ConfigKey) {
		return t, nil
	}

	var entries []entry
	if err := v.UnmarshalKey(ConfigKey, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ConfigKey, err)
	}

	for i, e := range entries {
		p, err := e.profile()
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", ConfigKey, i, err)
		}
		t = t.with(p)
	}
	return t, nil
}

func (e entry) profile() (Profile, error) {
	if e.Selector == nil {
		return Profile{}, fmt.Errorf("selector is required")
	}
	if *e.Selector < 0 {
		return Profile{}, fmt.Errorf("selector must be non-negative, got %d", *e.Selector)
	}

	clsid := uuid.Nil
	if s := strings.TrimSpace(e.CLSID); s != "" {
		var err error
		if clsid, err = uuid.Parse(s); err != nil {
			return Profile{}, fmt.Errorf("invalid clsid %q: %w", e.CLSID, err)
		}
	}

	langid, err := ParseLangID(e.LangID)
	if err != nil {
		return Profile{}, err
	}

	name := e.Name
	if name == "" {
		name = strconv.Itoa(*e.Selector)
	}
	label := e.Label
	if label == "" {
		label = name
	}

	return Profile{
		Selector: *e.Selector,
		Name:     name,
		CLSID:    clsid,
		LangID:   langid,
		Label:    label,
	}, nil
}

// ParseLangID accepts a LANGID in decimal ("2052") or hex ("0x0804").
func ParseLangID(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("langid is required")
	}
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid langid %q: %w", s, err)
	}
	return uint16(n), nil
}
