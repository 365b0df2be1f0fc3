// Package profile holds the table of switchable input-method profiles and
// the selector parsing that picks one of them.
package profile

import (
	"sort"

	"github.com/google/uuid"
)

// SelectorCurrent requests the active profile instead of a switch.
const SelectorCurrent = -1

// SelectorFallback is used when the selector cannot be understood.
const SelectorFallback = 0

// Profile describes one input-method profile by the pair TSF matches on.
type Profile struct {
	Selector int
	Name     string
	CLSID    uuid.UUID
	LangID   uint16
	Label    string
}

// Matches reports whether clsid and langid identify this profile.
func (p Profile) Matches(clsid uuid.UUID, langid uint16) bool {
	return p.CLSID == clsid && p.LangID == langid
}

// Table is an ordered set of profiles keyed by selector.
type Table []Profile

// Lookup returns the profile registered under selector.
func (t Table) Lookup(selector int) (Profile, bool) {
	for _, p := range t {
		if p.Selector == selector {
			return p, true
		}
	}
	return Profile{}, false
}

// Find returns the profile matching clsid and langid, if the table knows it.
func (t Table) Find(clsid uuid.UUID, langid uint16) (Profile, bool) {
	for _, p := range t {
		if p.Matches(clsid, langid) {
			return p, true
		}
	}
	return Profile{}, false
}

// with returns a copy of t where p replaces any entry sharing its selector.
func (t Table) with(p Profile) Table {
	out := make(Table, 0, len(t)+1)
	replaced := false
	for _, existing := range t {
		if existing.Selector == p.Selector {
			out = append(out, p)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Selector < out[j].Selector })
	return out
}

// Profiles registered on the machine this tool was written for.
var (
	English = Profile{
		Selector: 0,
		Name:     "EN",
		CLSID:    uuid.Nil,
		LangID:   1033,
		Label:    "英语键盘",
	}
	Sogou = Profile{
		Selector: 1,
		Name:     "SG",
		CLSID:    uuid.MustParse("E7EA138E-69F8-11D7-A6EA-00065B844310"),
		LangID:   2052,
		Label:    "搜狗拼音",
	}
	MicrosoftPinyin = Profile{
		Selector: 2,
		Name:     "WR",
		CLSID:    uuid.MustParse("81D4E9C9-1D3B-41BC-9E6C-4B40BF79E35E"),
		LangID:   2052,
		Label:    "微软拼音",
	}
	HiEnglish = Profile{
		Selector: 3,
		Name:     "HI",
		CLSID:    uuid.MustParse("E7EA138F-69F8-11D7-EEEE-00065B844310"),
		LangID:   2052,
		Label:    "Hi英文输入法",
	}
)

// DefaultTable returns the built-in four profiles.
func DefaultTable() Table {
	return Table{English, Sogou, MicrosoftPinyin, HiEnglish}
}
