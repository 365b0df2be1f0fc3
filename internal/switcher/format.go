package switcher

import (
	"fmt"
	"io"
	"strings"

	"github.com/connorhough/imeswitch/internal/tsf"
)

var rule = strings.Repeat("*", 42)

// writeBlock prints one profile in the block layout used by both current
// and list.
func writeBlock(w io.Writer, label string, p tsf.InstalledProfile) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, label)
	fmt.Fprintf(w, "CLSID: %s\n", tsf.FormatGUID(p.CLSID))
	fmt.Fprintf(w, "LangID: %d\n", p.LangID)
	fmt.Fprintf(w, "Profile GUID: %s\n", tsf.FormatGUID(p.GUIDProfile))
	fmt.Fprintln(w, rule)
}
