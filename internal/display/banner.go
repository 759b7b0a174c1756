package display

import (
	"fmt"
	"os"

	"github.com/edgrmdna/gaussian-splatting/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  ____ ____        _       _
 / ___/ ___| _ __ | | __ _| |_
| |  _\___ \| '_ \| |/ _`+"`"+` | __|
| |_| |___) | |_) | | (_| | |_
 \____|____/| .__/|_|\__,_|\__|
            |_|   dataset tools
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
