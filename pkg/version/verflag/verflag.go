package verflag

import (
	"fmt"
	"os"

	"labddk/pkg/version"

	flag "github.com/spf13/pflag"
)

var versionFlag *bool

// AddFlags registers the --version flag on the given flag set.
func AddFlags(fs *flag.FlagSet) {
	versionFlag = fs.Bool("version", false, "Print version information and quit")
}

// PrintAndExitIfRequested checks whether --version was passed and, if
// so, prints the version and exits.
func PrintAndExitIfRequested() {
	if versionFlag != nil && *versionFlag {
		fmt.Printf("labddk %s\n", version.Get())
		os.Exit(0)
	}
}
