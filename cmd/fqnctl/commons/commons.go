package commons

import (
	"fmt"
	"os"

	"github.com/cachekit/treekey/pkg/logging"
	"github.com/go-logr/logr"
)

const FlagNameLogLevel = "log-level"

// FlagLogLevel is bound to the persistent --log-level flag of the root command.
var FlagLogLevel string

func ErrFatalf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// Logger returns a logger writing to stderr at the level named by --log-level.
func Logger() logr.Logger {
	log, err := logging.New(os.Stderr, FlagLogLevel)
	if err != nil {
		ErrFatalf("creating logger: %v", err)
	}
	return log.WithValues(logging.Process, "fqnctl")
}
