package wadlevel

import (
	"io"
	"log"
)

var logger *log.Logger = log.New(io.Discard, "", log.LstdFlags)

// SetLogger directs the package's diagnostic output to l. The default
// logger discards everything.
func SetLogger(l *log.Logger) {
	logger = l
}
