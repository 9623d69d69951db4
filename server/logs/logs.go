/******************************************************************************
 *
 *  Description :
 *    Package exposes info, warning and error loggers.
 *
 *****************************************************************************/
package logs

import (
	"log"
	"os"
)

var (
	// Info is the logger for informational messages.
	Info *log.Logger
	// Warn is the logger for recoverable problems.
	Warn *log.Logger
	// Err is the logger for unrecoverable errors.
	Err *log.Logger
)

// Init initializes the loggers.
func Init(out *os.File, flags int) {
	Info = log.New(out, "I", flags)
	Warn = log.New(out, "W", flags)
	Err = log.New(out, "E", flags)
}

func init() {
	// Default loggers so packages can log before main configures them.
	Init(os.Stdout, log.LstdFlags|log.Lshortfile)
}
