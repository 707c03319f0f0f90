package logging

import (
	"io"
	"log"
	"os"
)

func NewStdLogger(prefix string) *log.Logger {
	return log.New(os.Stdout, prefix, log.LstdFlags|log.LUTC)
}

// NewStdLoggerTo is the same logger writing to w; tests use it to capture
// output.
func NewStdLoggerTo(w io.Writer, prefix string) *log.Logger {
	return log.New(w, prefix, log.LstdFlags|log.LUTC)
}
