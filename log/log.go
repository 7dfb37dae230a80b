package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Not as noisy as tracing, which is mostly for debugging the lot matching.
var VerboseEnabled = false

func Fverbosef(w io.Writer, format string, v ...interface{}) {
	if VerboseEnabled {
		fmt.Fprintf(w, format, v...)
	}
}

func Verbosef(format string, v ...interface{}) {
	Fverbosef(os.Stderr, format, v...)
}

// Where trace lines go. Replaced in tests.
var TraceWriter io.Writer = os.Stderr

var loadTraceOnce sync.Once

// Tags enabled. Value ignored
var TraceSetting = map[string]bool{}

// Supply the TRACE environment variable with a comma-separated list of
// trace tags to enable, eg. TRACE=fifo,csv
func LoadTraceSetting() {
	for _, tag := range strings.Split(os.Getenv("TRACE"), ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			TraceSetting[tag] = true
		}
	}
}

func TraceEnabled(tag string) bool {
	loadTraceOnce.Do(LoadTraceSetting)
	return TraceSetting[tag]
}

func Tracef(tag string, format string, v ...interface{}) {
	if TraceEnabled(tag) {
		fmt.Fprintf(TraceWriter, "TR "+tag+" "+format+"\n", v...)
	}
}

type ErrorPrinter interface {
	Ln(v ...interface{})
	F(format string, v ...interface{})
}

// The default ErrorPrinter
type StderrErrorPrinter struct{}

func (p *StderrErrorPrinter) Ln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}

func (p *StderrErrorPrinter) F(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}

// BufErrorPrinter collects errors in memory, for callers that present them
// somewhere other than stderr.
type BufErrorPrinter struct {
	Buf strings.Builder
}

func (p *BufErrorPrinter) Ln(v ...interface{}) {
	fmt.Fprintln(&p.Buf, v...)
}

func (p *BufErrorPrinter) F(format string, v ...interface{}) {
	fmt.Fprintf(&p.Buf, format, v...)
}
