package multibranch

import (
	"fmt"
	"os"
)

// Diagnostics receives non-fatal notices emitted while building a document,
// e.g. about skipped scm entries. Notices are purely observational; they
// never change the generated output.
type Diagnostics interface {
	Noticef(format string, args ...interface{})
}

type stderrDiagnostics struct{}

func (stderrDiagnostics) Noticef(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// StderrDiagnostics writes notices to standard error, one per line.
var StderrDiagnostics Diagnostics = stderrDiagnostics{}
