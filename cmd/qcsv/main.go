package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/vvka-141/qcsv/internal/cli"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

func main() {
	os.Exit(run(os.Stderr))
}

// run executes the command line and returns the process exit status.
// A panic is reported with its stack trace and exits with qcsv.ExitPanic.
func run(stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "panic: %v\n%s\n", r, debug.Stack())
			code = qcsv.ExitPanic
		}
	}()

	if os.Getenv("QCSV_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	return qcsv.ExitCodeForError(cli.Execute())
}
