package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/qcsv/internal/tui"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and automatically approves after the countdown,
// used when the --force flag is provided.
type ForcedApprover struct {
	verbose bool
	color   bool
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) qcsv.Approver {
	return &ForcedApprover{
		verbose: verbose,
		color:   tui.ColorEnabled(os.Stderr),
		output:  os.Stderr,
		sleepFn: time.Sleep,
	}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, destination string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, tui.Paint(tui.ErrorStyle, "DANGER: --overwrite --force", a.color))
	fmt.Fprintf(a.output, "Every target table in '%s' will be dropped and recreated.\n", destination)
	fmt.Fprintln(a.output)

	countdownSeconds := int(qcsv.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rDropping in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(1 * time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.output, "\r%s Proceeding with table overwrite...                              \n",
		tui.Paint(tui.SuccessStyle, tui.SymbolCheck, a.color))
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ qcsv.Approver = (*ForcedApprover)(nil)
