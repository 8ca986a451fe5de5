package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/qcsv/internal/tui"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the destination
// to confirm dropping existing tables.
type InteractiveApprover struct {
	verbose bool
	color   bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading stdin
// and prompting on stderr.
func NewInteractiveApprover(verbose bool) qcsv.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		color:   tui.ColorEnabled(os.Stderr),
		input:   os.Stdin,
		output:  os.Stderr,
	}
}

// RequestApproval prompts the user to type the destination to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, destination string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s You are about to DROP and RECREATE tables in '%s'\n",
		tui.Paint(tui.WarningStyle, "WARNING:", a.color), destination)
	fmt.Fprintln(a.output, "This will permanently delete the existing data in those tables!")
	fmt.Fprintf(a.output, "\nTo confirm, type '%s' and press Enter: ", destination)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == destination {
			fmt.Fprintf(a.output, "%s Confirmed. Proceeding with table overwrite...\n",
				tui.Paint(tui.SuccessStyle, tui.SymbolCheck, a.color))
			return true, nil
		}
		fmt.Fprintf(a.output, "%s Input '%s' does not match '%s'. Operation cancelled.\n",
			tui.Paint(tui.ErrorStyle, tui.SymbolCross, a.color), input, destination)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ qcsv.Approver = (*InteractiveApprover)(nil)
