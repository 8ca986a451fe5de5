package qcsv

import "context"

// Approver handles user interaction for approval workflows,
// particularly for replacing tables in an existing store.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the destination name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before existing tables in
	// destination are dropped and recreated.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, destination string) (bool, error)
}
