package autofill

import "fmt"

// BlockedContextError is returned when the form lives in an embedded frame the
// engine cannot script into. Instruction tells the user where to trigger the
// fill instead.
type BlockedContextError struct {
	Message     string
	EmbeddedURL string
	Instruction string
}

func (e *BlockedContextError) Error() string {
	return fmt.Sprintf("blocked context: %s: %s", e.Message, e.EmbeddedURL)
}

// FaultError wraps a runtime fault recovered during a fill pass. Writes made
// before the fault are kept.
type FaultError struct {
	Message string
	Cause   error
}

func (e *FaultError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fill fault: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("fill fault: %s", e.Message)
}

func (e *FaultError) Unwrap() error {
	return e.Cause
}
