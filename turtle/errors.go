package turtle

import "fmt"

// UnbalancedBracketError is a pop with no saved state. Index is the position of the offending letter.
type UnbalancedBracketError struct {
	Index int
}

func (e *UnbalancedBracketError) Error() string {
	return fmt.Sprintf("unbalanced bracket: pop at index %d with an empty stack", e.Index)
}

// UnclosedBranchError reports a program that ended with saved states left on the stack
type UnclosedBranchError struct {
	Depth int
}

func (e *UnclosedBranchError) Error() string {
	return fmt.Sprintf("unclosed branch: program ended at depth %d", e.Depth)
}
