package rnng

import "fmt"

// IllegalActionError reports an action that violates the legality
// predicate. Decoders mask illegal actions before choosing, so seeing this
// error means a decoder or scorer integration bug, not a runtime condition
// worth retrying.
type IllegalActionError struct {
	Action string
	State  string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s in state %s", e.Action, e.State)
}

// EmptyStructureError reports a pop beyond the sentinel of a stack, buffer
// or history. It indicates a termination-predicate bug.
type EmptyStructureError struct {
	Structure string
}

func (e *EmptyStructureError) Error() string {
	return fmt.Sprintf("pop from empty %s", e.Structure)
}

// MalformedOracleError reports an oracle action sequence that does not
// form a legal, terminating derivation for its sentence.
type MalformedOracleError struct {
	Index  int // sentence index within the batch, -1 if unknown
	Reason string
}

func (e *MalformedOracleError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed oracle for sentence %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("malformed oracle: %s", e.Reason)
}

// SampleCountMismatchError reports that fewer proposal samples were
// available than requested.
type SampleCountMismatchError struct {
	Want, Got int
}

func (e *SampleCountMismatchError) Error() string {
	return fmt.Sprintf("proposal sample count mismatch: want %d, got %d", e.Want, e.Got)
}
