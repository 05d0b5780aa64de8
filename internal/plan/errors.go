package plan

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema matches every *SchemaError via errors.Is.
	ErrSchema = errors.New("invalid plan schema")

	// ErrLoad matches every *LoadError via errors.Is.
	ErrLoad = errors.New("unable to load plan")
)

// Schema error reasons.
const (
	ReasonNotSequence       = "not a sequence"
	ReasonEntryNotObject    = "entry not an object"
	ReasonMissingField      = "missing field"
	ReasonNotNumeric        = "percentage not numeric"
	ReasonOutOfRange        = "percentage out of range"
	ReasonNameNotString     = "name not a string"
	ReasonEmptyName         = "empty name"
	ReasonFieldNotString    = "field not a string"
	ReasonMalformedSource   = "malformed source"
	ReasonSourceNotFound    = "not found"
	ReasonSourceUnreadable  = "unreadable"
	ReasonSelectorNoMatches = "selector matched nothing"
)

// SchemaError reports the first structural problem found in a plan. Index is
// -1 when the problem concerns the plan as a whole.
type SchemaError struct {
	Reason string
	Index  int
	Field  string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("plan %s", e.Reason)
	case e.Field != "" && (e.Reason == ReasonMissingField || e.Reason == ReasonFieldNotString):
		return fmt.Sprintf("plan entry %d: %s: %s", e.Index, e.Reason, e.Field)
	default:
		return fmt.Sprintf("plan entry %d: %s", e.Index, e.Reason)
	}
}

// Is lets errors.Is(err, ErrSchema) match.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// LoadError reports that no decodable plan structure could be obtained.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	msg := e.Reason
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrLoad) match.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
