// Package validation checks raw questionnaire answers.
// A failed check is a normal result carried as a *FieldError, never a Go error;
// Go errors are reserved for broken contracts between caller and validator.
package validation

// ErrorKind classifies a field error
type ErrorKind string

const (
	KindNotEntered  ErrorKind = "not_entered"
	KindInvalid     ErrorKind = "invalid"
	KindDateFormat  ErrorKind = "date_format"
	KindDateInvalid ErrorKind = "date_invalid"
	KindDateFuture  ErrorKind = "date_future"
	KindFeeFormat   ErrorKind = "fee_format"
	KindUnitFormat  ErrorKind = "unit_format"
	KindBoolFormat  ErrorKind = "bool_format"
)

// Messages shown for each kind
const (
	MsgNotEntered  = "not entered"
	MsgInvalid     = "is not valid"
	MsgDateFormat  = "must be a date in the format dd/mm/yyyy"
	MsgDateInvalid = "must be a real date"
	MsgDateFuture  = "must be today or in the past"
	MsgFeeFormat   = "must be an amount in pounds and pence, for example 12.50"
	MsgUnitFormat  = "must be a whole number from 0 to 9"
	MsgBoolFormat  = "must be yes or no"
)

// FieldError is a validation failure for one field
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}

func newFieldError(field string, kind ErrorKind, msg string) *FieldError {
	return &FieldError{Field: field, Kind: kind, Message: msg}
}

// Errors aggregates field errors in display order with lookup by field
type Errors struct {
	list    []*FieldError
	byField map[string]*FieldError
}

// Add records fe; nil is ignored and the first error per field wins
func (e *Errors) Add(fe *FieldError) {
	if fe == nil {
		return
	}
	if e.byField == nil {
		e.byField = make(map[string]*FieldError)
	}
	if _, dup := e.byField[fe.Field]; dup {
		return
	}
	e.list = append(e.list, fe)
	e.byField[fe.Field] = fe
}

// Empty reports whether no errors were recorded
func (e *Errors) Empty() bool {
	return len(e.list) == 0
}

// List returns errors in the order they were added
func (e *Errors) List() []*FieldError {
	return e.list
}

// Map returns errors keyed by field
func (e *Errors) Map() map[string]*FieldError {
	out := make(map[string]*FieldError, len(e.byField))
	for k, v := range e.byField {
		out[k] = v
	}
	return out
}

// Get returns the error for field, if any
func (e *Errors) Get(field string) (*FieldError, bool) {
	fe, ok := e.byField[field]
	return fe, ok
}
