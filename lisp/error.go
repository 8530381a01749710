package lisp

import (
	"errors"
	"fmt"
)

// Condition classifies an ErrorVal.
type Condition uint8

// Possible Condition values
const (
	RuntimeCondition Condition = iota
	SyntaxCondition
	NameCondition
)

var conditionStrings = []string{
	RuntimeCondition: "runtime-error",
	SyntaxCondition:  "syntax-error",
	NameCondition:    "name-error",
}

func (c Condition) String() string {
	if int(c) >= len(conditionStrings) {
		return conditionStrings[RuntimeCondition]
	}
	return conditionStrings[c]
}

// Sentinel errors matching any ErrorVal with the corresponding condition
// through errors.Is.
var (
	ErrRuntime = &ErrorVal{Condition: RuntimeCondition}
	ErrSyntax  = &ErrorVal{Condition: SyntaxCondition}
	ErrName    = &ErrorVal{Condition: NameCondition}
)

// ErrorVal is a condition raised while reading or evaluating an expression.
// Raising a condition aborts the whole top-level command.  Stack is a copy of
// the call stack at the point the condition was raised, when one was
// available.
type ErrorVal struct {
	Condition Condition
	Msg       string
	Stack     *CallStack
}

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return e.Condition.String() + ": " + e.Msg
}

// Is reports whether target is the sentinel for e's condition.
func (e *ErrorVal) Is(target error) bool {
	t, ok := target.(*ErrorVal)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Condition == e.Condition
}

// ErrorConditionf returns an ErrorVal with the given condition and a
// formatted message.
func ErrorConditionf(c Condition, format string, v ...interface{}) *ErrorVal {
	return &ErrorVal{
		Condition: c,
		Msg:       fmt.Sprintf(format, v...),
	}
}

// ConditionOf returns the condition of the ErrorVal in err's chain.
// ConditionOf returns false if err does not wrap an ErrorVal.
func ConditionOf(err error) (Condition, bool) {
	var lerr *ErrorVal
	if !errors.As(err, &lerr) {
		return 0, false
	}
	return lerr.Condition, true
}

// berrf returns a runtime condition raised by the builtin named fun.
func berrf(fun string, format string, v ...interface{}) *ErrorVal {
	return ErrorConditionf(RuntimeCondition, "%s: %s", fun, fmt.Sprintf(format, v...))
}

// serrf returns a syntax condition raised by the special operator named op.
func serrf(op string, format string, v ...interface{}) *ErrorVal {
	return ErrorConditionf(SyntaxCondition, "%s: %s", op, fmt.Sprintf(format, v...))
}
