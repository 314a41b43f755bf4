package insts

// ExitCode enumerates the process exit statuses of a simulation run.
type ExitCode int

// Exit codes, in the order the reference tool defines them.
const (
	Success ExitCode = iota
	InvalidRegister
	InvalidLabel
	InvalidAddress
	SyntaxError
	MemoryError
)

var exitMessages = map[ExitCode]string{
	InvalidRegister: "Invalid register provided or syntax error in providing register",
	InvalidLabel:    "Label used not defined or defined too many times",
	InvalidAddress:  "Unaligned or invalid memory address specified",
	SyntaxError:     "Syntax error encountered",
	MemoryError:     "Memory limit exceeded",
}

// Message returns the diagnostic text for the exit code, or an empty
// string for Success.
func (c ExitCode) Message() string {
	return exitMessages[c]
}

// Error is a simulation fault carrying the exit code the process should
// terminate with.
type Error struct {
	Code   ExitCode
	Detail string
}

// NewError creates an Error with the given code and detail.
func NewError(code ExitCode, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code.Message()
	}
	return e.Code.Message() + ": " + e.Detail
}
