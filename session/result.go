package session

import "fmt"

// Kind classifies the outcome of a controller operation.
type Kind string

const (
	// KindOK is a successful operation.
	KindOK Kind = "ok"
	// KindPrecondition is a reported, recoverable refusal: missing fields,
	// missing executable, or a server already attached.
	KindPrecondition Kind = "precondition"
	// KindEnvironment means the host lacks something the operation needs,
	// such as an IPv4 adapter.
	KindEnvironment Kind = "environment"
	// KindPicker means the folder picker returned no selection.
	KindPicker Kind = "picker"
	// KindProcess means the operating system refused to start or kill the
	// child, or the child exited on its own.
	KindProcess Kind = "process"
)

// Result is the outcome of one operation.
type Result struct {
	Kind   Kind
	Detail string
}

// OK returns a successful result.
func OK(detail string) Result { return Result{Kind: KindOK, Detail: detail} }

// Fail returns a result of the given kind with a formatted detail.
func Fail(kind Kind, format string, args ...any) Result {
	return Result{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Failed reports whether the result is anything other than KindOK.
func (r Result) Failed() bool {
	return r.Kind != "" && r.Kind != KindOK
}

func (r Result) String() string {
	return r.Detail
}
