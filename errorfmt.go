package logbase

import (
	stderrs "errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	smerrors "github.com/Station-Manager/errors"
)

// NormalizedError is the canonical shape of an error-derived record.
// Fields always carries a non-empty "stack" entry.
type NormalizedError struct {
	Message string
	Fields  Fields
}

// Record returns a record carrying the normalized message and a copy of its fields.
func (n NormalizedError) Record() Record {
	return newRecord(n.Message, n.Fields)
}

// Stack returns the normalized stack trace.
func (n NormalizedError) Stack() string {
	s, _ := n.Fields[StackKey].(string)
	return s
}

// ErrorObject is an error received in serialized form, typically decoded from
// JSON at a process boundary. Name and Stack are optional.
type ErrorObject struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// namer is implemented by errors that carry a type name of their own.
type namer interface {
	Name() string
}

// stacker is implemented by errors that captured a stack trace when created.
type stacker interface {
	Stack() string
}

// FormatError normalizes v into a NormalizedError. It never fails:
//   - ErrorObject, *ErrorObject or a decoded map with a string "message":
//     "{name}: {message}" when a name is present, the bare message otherwise
//   - error: "{name}: {err.Error()}", name from a Name() method or "Error";
//     wrapped errors add the error chain fields
//   - anything else: fmt.Sprint(v)
//
// The stack is taken from the input when it has one and captured at the
// call site otherwise.
func FormatError(v any) NormalizedError {
	switch in := v.(type) {
	case ErrorObject:
		return formatObject(in)
	case *ErrorObject:
		if in != nil {
			return formatObject(*in)
		}
	case map[string]any:
		if obj, ok := errorObjectFromMap(in); ok {
			return formatObject(obj)
		}
	case error:
		// A typed nil such as (*MyErr)(nil) cannot be asked for its message.
		if !isNilValue(in) {
			return formatGoError(in)
		}
	}
	return NormalizedError{
		Message: fmt.Sprint(v),
		Fields:  Fields{StackKey: captureStack()},
	}
}

func formatObject(obj ErrorObject) NormalizedError {
	msg := obj.Message
	if obj.Name != emptyString {
		msg = obj.Name + ": " + obj.Message
	}
	stack := obj.Stack
	if stack == emptyString {
		stack = captureStack()
	}
	return NormalizedError{Message: msg, Fields: Fields{StackKey: stack}}
}

func formatGoError(err error) NormalizedError {
	name := defaultErrorName
	if n, ok := err.(namer); ok && n.Name() != emptyString {
		name = n.Name()
	}

	var stack string
	var st stacker
	if stderrs.As(err, &st) && !isNilValue(st) {
		stack = st.Stack()
	}
	if stack == emptyString {
		stack = captureStack()
	}

	fields := Fields{StackKey: stack}
	chain, ops, root, rootOp := buildErrorChain(err)
	if len(chain) > 1 {
		fields["error_chain"] = chain
		fields["error_root"] = root
		fields["error_history"] = joinChain(chain)
		fields["error_ops"] = ops
		if rootOp != emptyString {
			fields["error_root_op"] = rootOp
		}
	}

	return NormalizedError{Message: name + ": " + err.Error(), Fields: fields}
}

// errorObjectFromMap reads an ErrorObject out of a decoded JSON object.
// ok is false when there is no string "message" entry.
func errorObjectFromMap(m map[string]any) (obj ErrorObject, ok bool) {
	obj.Message, ok = m["message"].(string)
	if !ok {
		return ErrorObject{}, false
	}
	obj.Name, _ = m["name"].(string)
	obj.Stack, _ = m["stack"].(string)
	return obj, true
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// DetailedError.Cause() is preferred over errors.Unwrap. Depth is bounded and
// repeated messages stop the walk.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for !isNilValue(err) && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, emptyString)
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}

const maxStackFrames = 32

// captureStack renders the calling goroutine's stack, skipping the logbase
// frames so the trace starts where the error was formatted.
func captureStack() string {
	pcs := make([]uintptr, maxStackFrames)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, packagePath+".") || b.Len() > 0 {
			b.WriteString(frame.Function)
			b.WriteString("\n\t")
			b.WriteString(frame.File)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(frame.Line))
			b.WriteByte('\n')
		}
		if !more {
			break
		}
	}
	if b.Len() == 0 {
		return "<stack unavailable>"
	}
	return b.String()
}
