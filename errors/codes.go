package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessCode declares that the processing was successful and no
	// error is returned.
	SuccessCode uint32 = 0

	// All unclassified errors that do not provide a code are clubbed
	// under an internal error code and a generic message instead of a
	// detailed error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the error information as consumed by an RPC client.
// Any error that does not provide code information is categorized as an
// error with code 1.
//
// When not running in debug mode all messages of errors that do not provide
// code information are replaced with a generic "internal error". Errors
// without a code are considered internal.
func Info(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessCode, ""
	}

	// Only non-internal error information can be exposed. Any error that
	// does not explicitly expose its state by providing an error code
	// must be silenced.
	if code := Code(err); code != internalCode {
		if debug {
			// Full information formatting might produce a
			// stacktrace.
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}

	// For internal errors hide the original error message and return
	// generic data.
	return internalCode, internalLog
}

type coder interface {
	Code() uint32
}

// Code tests if given error contains an error code and returns the value of
// it if available. This function is testing for the causer interface as well
// and unwraps the error.
func Code(err error) uint32 {
	if errIsNil(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// errIsNil returns true if the value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a special case when
// an error interface holds a nil typed value, which requires reflection.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
