// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
)

// Error represents an error in the system.
type Error struct {
	Code     ErrCode `json:"code"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Errorf constructs an error based on an error message.
func Errorf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web.Encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	type response struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	resp := response{
		Code:    e.Code.String(),
		Message: e.Message,
	}

	data, err := json.Marshal(resp)

	return data, "application/json", err
}

// HTTPStatus implements the web HTTPStatus interface so the code can be
// used to set the status code of the response.
func (e *Error) HTTPStatus() int {
	return httpStatus[e.Code]
}

// IsError tests the concrete error is of the Error type.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns a copy of the Error pointer.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return &Error{}
	}

	return er
}
