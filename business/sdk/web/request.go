package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Decoder defines behavior to provide custom decoding from a byte slice.
type Decoder interface {
	Decode(data []byte) error
}

type validator interface {
	Validate() error
}

// Param returns the web call parameters from the request.
func Param(r *http.Request, key string) string {
	return r.PathValue(key)
}

// Decode reads the body of an HTTP request looking for a JSON document. The
// body is decoded into the provided value. If the provided value implements
// a Validate function, it is executed.
func Decode(r *http.Request, v Decoder) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("unable to read payload: %w", err)
	}

	if len(data) == 0 {
		data = []byte("{}")
	}

	if err := v.Decode(data); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if v, ok := any(v).(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// DecodeForm reads an HTTP request carrying an urlencoded form and decodes it
// into the provided value using its json field names. Some payment providers
// post form data rather than JSON documents.
func DecodeForm(r *http.Request, v Decoder) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("unable to parse form: %w", err)
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("unable to encode form: %w", err)
	}

	if err := v.Decode(data); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if v, ok := any(v).(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}
