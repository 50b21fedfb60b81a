package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"medical-appointments-api/pkg/response"

	"github.com/gorilla/mux"
)

var errInvalidID = errors.New("invalid id")

// pathID reads a positive integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// normalizer is implemented by request DTOs that trim their input before validation.
type normalizer interface {
	Normalize()
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	return nil
}

// writeDecodeError reports a value of the wrong JSON type against its field;
// any other decode failure is a malformed body.
func writeDecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		response.ValidationError(w, map[string]string{typeErr.Field: typeErr.Field + " " + expectedType(typeErr.Type)})
		return
	}
	response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
}

func expectedType(t reflect.Type) string {
	if t == nil {
		return "is invalid"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.String:
		return "must be a string"
	case reflect.Bool:
		return "must be a boolean"
	case reflect.Slice, reflect.Array:
		return "must be a list"
	default:
		return "is invalid"
	}
}
