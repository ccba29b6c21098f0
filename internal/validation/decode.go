package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/models"
)

var (
	unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

	// Messages for types that parse their own JSON.
	typeMessages = map[reflect.Type]string{
		reflect.TypeOf(decimal.Decimal{}): "a valid number is required",
		reflect.TypeOf(models.Date{}):     fmt.Sprintf("date has wrong format, use %s", models.DateLayout),
	}
)

// DecodeJSON unmarshals a request body into v, which must point to a struct.
// An empty body decodes as an empty object. Values of the wrong type or
// format are reported per field, keyed like Struct keys them; a body that is
// not a JSON object is a plain INVALID_REQUEST.
func DecodeJSON(body []byte, v any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	err := json.Unmarshal(body, v)
	if err == nil {
		return nil
	}
	if body[0] != '{' || !json.Valid(body) {
		return apperror.Wrap(apperror.CodeInvalidRequest, "invalid request body", err)
	}

	fields := apperror.FieldErrors{}
	collectDecodeErrors(fields, "", body, reflect.TypeOf(v))
	if len(fields) == 0 {
		return apperror.Wrap(apperror.CodeInvalidRequest, "invalid request body", err)
	}
	return apperror.Validation(fields)
}

// collectDecodeErrors decodes raw into t piece by piece, recording the path
// of every value that does not fit.
func collectDecodeErrors(fields apperror.FieldErrors, path string, raw []byte, t reflect.Type) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return
	}

	switch {
	case reflect.PointerTo(t).Implements(unmarshalerType):
	case t.Kind() == reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			fields.Add(path, "invalid data, expected an object")
			return
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if !f.IsExported() || name == "" {
				continue
			}
			if val, ok := obj[name]; ok {
				collectDecodeErrors(fields, joinPath(path, name), val, f.Type)
			}
		}
		return
	case t.Kind() == reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			fields.Add(path, "expected a list of items")
			return
		}
		for i, item := range items {
			collectDecodeErrors(fields, fmt.Sprintf("%s[%d]", path, i), item, t.Elem())
		}
		return
	}

	if err := json.Unmarshal(raw, reflect.New(t).Interface()); err != nil {
		fields.Add(path, invalidValueMessage(t))
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func invalidValueMessage(t reflect.Type) string {
	if msg, ok := typeMessages[t]; ok {
		return msg
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "a valid integer is required"
	case reflect.Float32, reflect.Float64:
		return "a valid number is required"
	case reflect.String:
		return "not a valid string"
	case reflect.Bool:
		return "must be a valid boolean"
	default:
		return "invalid value"
	}
}
