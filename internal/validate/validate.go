// Package validate implements pure, transport-independent checking of write
// payloads against an entity's field descriptions. It performs no I/O; the
// caller rejects the request before the store is touched.
package validate

import (
	"fmt"
	"strconv"

	"plant-monitor-backend/internal/apperr"
	"plant-monitor-backend/internal/model"
	"plant-monitor-backend/internal/schema"
)

// Payload checks a write payload against fields and returns the accepted
// values keyed by storage column. With partial set, absent fields are
// ignored (partial-update semantics); otherwise every required field must be
// present. All failures are collected, in field-declaration order, and
// payload keys that match no field are silently dropped.
func Payload(payload map[string]any, fields []schema.Field, partial bool) (map[string]any, []apperr.FieldError) {
	columns := make(map[string]any, len(payload))
	var errs []apperr.FieldError

	for _, f := range fields {
		raw, present := payload[f.Name]
		if !present || raw == nil {
			if f.Required && !partial {
				errs = append(errs, apperr.FieldError{Field: f.Name, Message: f.Name + " is required"})
			}
			continue
		}

		v, err := coerce(raw, f)
		if err != nil {
			errs = append(errs, apperr.FieldError{Field: f.Name, Message: err.Error()})
			continue
		}
		columns[f.Column] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return columns, nil
}

func coerce(raw any, f schema.Field) (any, error) {
	switch f.Kind {
	case schema.KindString:
		s, ok := raw.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%s must be a non-empty string", f.Name)
		}
		return s, nil

	case schema.KindNumber:
		switch n := raw.(type) {
		case float64:
			return n, nil
		case string:
			// Numeric strings are accepted and coerced.
			parsed, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a number", f.Name)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("%s must be a number", f.Name)
		}

	case schema.KindReference:
		s, ok := raw.(string)
		if !ok || !model.IsValidID(s) {
			return nil, fmt.Errorf("%s must be a valid document identifier", f.Name)
		}
		return s, nil
	}

	return nil, fmt.Errorf("%s has an unsupported field kind", f.Name)
}
