package schemas

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/go-playground/validator/v10"
)

// FormKey carries errors that do not belong to a single field.
const FormKey = "_form"

type ParseResult[T any] struct {
	Success bool
	Data    *T
	Errors  helpers.FieldErrors
}

// Schema turns raw input into a validated model value.
type Schema[T any] interface {
	SafeParse(input any) ParseResult[T]
	// Columns lists the model fields an update writes.
	Columns() []string
}

// FormSchema decodes input into the form F, normalizes it, checks the
// validate tags, runs Refine for cross-field rules and builds T.
type FormSchema[F any, T any] struct {
	Validate  *validator.Validate
	Normalize func(*F)
	Refine    func(*F) helpers.FieldErrors
	Build     func(*F) *T
	Fields    []string
}

func (s *FormSchema[F, T]) Columns() []string {
	out := make([]string, len(s.Fields))
	copy(out, s.Fields)
	return out
}

func (s *FormSchema[F, T]) SafeParse(input any) ParseResult[T] {
	form, err := decodeForm[F](input)
	if err != nil {
		return ParseResult[T]{Errors: helpers.FieldErrors{FormKey: "Invalid input: " + err.Error()}}
	}
	if s.Normalize != nil {
		s.Normalize(form)
	}

	if err := s.Validate.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ParseResult[T]{Errors: helpers.FormatValidationErrors(validationErrors)}
		}
		return ParseResult[T]{Errors: helpers.FieldErrors{FormKey: err.Error()}}
	}

	if s.Refine != nil {
		if errs := s.Refine(form); len(errs) > 0 {
			return ParseResult[T]{Errors: errs}
		}
	}

	return ParseResult[T]{Success: true, Data: s.Build(form)}
}

// decodeForm accepts F, *F, raw JSON or any JSON-marshalable value such as a
// map. The result is always a fresh copy.
func decodeForm[F any](input any) (*F, error) {
	form := new(F)
	switch v := input.(type) {
	case nil:
		return nil, errors.New("empty input")
	case F:
		*form = v
		return form, nil
	case *F:
		if v == nil {
			return nil, errors.New("empty input")
		}
		*form = *v
		return form, nil
	case []byte:
		if err := json.Unmarshal(v, form); err != nil {
			return nil, fmt.Errorf("malformed JSON: %w", err)
		}
		return form, nil
	case json.RawMessage:
		if err := json.Unmarshal(v, form); err != nil {
			return nil, fmt.Errorf("malformed JSON: %w", err)
		}
		return form, nil
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, form); err != nil {
		return nil, fmt.Errorf("unexpected shape: %w", err)
	}
	return form, nil
}
