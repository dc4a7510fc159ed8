// Package validation valida bodies JSON contra JSON Schema antes de que
// lleguen a los servicios. Los errores salen por campo.
package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"animal-shelter/internal/apperr"

	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20

type Schema struct {
	schema *gojsonschema.Schema
}

// MustCompile falla al arrancar si el schema está mal escrito.
func MustCompile(schemaJSON string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("validation: invalid schema: %v", err))
	}
	return &Schema{schema: s}
}

// Decode lee el body, lo valida y lo deserializa en dst.
// Body vacío se trata como {}.
func (s *Schema) Decode(body io.Reader, dst any) error {
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return apperr.Validation("could not read request body", nil)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		raw = []byte("{}")
	}
	if !json.Valid(raw) {
		return apperr.Validation("invalid json", nil)
	}

	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return apperr.Validation("invalid json", nil)
	}
	if !res.Valid() {
		return apperr.Validation("invalid input", fieldErrors(res.Errors()))
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return apperr.Validation("invalid json", nil)
	}
	return nil
}

func fieldErrors(errs []gojsonschema.ResultError) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		field := e.Field()
		// "required" se reporta sobre el padre; lo movemos al campo faltante.
		if e.Type() == "required" {
			if p, ok := e.Details()["property"].(string); ok {
				if field == gojsonschema.STRING_CONTEXT_ROOT {
					field = p
				} else {
					field = field + "." + p
				}
			}
		}
		if field == gojsonschema.STRING_CONTEXT_ROOT {
			field = "_"
		}
		out[field] = append(out[field], e.Description())
	}
	return out
}
