package application

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const applicantSchemaURL = "https://installmart.pk/schemas/applicant.json"

var (
	schemasOnce sync.Once
	schemas     map[model.ApplicationKind]*gojsonschema.Schema
	schemasErr  error
)

func compileSchemas() {
	schemas = make(map[model.ApplicationKind]*gojsonschema.Schema, len(model.ApplicationKinds))

	applicant, err := schemaFS.ReadFile("schemas/applicant.json")
	if err != nil {
		schemasErr = err
		return
	}

	for _, kind := range model.ApplicationKinds {
		raw, err := schemaFS.ReadFile("schemas/" + string(kind) + ".json")
		if err != nil {
			schemasErr = err
			return
		}

		loader := gojsonschema.NewSchemaLoader()
		if err := loader.AddSchema(applicantSchemaURL, gojsonschema.NewBytesLoader(applicant)); err != nil {
			schemasErr = fmt.Errorf("applicant schema: %w", err)
			return
		}
		schema, err := loader.Compile(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			schemasErr = fmt.Errorf("%s schema: %w", kind, err)
			return
		}
		schemas[kind] = schema
	}
}

// ValidateSchema checks payload against the JSON schema for kind: required
// fields, CNIC and phone formats, and numeric bounds.
func ValidateSchema(kind model.ApplicationKind, payload any) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return fmt.Errorf("failed to load application schemas: %w", schemasErr)
	}

	schema, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("%w: unknown application kind %q", common.ErrInvalidPayload, kind)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		// allOf failures repeat the nested applicant errors.
		if desc.Type() == "number_all_of" {
			continue
		}
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidPayload, strings.Join(errs, "; "))
}
