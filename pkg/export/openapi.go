package export

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DerivedExtension is the schema extension describing how a read-only
// property is computed.
const DerivedExtension = "x-formbuilder-derived"

// OpenAPISchema describes the submission payload of form as an object
// schema. Properties are keyed field<id> and titled with the field label.
func OpenAPISchema(form model.Form) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = form.Name
	for _, field := range form.Fields {
		key := fmt.Sprintf("field%d", field.ID)
		schema.WithProperty(key, fieldSchema(field))
		if field.Required && !field.IsDerived() {
			schema.Required = append(schema.Required, key)
		}
	}
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
	case model.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
	case model.FieldTypeSelect, model.FieldTypeRadio:
		schema = openapi3.NewStringSchema().WithEnum(enumValues(field.Options)...)
	case model.FieldTypeCheckbox:
		schema = openapi3.NewArraySchema().WithItems(
			openapi3.NewStringSchema().WithEnum(enumValues(field.Options)...),
		)
		schema.UniqueItems = true
	case model.FieldTypeDerived:
		schema = openapi3.NewStringSchema()
		schema.ReadOnly = true
		schema.Extensions = map[string]any{
			DerivedExtension: map[string]any{
				"type":    string(field.DerivedType),
				"formula": field.Formula,
				"parents": field.ParentFields,
			},
		}
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = field.Label
	if field.DefaultValue != nil && field.DefaultValue != "" {
		schema.Default = field.DefaultValue
	}

	if schema.Type.Is(openapi3.TypeString) && !field.IsDerived() {
		if n, ok := field.Validation.Bound(model.ValidationRuleMinLength); ok {
			schema.WithMinLength(int64(n))
		}
		if n, ok := field.Validation.Bound(model.ValidationRuleMaxLength); ok {
			schema.WithMaxLength(int64(n))
		}
		switch {
		case field.Validation.Enabled(model.ValidationRuleEmail):
			schema.Format = "email"
		case field.Validation.Enabled(model.ValidationRulePassword):
			schema.Format = "password"
			if schema.MinLength < 8 {
				schema.MinLength = 8
			}
		}
	}
	return schema
}

func enumValues(options []string) []any {
	values := make([]any, 0, len(options))
	for _, option := range options {
		values = append(values, option)
	}
	return values
}

// OpenAPIDocument wraps the submission schema of form in a minimal OpenAPI
// 3 document under components.schemas.
func OpenAPIDocument(form model.Form) *openapi3.T {
	name := "FormSubmission"
	title := form.Name
	if title == "" {
		title = "Untitled Form"
	}
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				name: openapi3.NewSchemaRef("", OpenAPISchema(form)),
			},
		},
	}
}

// MarshalOpenAPI encodes the OpenAPI document of form as indented JSON.
func MarshalOpenAPI(form model.Form) ([]byte, error) {
	data, err := json.MarshalIndent(OpenAPIDocument(form), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode openapi: %w", err)
	}
	return append(data, '\n'), nil
}
