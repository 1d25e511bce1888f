// Package validation checks incoming digest payloads against embedded JSON
// Schemas before they reach the renderer. The convert API is strict like the
// original request contract; feed files read from disk are looser so hand
// written date.txt files keep working.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// convertSchema mirrors the original request contract: every article needs
// title, summary, and url, and unknown fields are rejected.
const convertSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "articles": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "summary": {"type": "string"},
          "url": {"type": "string"}
        },
        "required": ["title", "summary", "url"],
        "additionalProperties": false
      }
    }
  },
  "required": ["articles"],
  "additionalProperties": false
}`

// feedFileSchema validates feed files loaded from disk. Only title is
// mandatory; summary and url default to empty like the CLI always treated
// them.
const feedFileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "properties": {
      "title": {"type": "string", "minLength": 1},
      "summary": {"type": "string"},
      "url": {"type": "string"}
    },
    "required": ["title"]
  }
}`

var (
	compileOnce   sync.Once
	compiledFeed  *jsonschema.Schema
	compiledConv  *jsonschema.Schema
	compileErrMem error
)

func compiled() (*jsonschema.Schema, *jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledConv, compileErrMem = compileSchema("convert.json", convertSchema)
		if compileErrMem != nil {
			return
		}
		compiledFeed, compileErrMem = compileSchema("feed.json", feedFileSchema)
	})
	if compileErrMem != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, compileErrMem)
	}
	return compiledConv, compiledFeed, nil
}

// ValidateConvertPayload checks a decoded convert request body.
func ValidateConvertPayload(payload any) error {
	conv, _, err := compiled()
	if err != nil {
		return err
	}
	return validate(conv, payload)
}

// ValidateFeedPayload checks a decoded feed file payload.
func ValidateFeedPayload(payload any) error {
	_, feedSchema, err := compiled()
	if err != nil {
		return err
	}
	return validate(feedSchema, payload)
}

// ValidateFeedBytes unmarshals raw JSON and validates it as a feed file.
func ValidateFeedBytes(data []byte) error {
	var payload any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return &PayloadValidationError{
			Issues: []ValidationIssue{{Message: fmt.Sprintf("invalid JSON: %v", err)}},
			Cause:  err,
		}
	}
	return ValidateFeedPayload(payload)
}

func validate(schema *jsonschema.Schema, payload any) error {
	if err := schema.Validate(payload); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func compileSchema(name, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: node.InstanceLocation,
				Message:  node.Message,
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
