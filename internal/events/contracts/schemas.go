package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Event types and versions with a registered schema.
const (
	InquiryCreatedEvent   = "InquiryCreatedEvent"
	InquiryCreatedVersion = "1.0.0"
)

//go:embed schemas
var schemaFS embed.FS

var schemaFiles = map[string]string{
	InquiryCreatedEvent + "/" + InquiryCreatedVersion: "schemas/inquiry-created/v1.json",
}

var (
	compileOnce     sync.Once
	compiledSchemas map[string]*jsonschema.Schema
	compileErr      error
)

func compile() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	compiledSchemas = make(map[string]*jsonschema.Schema, len(schemaFiles))
	for key, path := range schemaFiles {
		data, err := schemaFS.ReadFile(path)
		if err != nil {
			compileErr = fmt.Errorf("read schema %s: %w", path, err)
			return
		}
		url := "mem://contracts/" + path
		if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("add schema %s: %w", path, err)
			return
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			compileErr = fmt.Errorf("compile schema %s: %w", path, err)
			return
		}
		compiledSchemas[key] = schema
	}
}

// Load compiles every embedded schema. Later calls return the first result.
func Load() error {
	compileOnce.Do(compile)
	return compileErr
}

// ValidateEvent checks a message body against the schema of its type and version
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	if err := Load(); err != nil {
		return err
	}

	key := fmt.Sprintf("%s/%s", eventType, eventVersion)
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema for event '%s' version '%s' not found", eventType, eventVersion)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}

	return nil
}
