package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the config file, pretty printed.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag: "toml",
	}
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/dimmer/config.schema.json"
	schema.Title = "dimmer configuration"
	schema.Description = "Configuration schema for dimmer, a light/dark/system theme manager"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// SchemaPath returns where GenerateSchemaFile writes in dir.
func SchemaPath(dir string) string {
	return filepath.Join(dir, schemaFileName)
}

// GenerateSchemaFile writes config.schema.json into dir, creating dir.
func GenerateSchemaFile(dir string) error {
	data, err := Schema()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	schemaFile := SchemaPath(dir)
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
