package task

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "tasker://store.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the compiled document schema.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add store schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Encode serializes the whole store with 2-space indentation.
func Encode(s *Store) ([]byte, error) {
	doc := Store{
		SchemaVersion: CurrentSchemaVersion,
		Tasks:         s.Tasks,
	}
	if doc.Tasks == nil {
		doc.Tasks = map[int]Task{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal store: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a store document. Malformed JSON and documents that do not
// match the schema are reported as ErrParse.
func Decode(data []byte) (*Store, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	schema, err := Schema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, describeSchemaError(err))
	}

	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	for id, t := range s.Tasks {
		if id != t.ID {
			return nil, fmt.Errorf("%w: tasks.%d: key does not match id %d", ErrParse, id, t.ID)
		}
		if t.UpdatedAt.Before(t.CreatedAt) {
			return nil, fmt.Errorf("%w: tasks.%d: updated_at is before created_at", ErrParse, id)
		}
	}
	return &s, nil
}

// Load reads and parses the store file at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read store file: %w", ErrIO, err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", path, err)
	}
	return s, nil
}

// Save writes the whole store to path. The document is written to a
// temporary file in the same directory and renamed over path. An existing
// file keeps its permissions; a new one is created 0644.
func (s *Store) Save(path string) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create store file: %w", ErrIO, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w: write store file: %w", ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w: sync store file: %w", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: close store file: %w", ErrIO, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("%w: chmod store file: %w", ErrIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: replace store file: %w", ErrIO, err)
	}
	return nil
}

// describeSchemaError flattens a schema validation error to its leaf causes.
func describeSchemaError(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var msgs []string
	collectSchemaErrors(&msgs, ve)
	if len(msgs) == 0 {
		return ve.Error()
	}
	return strings.Join(msgs, "; ")
}

func collectSchemaErrors(msgs *[]string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", jsonPointerToPath(err.InstanceLocation), err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(msgs, cause)
	}
}

// jsonPointerToPath turns "/tasks/3/status" into "tasks.3.status".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "(root)"
	}
	parts := strings.Split(ptr, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}
