package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	validate = validator.New()
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	return schema, schemaErr
}

// Load reads, validates and builds the catalog at path
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse validates a YAML catalog document and builds the catalog
func Parse(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	if f.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported version %q, expected %s", domain.ErrInvalidCatalog, f.Version, SchemaVersion)
	}

	return New(f)
}

// validateSchema checks the raw document shape against the embedded JSON schema
func validateSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	// jsonschema expects values as produced by encoding/json
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var normalized interface{}
	if err := dec.Decode(&normalized); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	if err := s.Validate(normalized); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, verr.Error())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return nil
}

// Validate checks struct tags, duplicate keys, unknown prerequisites and
// prerequisite cycles
func Validate(f *File) error {
	if f == nil {
		return fmt.Errorf("%w: catalog is nil", domain.ErrInvalidCatalog)
	}
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	byKey := make(map[string]*domain.UpgradeOption, len(f.Options))
	for i := range f.Options {
		opt := &f.Options[i]
		if _, exists := byKey[opt.Key]; exists {
			return fmt.Errorf("%w: '%s'", domain.ErrDuplicateOptionKey, opt.Key)
		}
		byKey[opt.Key] = opt
	}

	for _, opt := range f.Options {
		for _, prereq := range opt.Prerequisites {
			if prereq == opt.Key {
				return fmt.Errorf("%w: '%s' requires itself", domain.ErrCycleDetected, opt.Key)
			}
			if _, ok := byKey[prereq]; !ok {
				return fmt.Errorf("%w: '%s' requires '%s'", domain.ErrMissingPrerequisite, opt.Key, prereq)
			}
		}
	}

	return detectCycles(f.Options, byKey)
}

func detectCycles(options []domain.UpgradeOption, byKey map[string]*domain.UpgradeOption) error {
	// 0 = unvisited, 1 = visiting, 2 = visited
	state := make(map[string]int, len(options))

	var dfs func(key string) error
	dfs = func(key string) error {
		if state[key] == 1 {
			return fmt.Errorf("%w: at option '%s'", domain.ErrCycleDetected, key)
		}
		if state[key] == 2 {
			return nil
		}

		state[key] = 1
		for _, prereq := range byKey[key].Prerequisites {
			if err := dfs(prereq); err != nil {
				return err
			}
		}
		state[key] = 2
		return nil
	}

	for _, opt := range options {
		if state[opt.Key] == 0 {
			if err := dfs(opt.Key); err != nil {
				return err
			}
		}
	}
	return nil
}
