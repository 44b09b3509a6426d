package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

// =============================================================================
// MAPPING TABLES
// =============================================================================

// Mappings holds the three lookup tables loaded at startup.
type Mappings struct {
	// Headers maps raw spreadsheet headers to normalized column names.
	Headers map[string]string

	// Statutes maps raw Type cells to normalized statute types.
	Statutes map[string]string

	// Generators maps normalized statute types to formatter names.
	Generators map[string]string
}

// LoadMappings loads the mapping tables named in the settings.
//
// RETURNS:
//   - The loaded tables.
//   - An error if a file cannot be read, is not a flat string map, or
//     would make normalization non-idempotent.
//
// Formatter names are not checked here; the generator's dispatch table
// rejects unknown names when it is built.
func LoadMappings(s *Settings) (*Mappings, error) {
	headers, err := loadMap(s.HeaderMap)
	if err != nil {
		return nil, err
	}

	statutes, err := loadMap(s.StatuteMap)
	if err != nil {
		return nil, err
	}

	generators, err := loadMap(s.GeneratorMap)
	if err != nil {
		return nil, err
	}

	m := &Mappings{
		Headers:    headers,
		Statutes:   statutes,
		Generators: generators,
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks that header and statute normalization are idempotent.
func (m *Mappings) Validate() error {
	if err := statute.CheckIdempotent("header map", m.Headers); err != nil {
		return err
	}
	return statute.CheckIdempotent("statute map", m.Statutes)
}

// Normalizer returns a normalizer over the header and statute tables.
func (m *Mappings) Normalizer() *statute.Normalizer {
	return statute.NewNormalizer(m.Headers, m.Statutes)
}

// loadMap reads a YAML file holding a flat string-to-string mapping.
// An empty file yields an empty map.
func loadMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	out := make(map[string]string)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}

	return out, nil
}
