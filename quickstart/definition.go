package quickstart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefinitionFile is an agent definition read from YAML:
//
//	name: trivia-agent
//	description: Answers general questions
//	definition:
//	  kind: prompt
//	  model: gpt-4.1
//	  instructions: You are a helpful assistant that answers general questions
//	  temperature: 0.2
//	metadata:
//	  owner: samples
type DefinitionFile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Definition  DefinitionSpec    `yaml:"definition"`
	Metadata    map[string]string `yaml:"metadata"`
}

// DefinitionSpec is the definition block of a DefinitionFile.
type DefinitionSpec struct {
	Kind         string   `yaml:"kind"`
	Model        string   `yaml:"model"`
	Instructions string   `yaml:"instructions"`
	Temperature  *float64 `yaml:"temperature"`
	TopP         *float64 `yaml:"top_p"`
}

// LoadDefinitionFile reads and validates a definition file.
func LoadDefinitionFile(path string) (*DefinitionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent definition: %w", err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// ParseDefinition decodes a definition document. Unknown keys are rejected.
func ParseDefinition(data []byte) (*DefinitionFile, error) {
	var def DefinitionFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("agent definition is empty")
		}
		return nil, fmt.Errorf("parse agent definition: %w", err)
	}
	if def.Definition.Temperature != nil && (*def.Definition.Temperature < 0 || *def.Definition.Temperature > 2) {
		return nil, fmt.Errorf("temperature must be between 0 and 2, got %g", *def.Definition.Temperature)
	}
	if def.Definition.TopP != nil && (*def.Definition.TopP < 0 || *def.Definition.TopP > 1) {
		return nil, fmt.Errorf("top_p must be between 0 and 1, got %g", *def.Definition.TopP)
	}
	return &def, nil
}
