package compiler

import (
	"fmt"

	"github.com/aretw0/enfa/internal/dto"
	"github.com/aretw0/enfa/internal/validator"
	"github.com/aretw0/enfa/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// parseDocument reads the structured format. YAML is decoded into a generic
// map first (JSON is valid YAML), then mapped onto dto.AutomatonDocument so
// unknown keys are reported instead of silently dropped.
func (p *Parser) parseDocument(data []byte) (*domain.Automaton, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDoc, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDoc)
	}

	var doc dto.AutomatonDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDoc, err)
	}

	if err := validator.ValidateDocument(doc); err != nil {
		return nil, err
	}
	if doc.States > p.maxCells || doc.Alphabet >= p.maxCells || doc.States*(doc.Alphabet+1) > p.maxCells {
		return nil, fmt.Errorf("%w: %d states x %d symbols", ErrTooLarge, doc.States, doc.Alphabet)
	}
	return doc.ToAutomaton(), nil
}
