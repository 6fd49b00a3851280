package application

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/model"
)

// Payload is any submission payload that can check itself before sending.
type Payload interface {
	Kind() model.ApplicationKind
	Validate() error
}

// Load decodes a YAML (or JSON) application payload. Unknown keys are
// rejected so a misspelt field fails loudly instead of being dropped.
func Load[T any, P interface {
	*T
	Payload
}](r io.Reader) (P, error) {
	var v T
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: payload is empty", common.ErrInvalidPayload)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}
	p := P(&v)
	if err := ValidateSchema(p.Kind(), p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}
	return p, nil
}

// LoadFile reads and validates a payload from path.
func LoadFile[T any, P interface {
	*T
	Payload
}](path string) (P, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Load[T, P](f)
}
