package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/reactive/pkg/normalize"
)

// Batch is a sequence of updates for the normalize command:
//
//	version: v1
//	updates:
//	  - add: 0
//	  - add: 0
//	  - delete: 1
type Batch struct {
	Version string       `yaml:"version"`
	Updates []UpdateSpec `yaml:"updates"`
}

// UpdateSpec is one update. Exactly one of Add and Delete must be set.
type UpdateSpec struct {
	Add    *int `yaml:"add,omitempty"`
	Delete *int `yaml:"delete,omitempty"`
}

// LoadBatch reads and validates a batch file.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch decodes and validates a batch.
func ParseBatch(data []byte) (*Batch, error) {
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse batch: %w", err)
	}
	if err := checkVersion(b.Version); err != nil {
		return nil, err
	}
	if _, err := b.ToUpdates(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ToUpdates converts the batch to normalizer updates.
func (b *Batch) ToUpdates() ([]normalize.Update, error) {
	updates := make([]normalize.Update, 0, len(b.Updates))
	for i, u := range b.Updates {
		switch {
		case u.Add != nil && u.Delete != nil:
			return nil, fmt.Errorf("updates[%d]: both add and delete set", i)
		case u.Add != nil:
			if *u.Add < 0 {
				return nil, fmt.Errorf("updates[%d]: negative index %d", i, *u.Add)
			}
			updates = append(updates, normalize.Add(*u.Add))
		case u.Delete != nil:
			if *u.Delete < 0 {
				return nil, fmt.Errorf("updates[%d]: negative index %d", i, *u.Delete)
			}
			updates = append(updates, normalize.Delete(*u.Delete))
		default:
			return nil, fmt.Errorf("updates[%d]: neither add nor delete set", i)
		}
	}
	return updates, nil
}
