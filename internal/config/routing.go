package config

import (
	"errors"
	"fmt"
	"os"

	fs "github.com/sandevgo/inspire/configs"
	"gopkg.in/yaml.v3"
)

const routingTableFile = "routing.yaml"

// RoutingTable is the versioned pattern table behind message routing.
// Category order is significant.
type RoutingTable struct {
	Version    int               `yaml:"version"`
	Default    string            `yaml:"default"`
	Categories []RoutingCategory `yaml:"categories"`
}

type RoutingCategory struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// LoadRoutingTable reads the table from path, or the bundled table when
// path is empty.
func LoadRoutingTable(path string) (*RoutingTable, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = fs.FS.ReadFile(routingTableFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read routing table: %w", err)
	}
	return ParseRoutingTable(data)
}

func ParseRoutingTable(data []byte) (*RoutingTable, error) {
	var t RoutingTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode routing table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *RoutingTable) validate() error {
	if len(t.Categories) == 0 {
		return errors.New("routing table has no categories")
	}
	if t.Default == "" {
		t.Default = "Text Generator"
	}
	seen := make(map[string]struct{}, len(t.Categories))
	for i, c := range t.Categories {
		if c.Name == "" {
			return fmt.Errorf("routing category #%d has no name", i)
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("routing category %q declared twice", c.Name)
		}
		seen[c.Name] = struct{}{}
		if len(c.Patterns) == 0 {
			return fmt.Errorf("routing category %q has no patterns", c.Name)
		}
	}
	return nil
}
