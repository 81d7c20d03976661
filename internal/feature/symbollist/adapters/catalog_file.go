package adapters

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dashboard_backend/internal/feature/symbollist/domain/entity"
)

// catalogEntry is one row of the YAML catalog. active defaults to true.
type catalogEntry struct {
	entity.Symbol `yaml:",inline"`
	Active        *bool `yaml:"active"`
}

// LoadCatalogFile はYAMLの銘柄カタログ（トップレベルのsymbolsリスト）を読み込みます。
func LoadCatalogFile(path string) ([]entity.Symbol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file struct {
		Symbols []catalogEntry `yaml:"symbols"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := make([]entity.Symbol, 0, len(file.Symbols))
	for _, e := range file.Symbols {
		s := e.Symbol
		s.IsActive = e.Active == nil || *e.Active
		out = append(out, s)
	}
	return out, nil
}
