package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"etut/internal/modules/catalog/domain"
)

// YAMLTaxonomyStore keeps the catalog as a single editable YAML file under
// the data directory, next to the other canonical files.
type YAMLTaxonomyStore struct {
	path string
}

func NewYAMLTaxonomyStore(dataPath string) *YAMLTaxonomyStore {
	return &YAMLTaxonomyStore{path: filepath.Join(dataPath, ".etut", "catalog.yml")}
}

func (s *YAMLTaxonomyStore) Load(_ context.Context) (domain.Taxonomy, bool, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.Taxonomy{}, false, nil
	}
	if err != nil {
		return domain.Taxonomy{}, false, fmt.Errorf("read catalog: %w", err)
	}
	var taxonomy domain.Taxonomy
	if err := yaml.Unmarshal(raw, &taxonomy); err != nil {
		return domain.Taxonomy{}, false, fmt.Errorf("parse catalog: %w", err)
	}
	return taxonomy, true, nil
}

func (s *YAMLTaxonomyStore) Save(_ context.Context, taxonomy domain.Taxonomy) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	raw, err := yaml.Marshal(taxonomy)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
