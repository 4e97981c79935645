package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/cubeql/pkg/core"
)

// seedFile is the YAML shape accepted by LoadSeedFile.
type seedFile struct {
	Cubes []struct {
		Name    string   `yaml:"name"`
		Columns []string `yaml:"columns"`
	} `yaml:"cubes"`
	Relations []struct {
		Left        string `yaml:"left"`
		Right       string `yaml:"right"`
		LeftColumn  string `yaml:"left_column"`
		RightColumn string `yaml:"right_column"`
		Cardinality string `yaml:"cardinality"`
	} `yaml:"relations"`
}

// LoadSeedFile loads cubes and relations from a YAML snapshot into the
// model and store. Unlike snapshot reload, seed entries are user input
// and validation failures are reported, not skipped.
func (e *Engine) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	for _, c := range seed.Cubes {
		if _, err := e.CreateCube(c.Name, c.Columns); err != nil {
			return fmt.Errorf("seed cube %q: %w", c.Name, err)
		}
	}
	for _, r := range seed.Relations {
		cardinality := core.OneToMany
		if r.Cardinality != "" {
			cardinality, err = core.ParseCardinality(r.Cardinality)
			if err != nil {
				return fmt.Errorf("seed relation %s -> %s: %w", r.Left, r.Right, err)
			}
		}
		if _, err := e.CreateRelation(r.Left, r.Right, r.LeftColumn, r.RightColumn, cardinality); err != nil {
			return fmt.Errorf("seed relation %s -> %s: %w", r.Left, r.Right, err)
		}
	}

	e.logger.Info("seed loaded", "file", path,
		"cubes", len(seed.Cubes), "relations", len(seed.Relations))
	return nil
}

// SeedSampleData loads the demo e-commerce dataset if the model is
// empty. It is a no-op otherwise.
func (e *Engine) SeedSampleData() error {
	if len(e.model.Cubes()) > 0 {
		return nil
	}

	cubes := []struct {
		name    string
		columns []string
	}{
		{"customers", []string{"id", "name", "email", "created_at"}},
		{"orders", []string{"id", "customer_id", "order_date", "total", "status"}},
		{"order_items", []string{"id", "order_id", "product_id", "quantity", "unit_price"}},
		{"products", []string{"id", "name", "category_id", "price", "stock"}},
		{"categories", []string{"id", "name", "description"}},
	}
	for _, c := range cubes {
		if _, err := e.CreateCube(c.name, c.columns); err != nil {
			return err
		}
	}

	relations := []struct {
		left, right, leftCol, rightCol string
		cardinality                    core.Cardinality
	}{
		{"orders", "customers", "customer_id", "id", core.ManyToOne},
		{"order_items", "orders", "order_id", "id", core.ManyToOne},
		{"order_items", "products", "product_id", "id", core.ManyToOne},
		{"products", "categories", "category_id", "id", core.ManyToOne},
	}
	for _, r := range relations {
		if _, err := e.CreateRelation(r.left, r.right, r.leftCol, r.rightCol, r.cardinality); err != nil {
			return err
		}
	}

	e.logger.Info("sample data seeded", "cubes", len(cubes), "relations", len(relations))
	return nil
}
