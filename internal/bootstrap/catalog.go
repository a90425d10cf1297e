package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name        string  `yaml:"name"`
	Specs       string  `yaml:"specs"`
	Description any     `yaml:"description"`
	Brand       string  `yaml:"brand"`
	Category    any     `yaml:"category"`
	Price       int64   `yaml:"price"`
	Rating      float64 `yaml:"rating"`
	Quantity    int64   `yaml:"quantity"`
	Image       string  `yaml:"image"`
}

// LoadCatalog parses a YAML catalog. Description and category may be any
// YAML mapping or sequence and are stored as JSON.
func LoadCatalog(r io.Reader) ([]model.Product, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]model.Product, 0, len(f.Products))
	for i, sp := range f.Products {
		if sp.Name == "" {
			return nil, fmt.Errorf("products[%d]: name is required", i)
		}
		if sp.Price < 0 || sp.Quantity < 0 {
			return nil, fmt.Errorf("products[%d]: price and quantity must not be negative", i)
		}

		desc, err := toJSON(sp.Description, "{}")
		if err != nil {
			return nil, fmt.Errorf("products[%d].description: %w", i, err)
		}
		cat, err := toJSON(sp.Category, "[]")
		if err != nil {
			return nil, fmt.Errorf("products[%d].category: %w", i, err)
		}

		out = append(out, model.Product{
			Name:        sp.Name,
			Specs:       sp.Specs,
			Description: desc,
			Brand:       sp.Brand,
			Category:    cat,
			Price:       sp.Price,
			Rating:      sp.Rating,
			Quantity:    sp.Quantity,
			Image:       sp.Image,
		})
	}
	return out, nil
}

func toJSON(v any, empty string) (json.RawMessage, error) {
	if v == nil {
		return json.RawMessage(empty), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SeedCatalog loads path into an empty catalog. It does nothing once any product exists.
func SeedCatalog(ctx context.Context, products repo.ProductRepository, path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	n, err := products.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	items, err := LoadCatalog(f)
	if err != nil {
		return 0, err
	}

	for _, p := range items {
		if _, err := products.Create(ctx, p); err != nil {
			return 0, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return len(items), nil
}
