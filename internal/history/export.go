// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/barbaragodoy/markdowngo/internal/batch"
)

// ExportYAML writes every stored run to dir/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	reports, err := s.exportReports(ctx)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(reports)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every stored run to dir/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	reports, err := s.exportReports(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportReports(ctx context.Context) ([]batch.Report, error) {
	runs, err := s.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	reports := make([]batch.Report, 0, len(runs))
	for _, r := range runs {
		rep, err := s.Get(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("querying for export: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
