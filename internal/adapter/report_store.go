package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "linkmend.dev/pkg/linkmend/internal/model"
)

// reportFileName is the fixed name of the run report inside the reports
// directory.
const reportFileName = "repair-report.yaml"

// ReportStore persists structured run reports so a later invocation or a CI
// step can read them back.
type ReportStore interface {
	SaveReport(dir m.Path, report m.Report) error
	LoadReport(dir m.Path) (m.Report, error)
}

// LocalReportStore is the concrete ReportStore writing YAML files.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport writes the report as YAML into dir, creating it if needed.
func (s *LocalReportStore) SaveReport(dir m.Path, report m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	target := filepath.Join(string(dir), reportFileName)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// LoadReport reads a previously saved report from dir.
func (s *LocalReportStore) LoadReport(dir m.Path) (m.Report, error) {
	var report m.Report

	data, err := os.ReadFile(filepath.Join(string(dir), reportFileName))
	if err != nil {
		return report, fmt.Errorf("read report: %w", err)
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}
