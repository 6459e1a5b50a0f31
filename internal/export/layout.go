package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Report kinds available for export.
const (
	KindEmployees  = "colaboradores"
	KindAttendance = "pontos"
	KindTrips      = "frota"
	KindDeductions = "descontos"
)

// Layout maps report kinds to their column configuration. Deployments
// can override individual reports from a YAML file without rebuilding.
type Layout struct {
	Reports map[string][]ColumnConfig `yaml:"reports"`
}

// DefaultLayout returns the built-in column sets.
func DefaultLayout() *Layout {
	return &Layout{Reports: map[string][]ColumnConfig{
		KindEmployees: {
			{Header: "ID", Width: 8},
			{Header: "Nome", Width: 30},
			{Header: "Matrícula", Width: 15},
			{Header: "CPF", Width: 16},
			{Header: "Telefone", Width: 16},
			{Header: "Email", Width: 28},
			{Header: "Veículo", Width: 12},
			{Header: "Ativo", Width: 8},
		},
		KindAttendance: {
			{Header: "ID", Width: 8},
			{Header: "Colaborador", Width: 30},
			{Header: "Data/Hora", Width: 18},
			{Header: "Tipo", Width: 10},
			{Header: "Extraordinário", Width: 14},
			{Header: "Observação", Width: 40},
		},
		KindTrips: {
			{Header: "ID", Width: 8},
			{Header: "Data", Width: 12},
			{Header: "Veículo", Width: 12},
			{Header: "Motorista", Width: 30},
			{Header: "Hora Saída", Width: 11},
			{Header: "Hora Retorno", Width: 12},
			{Header: "KM Inicial", Width: 11},
			{Header: "KM Final", Width: 11},
			{Header: "KM Rodado", Width: 11},
			{Header: "Status", Width: 15},
			{Header: "Observação", Width: 40},
		},
		KindDeductions: {
			{Header: "ID", Width: 8},
			{Header: "Colaborador", Width: 30},
			{Header: "Data", Width: 12},
			{Header: "Motivo", Width: 45},
			{Header: "Valor", Width: 12},
			{Header: "Status", Width: 12},
			{Header: "Automático", Width: 11},
		},
	}}
}

// LoadLayout reads a YAML layout file and overlays it on the defaults.
// Only the reports present in the file are replaced.
func LoadLayout(path string) (*Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	var override Layout
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse layout file: %w", err)
	}
	for kind, cols := range override.Reports {
		layout.Reports[kind] = cols
	}
	return layout, nil
}

// Columns returns the column set for a report kind.
func (l *Layout) Columns(kind string) ([]ColumnConfig, bool) {
	cols, ok := l.Reports[kind]
	return cols, ok
}
