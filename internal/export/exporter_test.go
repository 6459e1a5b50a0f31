package export

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExporterWritesHeadersAndRows(t *testing.T) {
	exporter := NewExporter()
	sheet := exporter.AddSheet("Dados", []ColumnConfig{
		{Header: "ID", Width: 8},
		{Header: "Nome", Width: 30},
	})
	sheet.AddRow(int64(1), "João da Silva")
	sheet.AddRow(int64(2), "Maria Oliveira")

	data, err := exporter.ToBytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Dados")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Nome"}, rows[0])
	assert.Equal(t, []string{"1", "João da Silva"}, rows[1])
	assert.Equal(t, []string{"2", "Maria Oliveira"}, rows[2])
}

func TestExporterWithoutSheetsFails(t *testing.T) {
	_, err := NewExporter().ToBytes()
	assert.Error(t, err)
}

func TestDefaultLayoutCoversAllKinds(t *testing.T) {
	layout := DefaultLayout()
	for _, kind := range []string{KindEmployees, KindAttendance, KindTrips, KindDeductions} {
		cols, ok := layout.Columns(kind)
		assert.True(t, ok, kind)
		assert.NotEmpty(t, cols, kind)
	}

	_, ok := layout.Columns("relatorios")
	assert.False(t, ok)
}

func TestLoadLayoutOverridesOneReport(t *testing.T) {
	path := t.TempDir() + "/layout.yaml"
	content := []byte("reports:\n  frota:\n    - header: Data\n      width: 10\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	layout, err := LoadLayout(path)
	require.NoError(t, err)

	cols, ok := layout.Columns(KindTrips)
	require.True(t, ok)
	require.Len(t, cols, 1)
	assert.Equal(t, "Data", cols[0].Header)

	// Untouched reports keep their defaults.
	cols, ok = layout.Columns(KindEmployees)
	require.True(t, ok)
	assert.Greater(t, len(cols), 1)
}
