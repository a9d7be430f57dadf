package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportImportRoundTrip(t *testing.T) {
	original := SeedCatalogs()[1] // listening: exercises tokens and all sheets

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(original, &buf))

	res, err := ImportXLSX(&buf)
	require.NoError(t, err)
	require.NotNil(t, res.Catalog)
	assert.Zero(t, res.RejectedRows)

	imported := res.Catalog
	assert.Equal(t, original.ID, imported.ID)
	assert.Equal(t, original.Kind, imported.Kind)
	assert.Equal(t, original.DurationSeconds, imported.DurationSeconds)
	assert.Equal(t, original.Order(), imported.Order())
	assert.Equal(t, original.Tokens, imported.Tokens)
	assert.Equal(t, original.Bands, imported.Bands)

	for _, id := range original.Order() {
		want, _ := original.Question(id)
		got, ok := imported.Question(id)
		require.True(t, ok)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.CorrectAnswer, got.CorrectAnswer)
		assert.Equal(t, want.Options, got.Options)
	}
}

func TestImportCollectsRowErrors(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Meta"))
	require.NoError(t, f.SetSheetRow("Meta", "A1", &[]interface{}{"id", "broken-1"}))
	require.NoError(t, f.SetSheetRow("Meta", "A2", &[]interface{}{"title", "Broken"}))
	require.NoError(t, f.SetSheetRow("Meta", "A3", &[]interface{}{"kind", "reading"}))
	require.NoError(t, f.SetSheetRow("Meta", "A4", &[]interface{}{"duration_seconds", 600}))

	_, err := f.NewSheet("Questions")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Questions", "A1",
		&[]interface{}{"id", "type", "prompt", "options", "correct_answer", "group_id"}))
	// Good row
	require.NoError(t, f.SetSheetRow("Questions", "A2",
		&[]interface{}{1, "fill_in_blank", "Q1", "", "round", 1}))
	// Bad type
	require.NoError(t, f.SetSheetRow("Questions", "A3",
		&[]interface{}{2, "essay", "Q2", "", "x", 1}))
	// Non-integer id
	require.NoError(t, f.SetSheetRow("Questions", "A4",
		&[]interface{}{"two", "fill_in_blank", "Q3", "", "x", 1}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	res, err := ImportXLSX(&buf)
	require.NoError(t, err)
	require.NotNil(t, res.Catalog)

	assert.Equal(t, 2, res.RejectedRows)
	assert.Len(t, res.Errors, 2)
	assert.Len(t, res.Catalog.Questions, 1)
	// Per-kind default bands fill in when the sheet is absent.
	assert.Equal(t, DefaultReadingBands(), res.Catalog.Bands)
}

func TestImportFailsWithoutMeta(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ImportXLSX(&buf)
	assert.Error(t, err)
}
