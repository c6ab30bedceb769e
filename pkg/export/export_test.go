package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var outline = Dataset{
	Title:   "Demo Course",
	Headers: []string{"Section", "Subsection", "Due"},
	Rows: [][]string{
		{"Week 1", "Welcome", ""},
		{"Week 1", "Quiz, part 1", "2026-11-01"},
	},
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(outline)
	require.NoError(t, err)
	assert.Equal(t, "Section,Subsection,Due\nWeek 1,Welcome,\nWeek 1,\"Quiz, part 1\",2026-11-01\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(outline)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExportersRejectBadDatasets(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)

	_, err = NewPDFExporter().Render(Dataset{Headers: []string{"a", "b"}, Rows: [][]string{{"only-one"}}})
	assert.Error(t, err)
}
