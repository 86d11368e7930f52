package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/records/internal/model"
)

var list = []model.Record{
	{ID: "a1", Text: "buy milk"},
	{ID: "b2", Text: "call *mom*, then dad", IsComplete: true},
}

func TestExport_JSONMatchesStoredShape(t *testing.T) {
	b, err := Export(list, "json")
	require.NoError(t, err)
	var got []model.Record
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, list, got)
	assert.Contains(t, string(b), `"isComplete": true`)
}

func TestExport_CSV(t *testing.T) {
	b, err := Export(list, "CSV")
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "text", "isComplete"},
		{"a1", "buy milk", "false"},
		{"b2", "call *mom*, then dad", "true"},
	}, rows)
}

func TestExport_Markdown(t *testing.T) {
	b, err := Export(list, "md")
	require.NoError(t, err)
	assert.Equal(t, "# Records\n\n- [ ] buy milk\n- [x] call \\*mom\\*, then dad\n", string(b))

	b, err = Export(nil, "markdown")
	require.NoError(t, err)
	assert.Contains(t, string(b), "_No records_")
}

func TestExport_PDF(t *testing.T) {
	b, err := Export(list, "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(list, "xlsx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(list, "notty", 60)
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "Records")
}
