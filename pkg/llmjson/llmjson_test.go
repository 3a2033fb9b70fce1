package llmjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirecraft/hirecraft-backend/pkg/llmjson"
)

func TestExtract_PlainObject(t *testing.T) {
	t.Parallel()
	doc, err := llmjson.Extract(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, doc)
}

func TestExtract_StripsCodeFences(t *testing.T) {
	t.Parallel()
	doc, err := llmjson.Extract("```json\n{\"a\":1}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, doc)
}

func TestExtract_SkipsLeadingProse(t *testing.T) {
	t.Parallel()
	doc, err := llmjson.Extract(`Sure! Here is the data you asked for: {"a":{"b":2}} hope that helps`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":2}}`, doc)
}

func TestExtract_BracesInsideStrings(t *testing.T) {
	t.Parallel()
	doc, err := llmjson.Extract(`{"note":"use {braces} and \"quotes\" freely"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"note":"use {braces} and \"quotes\" freely"}`, doc)
}

func TestExtract_Array(t *testing.T) {
	t.Parallel()
	doc, err := llmjson.Extract(`the list: [1,2,3]`)
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, doc)
}

func TestExtract_NoJSON(t *testing.T) {
	t.Parallel()
	_, err := llmjson.Extract("I'm sorry, I can't produce that.")
	assert.ErrorIs(t, err, llmjson.ErrNoJSON)
}

func TestExtract_Unbalanced(t *testing.T) {
	t.Parallel()
	_, err := llmjson.Extract(`{"a":1`)
	assert.ErrorIs(t, err, llmjson.ErrNoJSON)
}

func TestUnmarshal_DecodesExtractedDocument(t *testing.T) {
	t.Parallel()
	var out struct {
		Skills []string `json:"skills"`
	}
	err := llmjson.Unmarshal("```json\n{\"skills\": [\"go\", \"sql\"]}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, out.Skills)
}

func TestUnmarshal_MalformedDocument(t *testing.T) {
	t.Parallel()
	var out map[string]any
	err := llmjson.Unmarshal(`{"a": }`, &out)
	assert.Error(t, err)
}
