package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verdict struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Tags       []string `json:"tags,omitempty"`
	Source     source   `json:"source"`
}

type source struct {
	URL string `json:"url"`
}

func TestSchemaFor(t *testing.T) {
	raw, err := SchemaFor(verdict{})
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$ref")
	assert.NotContains(t, schema, "$schema")

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "label")
	assert.Contains(t, props, "confidence")
	assert.Contains(t, props, "tags")

	nested, ok := props["source"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", nested["type"], "nested types are inlined")

	assert.ElementsMatch(t, []any{"label", "confidence", "source"}, schema["required"])
}

func TestGenerate_SendsSchemaFormat(t *testing.T) {
	svc := newMockService(t, http.StatusOK, `{"response":"{\"label\":\"cat\"}"}`)
	client := newTestClient(t, svc.server.URL)

	format, err := SchemaFor(verdict{})
	require.NoError(t, err)

	got, err := client.Generate(context.Background(), GenerateRequest{
		Model:  "m",
		Prompt: "classify",
		Format: format,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"cat"}`, got)

	sent, ok := svc.lastRequest(t).Body["format"].(map[string]any)
	require.True(t, ok, "format should be sent as a JSON object")
	assert.Equal(t, "object", sent["type"])
}
