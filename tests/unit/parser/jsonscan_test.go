package parser_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billex/internal/domain"
	"billex/internal/parser"
)

func TestExtractJSONObject_PlainJSON(t *testing.T) {
	obj, err := parser.ExtractJSONObject(`{"page_type":"Pharmacy","items":[]}`)

	require.NoError(t, err)
	assert.Equal(t, "Pharmacy", obj["page_type"])
}

func TestExtractJSONObject_WrapperText(t *testing.T) {
	text := "Sure! Here is the extracted data:\n```json\n{\"page_type\":\"Bill Detail\",\"items\":[{\"item_name\":\"Syringe\"}]}\n```\nLet me know if you need anything else."

	obj, err := parser.ExtractJSONObject(text)

	require.NoError(t, err)
	assert.Equal(t, "Bill Detail", obj["page_type"])
	items := obj["items"].([]interface{})
	assert.Len(t, items, 1)
}

func TestExtractJSONObject_NoJSON(t *testing.T) {
	for _, text := range []string{"no data here", "", "only an opening {", "only a closing }"} {
		obj, err := parser.ExtractJSONObject(text)

		assert.Nil(t, obj, "input %q", text)
		assert.True(t, errors.Is(err, domain.ErrNoJSONFound), "input %q: got %v", text, err)
	}
}

func TestExtractJSONObject_MalformedJSON(t *testing.T) {
	obj, err := parser.ExtractJSONObject(`{"page_type": "Bill Detail", "items": [}`)

	assert.Nil(t, obj)
	assert.True(t, errors.Is(err, domain.ErrMalformedJSON))
}

func TestExtractJSONObject_ClosingBraceBeforeOpening(t *testing.T) {
	// Both braces exist but in the wrong order: there is JSON-like text,
	// it just cannot parse.
	obj, err := parser.ExtractJSONObject(`} nothing useful {`)

	assert.Nil(t, obj)
	assert.True(t, errors.Is(err, domain.ErrMalformedJSON))
}

func TestExtractJSONObject_IdempotentOnOwnOutput(t *testing.T) {
	text := "preamble {\"page_type\":\"Final Bill\",\"items\":[{\"item_name\":\"Bed Charges\",\"amount\":1200.5,\"rate\":600.25,\"quantity\":2}]} trailer"

	first, err := parser.ExtractJSONObject(text)
	require.NoError(t, err)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := parser.ExtractJSONObject(string(encoded))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
