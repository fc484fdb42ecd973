package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"billex/internal/domain"
)

// ExtractJSONObject finds the first well-formed JSON object embedded in
// free-form model output. It takes the span from the first '{' to the
// last '}' and decodes it, tolerating conversational wrapper text around
// the payload. No repair is attempted beyond boundary trimming.
// A missing brace means no JSON at all; braces in the wrong order mean
// the output carried JSON-like text that cannot parse.
func ExtractJSONObject(text string) (map[string]interface{}, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 {
		return nil, domain.ErrNoJSONFound
	}
	if end < start {
		return nil, fmt.Errorf("%w: closing brace precedes opening brace", domain.ErrMalformedJSON)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}
	return obj, nil
}
