package gemini

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// StripFences removes a wrapping markdown code fence and a leading "json"
// language tag from a model response.
func StripFences(text string) string {
	clean := strings.TrimSpace(text)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}
	clean = strings.Trim(clean, "`")
	clean = strings.Replace(clean, "json", "", 1)
	return strings.TrimSpace(clean)
}

// ExtractJSONObject parses the first {...} span of a possibly-fenced response
// into v. The span is greedy: first opening brace to last closing brace. A
// parse failure is not an error condition here; it logs the raw text for
// diagnosis and returns false.
func ExtractJSONObject(text string, v interface{}, logger *zap.Logger) bool {
	clean := StripFences(text)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	if err := json.Unmarshal([]byte(clean), v); err != nil {
		logger.Error("JSON parse failed for model response",
			zap.Error(err),
			zap.String("response", text))
		return false
	}
	return true
}
