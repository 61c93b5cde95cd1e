package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced with json tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  hello  ", "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	type profile struct {
		ClientType string   `json:"client_type"`
		Interests  []string `json:"client_interests"`
	}

	t.Run("plain object", func(t *testing.T) {
		var p profile
		ok := ExtractJSONObject(`{"client_type": "Business", "client_interests": ["Spa"]}`, &p, zap.NewNop())
		require.True(t, ok)
		assert.Equal(t, "Business", p.ClientType)
		assert.Equal(t, []string{"Spa"}, p.Interests)
	})

	t.Run("fenced object with prose around it", func(t *testing.T) {
		var p profile
		text := "```json\nHere is the result: {\"client_type\": \"Leisure\", \"client_interests\": []} done\n```"
		ok := ExtractJSONObject(text, &p, zap.NewNop())
		require.True(t, ok)
		assert.Equal(t, "Leisure", p.ClientType)
	})

	t.Run("unparseable returns false", func(t *testing.T) {
		var p profile
		ok := ExtractJSONObject("not json at all", &p, zap.NewNop())
		assert.False(t, ok)
	})

	t.Run("span is greedy to last brace", func(t *testing.T) {
		var v map[string]interface{}
		ok := ExtractJSONObject(`{"outer": {"inner": 1}}`, &v, zap.NewNop())
		require.True(t, ok)
		assert.Contains(t, v, "outer")
	})
}
