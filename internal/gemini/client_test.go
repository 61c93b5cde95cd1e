package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestNewClient_RequiresKeyAndModel(t *testing.T) {
	_, err := NewClient(context.Background(), "", "gemini-2.0-flash")
	assert.Error(t, err)

	_, err = NewClient(context.Background(), "key", "")
	assert.Error(t, err)
}

func TestTurnRole(t *testing.T) {
	assert.Equal(t, genai.Role(genai.RoleUser), turnRole(Turn{Role: "user"}))
	assert.Equal(t, genai.Role(genai.RoleModel), turnRole(Turn{Role: "assistant"}))
	assert.Equal(t, genai.Role(genai.RoleModel), turnRole(Turn{Role: "model"}))
}
