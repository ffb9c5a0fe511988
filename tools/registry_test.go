package tools_test

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"

	"github.com/va6996/mathdesk/tools"
)

type echoInput struct {
	Text string `json:"text" description:"Text to echo back"`
}

func TestNewRegistry(t *testing.T) {
	reg := tools.NewRegistry()
	assert.NotNil(t, reg)
	assert.Empty(t, reg.GetTools())
}

func TestRegistry_Register(t *testing.T) {
	ctx := context.Background()
	gk := genkit.Init(ctx)
	reg := tools.NewRegistry()

	// Register a dummy tool
	reg.Register(genkit.DefineTool[*echoInput, string](
		gk,
		"testTool",
		"Test Description",
		func(ctx *ai.ToolContext, input *echoInput) (string, error) {
			return "ok", nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	})

	registered := reg.GetTools()
	assert.Len(t, registered, 1)
	assert.Equal(t, "testTool", registered[0].Definition().Name)

	result, err := reg.ExecuteTool(ctx, "testTool", map[string]interface{}{"text": "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "ok", result)

	_, err = reg.ExecuteTool(ctx, "missing", nil)
	assert.Error(t, err)
}

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	ctx := context.Background()
	gk := genkit.Init(ctx)
	reg := tools.NewRegistry()

	define := func(gk *genkit.Genkit, name string, reply string) {
		reg.Register(genkit.DefineTool[*echoInput, string](
			gk,
			name,
			"Test Description",
			func(ctx *ai.ToolContext, input *echoInput) (string, error) {
				return reply, nil
			},
		), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return reply, nil
		})
	}

	define(gk, "first", "v1")
	define(gk, "second", "other")
	// A fresh instance redefines "first"; the registry keeps its slot.
	define(genkit.Init(ctx), "first", "v2")

	assert.Equal(t, []string{"first", "second"}, reg.Names())
	assert.Len(t, reg.GetTools(), 2)

	result, err := reg.ExecuteTool(ctx, "first", nil)
	assert.NoError(t, err)
	assert.Equal(t, "v2", result)
}
