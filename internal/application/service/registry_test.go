package service

import (
	"context"
	"testing"

	"marketing-crew/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name entity.ToolName
	desc string
}

func (s *stubTool) Name() entity.ToolName { return s.name }
func (s *stubTool) Description() string   { return s.desc }
func (s *stubTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (s *stubTool) Execute(ctx context.Context, arguments string) (string, error) {
	return string(s.name), nil
}

func TestToolRegistry_KeepsRegistrationOrder(t *testing.T) {
	r := NewToolRegistry()
	r.Register(&stubTool{name: entity.ToolScrapeWebsite})
	r.Register(&stubTool{name: entity.ToolSearchInternet})
	r.Register(&stubTool{name: entity.ToolSearchInstagram})

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, entity.ToolScrapeWebsite, all[0].Name())
	assert.Equal(t, entity.ToolSearchInternet, all[1].Name())
	assert.Equal(t, entity.ToolSearchInstagram, all[2].Name())
}

func TestToolRegistry_ReRegisterReplaces(t *testing.T) {
	r := NewToolRegistry()
	r.Register(&stubTool{name: entity.ToolSearchInternet, desc: "old"})
	r.Register(&stubTool{name: entity.ToolSearchInternet, desc: "new"})

	assert.Len(t, r.All(), 1)
	tool, ok := r.Get(entity.ToolSearchInternet)
	require.True(t, ok)
	assert.Equal(t, "new", tool.Description())
}

func TestToolRegistry_Subset(t *testing.T) {
	r := NewToolRegistry()
	r.Register(&stubTool{name: entity.ToolScrapeWebsite})
	r.Register(&stubTool{name: entity.ToolSearchInternet})

	subset := r.Subset([]entity.ToolName{entity.ToolSearchInternet, entity.ToolSearchInstagram, entity.ToolScrapeWebsite})

	require.Len(t, subset, 2)
	assert.Equal(t, entity.ToolSearchInternet, subset[0].Name())
	assert.Equal(t, entity.ToolScrapeWebsite, subset[1].Name())
}

func TestToolRegistry_Definitions(t *testing.T) {
	r := NewToolRegistry()
	r.Register(&stubTool{name: entity.ToolSearchInternet, desc: "search the web"})

	defs := r.Definitions()

	require.Len(t, defs, 1)
	assert.Equal(t, entity.ToolSearchInternet, defs[0].Name)
	assert.Equal(t, "search the web", defs[0].Description)
	assert.Equal(t, "object", defs[0].Parameters["type"])
}
