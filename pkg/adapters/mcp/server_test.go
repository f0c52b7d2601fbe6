package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/semtoken"
	"github.com/aretw0/semtoken/pkg/adapters/memory"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fooDraft = `{"tokenName": "Foo", "tokenTicker": "FOO", "selectedOntologies": ["foaf"]}`

func newTestServer() (*Server, *memory.Publisher) {
	pub := memory.NewPublisher()
	studio := semtoken.New(
		semtoken.WithStore(memory.NewStore()),
		semtoken.WithPublisher(pub),
	)
	return NewServer(studio, nil), pub
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestRenderTool(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.handleRender(context.Background(), callRequest(map[string]any{"descriptor": fooDraft}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `dcterms:title "Foo" ;`)
}

func TestRenderTool_InvalidDescriptor(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.handleRender(context.Background(), callRequest(map[string]any{"descriptor": "not json"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestActivateTool(t *testing.T) {
	s, _ := newTestServer()

	resp, err := s.handleActivate(context.Background(), mcp.CallToolRequest{}, DescriptorArgs{Descriptor: fooDraft})
	require.NoError(t, err)
	assert.Contains(t, resp.Vocab, "foaf:Person")
	require.NotEmpty(t, resp.Descriptor.Prefixes)
	assert.Equal(t, "foaf", resp.Descriptor.Prefixes[0].Prefix)
}

func TestDraftTools(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestServer()

	info, err := s.handleSaveDraft(ctx, mcp.CallToolRequest{}, DescriptorArgs{Descriptor: fooDraft})
	require.NoError(t, err)
	assert.Equal(t, "Foo", info.ID)

	list, err := s.handleListDrafts(ctx, mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	require.Len(t, list.Drafts, 1)

	d, err := s.handleLoadDraft(ctx, mcp.CallToolRequest{}, DraftArgs{ID: "Foo"})
	require.NoError(t, err)
	assert.Equal(t, "FOO", d.Ticker)

	_, err = s.handleLoadDraft(ctx, mcp.CallToolRequest{}, DraftArgs{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestListDrafts_Empty(t *testing.T) {
	s, _ := newTestServer()

	list, err := s.handleListDrafts(context.Background(), mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	assert.NotNil(t, list.Drafts)
}

func TestPublishTool(t *testing.T) {
	s, pub := newTestServer()

	res, err := s.handlePublish(context.Background(), mcp.CallToolRequest{}, DescriptorArgs{Descriptor: fooDraft})
	require.NoError(t, err)
	text, ok := pub.Get(res.Address)
	require.True(t, ok)
	assert.Equal(t, res.Turtle, text)
}

func TestToolsAreListed(t *testing.T) {
	s, _ := newTestServer()

	msg := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	for _, name := range []string{"render_turtle", "activate_vocabulary", "list_ontologies", "save_draft", "load_draft", "list_drafts", "delete_draft", "publish"} {
		assert.Contains(t, string(raw), `"`+name+`"`)
	}
}

func TestCallToolOverJSONRPC(t *testing.T) {
	s, _ := newTestServer()

	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"list_ontologies","arguments":{}}}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `skos`)
}
