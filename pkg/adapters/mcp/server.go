package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/semtoken"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/vocabulary"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// OntologiesURI names the resource listing the ontology catalog.
const OntologiesURI = "semtoken://ontologies"

// Studio is the subset of *semtoken.Studio exposed as MCP tools.
type Studio interface {
	Render(d domain.TokenDescriptor) string
	Activate(d domain.TokenDescriptor) (domain.TokenDescriptor, []string)
	Catalog() *vocabulary.Catalog
	SaveDraft(ctx context.Context, d domain.TokenDescriptor) (domain.DraftInfo, error)
	LoadDraft(ctx context.Context, id string) (domain.TokenDescriptor, error)
	ListDrafts(ctx context.Context) ([]domain.DraftInfo, error)
	DeleteDraft(ctx context.Context, id string) error
	Publish(ctx context.Context, d domain.TokenDescriptor) (semtoken.PublishResult, error)
}

// DescriptorArgs carries a descriptor as a JSON draft document.
type DescriptorArgs struct {
	Descriptor string `json:"descriptor"`
}

// DraftArgs addresses a stored draft.
type DraftArgs struct {
	ID string `json:"id"`
}

// ActivationResponse is the result of activate_vocabulary.
type ActivationResponse struct {
	Descriptor domain.TokenDescriptor `json:"descriptor" jsonschema_description:"Descriptor with the merged prefix table"`
	Vocab      []string               `json:"vocab" jsonschema_description:"prefix:term suggestions of the selected ontologies"`
}

// DraftListResponse is the result of list_drafts.
type DraftListResponse struct {
	Drafts []domain.DraftInfo `json:"drafts" jsonschema_description:"Stored drafts, most recently updated first"`
}

// Server wraps a Studio and exposes it as an MCP Server.
type Server struct {
	studio    Studio
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(studio Studio, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		studio:    studio,
		logger:    logger,
		mcpServer: server.NewMCPServer("semtoken-mcp", semtoken.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	httpServer := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const descriptorHelp = "Token descriptor as a JSON draft: tokenName, tokenTicker, tokenDecimals, " +
	"properties, shapes, selectedOntologies, prefixes, sameAs. Missing fields take defaults."

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("render_turtle",
		mcp.WithDescription("Serialize a token descriptor to RDF/Turtle."),
		mcp.WithString("descriptor", mcp.Required(), mcp.Description(descriptorHelp)),
	), s.handleRender)

	s.mcpServer.AddTool(mcp.NewTool("activate_vocabulary",
		mcp.WithDescription("Merge the prefixes of the descriptor's selected ontologies and list their terms."),
		mcp.WithString("descriptor", mcp.Required(), mcp.Description(descriptorHelp)),
		mcp.WithOutputSchema[ActivationResponse](),
	), mcp.NewStructuredToolHandler(s.handleActivate))

	s.mcpServer.AddTool(mcp.NewTool("list_ontologies",
		mcp.WithDescription("List the ontologies that can be selected."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.studio.Catalog().List())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("save_draft",
		mcp.WithDescription("Store a descriptor as a draft named after its token."),
		mcp.WithString("descriptor", mcp.Required(), mcp.Description(descriptorHelp)),
		mcp.WithOutputSchema[domain.DraftInfo](),
	), mcp.NewStructuredToolHandler(s.handleSaveDraft))

	s.mcpServer.AddTool(mcp.NewTool("load_draft",
		mcp.WithDescription("Load a stored draft."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Draft ID as returned by save_draft or list_drafts")),
		mcp.WithOutputSchema[domain.TokenDescriptor](),
	), mcp.NewStructuredToolHandler(s.handleLoadDraft))

	s.mcpServer.AddTool(mcp.NewTool("list_drafts",
		mcp.WithDescription("List stored drafts."),
		mcp.WithOutputSchema[DraftListResponse](),
	), mcp.NewStructuredToolHandler(s.handleListDrafts))

	s.mcpServer.AddTool(mcp.NewTool("delete_draft",
		mcp.WithDescription("Delete a stored draft. Unknown IDs are ignored."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Draft ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("id", "")
		if err := s.studio.DeleteDraft(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
		}
		return mcp.NewToolResultText("deleted " + id), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("publish",
		mcp.WithDescription("Render a descriptor and publish the Turtle document, returning its content address."),
		mcp.WithString("descriptor", mcp.Required(), mcp.Description(descriptorHelp)),
		mcp.WithOutputSchema[semtoken.PublishResult](),
	), mcp.NewStructuredToolHandler(s.handlePublish))
}

// Handler methods for structured tools

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := decodeDescriptor(request.GetString("descriptor", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.studio.Render(d)), nil
}

func (s *Server) handleActivate(ctx context.Context, request mcp.CallToolRequest, args DescriptorArgs) (ActivationResponse, error) {
	d, err := decodeDescriptor(args.Descriptor)
	if err != nil {
		return ActivationResponse{}, err
	}
	out, vocab := s.studio.Activate(d)
	return ActivationResponse{Descriptor: out, Vocab: vocab}, nil
}

func (s *Server) handleSaveDraft(ctx context.Context, request mcp.CallToolRequest, args DescriptorArgs) (domain.DraftInfo, error) {
	d, err := decodeDescriptor(args.Descriptor)
	if err != nil {
		return domain.DraftInfo{}, err
	}
	return s.studio.SaveDraft(ctx, d)
}

func (s *Server) handleLoadDraft(ctx context.Context, request mcp.CallToolRequest, args DraftArgs) (domain.TokenDescriptor, error) {
	return s.studio.LoadDraft(ctx, args.ID)
}

func (s *Server) handleListDrafts(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (DraftListResponse, error) {
	drafts, err := s.studio.ListDrafts(ctx)
	if err != nil {
		return DraftListResponse{}, err
	}
	if drafts == nil {
		drafts = []domain.DraftInfo{}
	}
	return DraftListResponse{Drafts: drafts}, nil
}

func (s *Server) handlePublish(ctx context.Context, request mcp.CallToolRequest, args DescriptorArgs) (semtoken.PublishResult, error) {
	d, err := decodeDescriptor(args.Descriptor)
	if err != nil {
		return semtoken.PublishResult{}, err
	}
	res, err := s.studio.Publish(ctx, d)
	if err != nil {
		s.logger.Error("MCP publish failed", "err", err)
	}
	return res, err
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(OntologiesURI, "Ontology catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.studio.Catalog().List())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      OntologiesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func decodeDescriptor(raw string) (domain.TokenDescriptor, error) {
	if raw == "" {
		raw = "{}"
	}
	return domain.DecodeDraft([]byte(raw))
}
