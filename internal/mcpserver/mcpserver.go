// Package mcpserver exposes the composer as Model Context Protocol tools
// over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alkime/blogsmith/internal/archive"
	"github.com/alkime/blogsmith/internal/content"
	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/tone"
	"github.com/alkime/blogsmith/pkg/collections"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "blogsmith"

// Server wraps the MCP server and the collaborators its tools use.
type Server struct {
	mcpServer *server.MCPServer
	catalog   *content.Catalog
	archive   *archive.Store
	logger    *slog.Logger
}

// New registers the composer tools. store may be nil, in which case
// composed posts are not archived.
func New(version string, store *archive.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mcpServer: server.NewMCPServer(serverName, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		catalog: content.Default(),
		archive: store,
		logger:  logger,
	}
	s.registerTools()

	return s
}

// Serve blocks serving MCP over stdin/stdout.
func (s *Server) Serve() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("mcp server failed: %w", err)
	}
	return nil
}

func toneIDs() []string {
	return collections.Apply(tone.All(), tone.Tone.String)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_tones",
		mcp.WithDescription("Lists the writing tones a blog post can be composed in."),
	), s.handleListTones)

	s.mcpServer.AddTool(mcp.NewTool("compose_post",
		mcp.WithDescription("Composes a short blog post about a topic in the chosen tone."),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("What the post is about"),
		),
		mcp.WithString("tone",
			mcp.Description("Tone ID; defaults to casual"),
			mcp.Enum(toneIDs()...),
		),
	), s.handleComposePost)

	s.mcpServer.AddTool(mcp.NewTool("suggest_filename",
		mcp.WithDescription("Suggests the download filename for a post about a topic."),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("The post topic"),
		),
	), s.handleSuggestFilename)
}

func (s *Server) handleListTones(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tones available:\n", tone.Count))
	for _, t := range tone.All() {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", t.String(), t.Label(), t.Description()))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleComposePost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := request.GetString("topic", "")
	if err := session.ValidateTopic(topic); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t := tone.Default()
	if id := request.GetString("tone", ""); id != "" {
		parsed, err := tone.Parse(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t = parsed
	}

	composed, err := s.catalog.Compose(topic, t)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Compose failed: %v", err)), nil
	}

	if s.archive != nil {
		_, err := s.archive.Put(archive.Entry{
			SessionID:   "mcp",
			Topic:       topic,
			Tone:        t,
			Content:     composed.Content,
			WordCount:   composed.WordCount,
			GeneratedAt: time.Now(),
		})
		if err != nil {
			s.logger.Warn("Failed to archive composed post", "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header := fmt.Sprintf("%s | %s Tone | %d words\n\n", session.DownloadFilename(topic), t.Label(), composed.WordCount)

	return mcp.NewToolResultText(header + composed.Content), nil
}

func (s *Server) handleSuggestFilename(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := request.GetString("topic", "")
	if err := session.ValidateTopic(topic); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(session.DownloadFilename(topic)), nil
}
