package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mark3labs/promptdiff/internal/diffview"
)

// handleListVersions returns the version catalog, one label per line.
func (s *Server) handleListVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	versions, err := s.client.LoadVersions(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load versions: %v", err)), nil
	}
	if len(versions) == 0 {
		return mcp.NewToolResultText("no versions published"), nil
	}
	return mcp.NewToolResultText(strings.Join(versions, "\n")), nil
}

// handleGetPrompt returns the raw prompt text for one version.
func (s *Server) handleGetPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	version, ok := args["version"].(string)
	if !ok || version == "" {
		return mcp.NewToolResultError("missing or empty 'version' parameter"), nil
	}

	text, err := s.client.FetchPrompt(ctx, version)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch prompt %s: %v", version, err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// handleDiffPrompts fetches both sides and returns a unified diff.
func (s *Server) handleDiffPrompts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	from, ok := args["from"].(string)
	if !ok || from == "" {
		return mcp.NewToolResultError("missing or empty 'from' parameter"), nil
	}
	to, ok := args["to"].(string)
	if !ok || to == "" {
		return mcp.NewToolResultError("missing or empty 'to' parameter"), nil
	}

	pair, err := s.client.FetchPair(ctx, from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch prompts: %v", err)), nil
	}

	diff := diffview.Unified(from, to, pair.From, pair.To)
	if strings.TrimSpace(diff) == "" || pair.From == pair.To {
		return mcp.NewToolResultText(fmt.Sprintf("No differences between %s and %s", from, to)), nil
	}
	return mcp.NewToolResultText(diff), nil
}

// handleHistory returns recent comparison events from the event log.
func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("no event log available (store disabled)"), nil
	}

	limit := 20
	args := request.GetArguments()
	if raw, ok := args["limit"].(float64); ok && raw > 0 {
		limit = int(raw)
	}

	events, err := s.store.RecentEvents(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read events: %v", err)), nil
	}
	if len(events) == 0 {
		return mcp.NewToolResultText("no recorded activity"), nil
	}

	var b strings.Builder
	for i, ev := range events {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  %-10s %s..%s", ev.Time.Format(time.RFC3339), ev.Kind, ev.From, ev.To)
		if ev.Detail != "" {
			fmt.Fprintf(&b, "  (%s)", ev.Detail)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
