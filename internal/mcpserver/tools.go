package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers all MCP tools with the server.
// Tools are registered using mcp-go schema builders to provide native MCP protocol access.
func (s *Server) registerTools() {
	// list-versions: the version catalog, oldest first
	s.mcpServer.AddTool(
		mcp.NewTool("list-versions",
			mcp.WithDescription("List all known prompt versions, oldest first"),
		),
		s.handleListVersions,
	)

	// get-prompt: raw prompt text for one version
	s.mcpServer.AddTool(
		mcp.NewTool("get-prompt",
			mcp.WithDescription("Get the raw prompt markdown for a version"),
			mcp.WithString("version", mcp.Required(), mcp.Description("Version label, e.g. 1.2.0")),
		),
		s.handleGetPrompt,
	)

	// diff-prompts: unified diff between two versions
	s.mcpServer.AddTool(
		mcp.NewTool("diff-prompts",
			mcp.WithDescription("Compute a unified diff of the prompts between two versions"),
			mcp.WithString("from", mcp.Required(), mcp.Description("Older version label")),
			mcp.WithString("to", mcp.Required(), mcp.Description("Newer version label")),
		),
		s.handleDiffPrompts,
	)

	// history: recent comparison activity from the event log
	s.mcpServer.AddTool(
		mcp.NewTool("history",
			mcp.WithDescription("Show recent comparison activity"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of events to return (default 20)")),
		),
		s.handleHistory,
	)
}
