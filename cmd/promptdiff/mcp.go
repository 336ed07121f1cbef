package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark3labs/promptdiff/internal/logger"
	"github.com/mark3labs/promptdiff/internal/mcpserver"
	"github.com/mark3labs/promptdiff/internal/store"
)

var (
	flagMCPStore bool
	flagMCPHTTP  bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve catalog and diff tools over MCP",
	Long: `Expose the version catalog and prompt diffs as MCP tools over
stdin/stdout, for use by MCP-capable agents and editors. With --http the
tools are served on a local HTTP endpoint instead; the endpoint URL is
printed on startup.

Tools: list-versions, get-prompt, diff-prompts, history.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&flagMCPStore, "store", false, "open the embedded store so the history tool has data")
	mcpCmd.Flags().BoolVar(&flagMCPHTTP, "http", false, "serve on a local HTTP endpoint instead of stdio")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogFile, cfg.LogLevel); err == nil {
		defer logger.Sync()
	}

	var st *store.Store
	if flagMCPStore {
		ns, err := store.StartEmbedded(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		nc, err := store.ConnectInProcess(ns)
		if err != nil {
			ns.Shutdown()
			return fmt.Errorf("failed to connect to store: %w", err)
		}
		defer func() { _ = store.Shutdown(nc, ns) }()

		st, err = store.Open(cmd.Context(), nc)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
	}

	srv := mcpserver.New(client, st)
	if flagMCPHTTP {
		if _, err := srv.Start(cmd.Context()); err != nil {
			return err
		}
		defer func() { _ = srv.Stop() }()
		fmt.Printf("MCP endpoint: %s\n", srv.URL())
		<-cmd.Context().Done()
		return nil
	}
	return srv.ServeStdio()
}
