package mcpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mark3labs/promptdiff/internal/catalog"
)

// setupTestServer creates a server backed by a fake data host.
func setupTestServer(t *testing.T) (*Server, func()) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/data/versions.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"versions":[{"version":"1.0.0"},{"version":"1.1.0"}]}`))
	})
	mux.HandleFunc("/data/prompts-1.0.0.md", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# Prompts\n\nold body\n"))
	})
	mux.HandleFunc("/data/prompts-1.1.0.md", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# Prompts\n\nnew body\n"))
	})
	host := httptest.NewServer(mux)

	client := catalog.NewClient(host.URL, time.Second)
	srv := New(client, nil)

	return srv, host.Close
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestHandleListVersions(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	result, err := srv.handleListVersions(context.Background(), callRequest("list-versions", nil))
	if err != nil {
		t.Fatalf("handleListVersions: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", extractText(result))
	}
	if got := extractText(result); got != "1.0.0\n1.1.0" {
		t.Errorf("versions: got %q", got)
	}
}

func TestHandleGetPrompt(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	result, err := srv.handleGetPrompt(context.Background(), callRequest("get-prompt", map[string]any{
		"version": "1.0.0",
	}))
	if err != nil {
		t.Fatalf("handleGetPrompt: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", extractText(result))
	}
	if got := extractText(result); !strings.Contains(got, "old body") {
		t.Errorf("prompt text: got %q", got)
	}
}

func TestHandleGetPrompt_MissingVersion(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	result, err := srv.handleGetPrompt(context.Background(), callRequest("get-prompt", map[string]any{}))
	if err != nil {
		t.Fatalf("handleGetPrompt: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing version")
	}
}

func TestHandleGetPrompt_UnknownVersion(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	result, err := srv.handleGetPrompt(context.Background(), callRequest("get-prompt", map[string]any{
		"version": "9.9.9",
	}))
	if err != nil {
		t.Fatalf("handleGetPrompt: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for unknown version")
	}
}

func TestHandleDiffPrompts(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	result, err := srv.handleDiffPrompts(context.Background(), callRequest("diff-prompts", map[string]any{
		"from": "1.0.0",
		"to":   "1.1.0",
	}))
	if err != nil {
		t.Fatalf("handleDiffPrompts: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", extractText(result))
	}

	got := extractText(result)
	if !strings.Contains(got, "-old body") || !strings.Contains(got, "+new body") {
		t.Errorf("diff output missing changes:\n%s", got)
	}
}

func TestHandleDiffPrompts_Identical(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	result, err := srv.handleDiffPrompts(context.Background(), callRequest("diff-prompts", map[string]any{
		"from": "1.0.0",
		"to":   "1.0.0",
	}))
	if err != nil {
		t.Fatalf("handleDiffPrompts: %v", err)
	}
	if got := extractText(result); got != "No differences between 1.0.0 and 1.0.0" {
		t.Errorf("identical diff: got %q", got)
	}
}

func TestHandleDiffPrompts_MissingArgs(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	result, err := srv.handleDiffPrompts(context.Background(), callRequest("diff-prompts", map[string]any{
		"from": "1.0.0",
	}))
	if err != nil {
		t.Fatalf("handleDiffPrompts: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing 'to'")
	}
}

func TestHandleHistory_NoStore(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	result, err := srv.handleHistory(context.Background(), callRequest("history", nil))
	if err != nil {
		t.Fatalf("handleHistory: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result without a store")
	}
}

func TestServerStartStop(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	port, err := srv.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if port == 0 {
		t.Error("expected a non-zero port")
	}
	if !strings.Contains(srv.URL(), "/mcp") {
		t.Errorf("URL: got %q", srv.URL())
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	// Stop is idempotent
	if err := srv.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestServerHTTPServesToolList(t *testing.T) {
	srv, cleanup := setupTestServer(t)
	defer cleanup()

	if _, err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	payload := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`

	// The listener binds on a goroutine; retry until it accepts.
	var resp *http.Response
	var err error
	for attempt := 0; attempt < 50; attempt++ {
		req, rerr := http.NewRequest(http.MethodPost, srv.URL(), strings.NewReader(payload))
		if rerr != nil {
			t.Fatalf("NewRequest: %v", rerr)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json, text/event-stream")
		resp, err = http.DefaultClient.Do(req)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("POST %s: %v", srv.URL(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	for _, tool := range []string{"list-versions", "get-prompt", "diff-prompts", "history"} {
		if !strings.Contains(string(body), tool) {
			t.Errorf("tools/list response missing %q", tool)
		}
	}
}
