package jobserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_vetjobs/internal/toolutil"
)

func registerSearch(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "vet_job_search",
		Description: "Search veteran-friendly job listings. Without use_external_sources it filters the built-in veteran dataset by keywords, location, MOS codes, clearance, military skills, remote, experience and more. With use_external_sources it queries live sources for the region (canada: Job Bank, Adzuna, RemoteOK; us: Adzuna, RemoteOK), first success wins. Returns canonical job records.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.search)
}

func (t *tools) search(ctx context.Context, _ *mcp.CallToolRequest, input toolutil.SearchInput) (*mcp.CallToolResult, toolutil.SearchOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, toolutil.SearchOutput{}, err
	}
	p := input.Params()
	listings, err := t.svc.Search(ctx, p)
	if err != nil {
		slog.Warn("vet_job_search failed", slog.Any("error", err))
		return nil, toolutil.SearchOutput{}, fmt.Errorf("search failed: %w", err)
	}
	return nil, toolutil.NewSearchOutput(p, listings), nil
}
