package jobserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_vetjobs/internal/toolutil"
)

func registerMatch(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "vet_job_match",
		Description: "Match a veteran's skills against job listings. Searches with the given filters, then keeps listings sharing at least one skill (exact or fuzzy word overlap) and scores each 0-100 weighting required skills above preferred ones. Sorted by match_score.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.match)
}

func (t *tools) match(ctx context.Context, _ *mcp.CallToolRequest, input toolutil.MatchInput) (*mcp.CallToolResult, toolutil.MatchOutput, error) {
	if len(input.Skills) == 0 {
		return nil, toolutil.MatchOutput{}, fmt.Errorf("skills is required")
	}
	if err := toolutil.Validate(input); err != nil {
		return nil, toolutil.MatchOutput{}, err
	}
	results, err := t.svc.Match(ctx, input.Filters.Params(), input.Skills)
	if err != nil {
		slog.Warn("vet_job_match failed", slog.Any("error", err))
		return nil, toolutil.MatchOutput{}, fmt.Errorf("match failed: %w", err)
	}
	return nil, toolutil.NewMatchOutput(results), nil
}
