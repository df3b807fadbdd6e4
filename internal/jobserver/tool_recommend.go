package jobserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_vetjobs/internal/toolutil"
)

func registerRecommend(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "vet_job_recommend",
		Description: "Recommend jobs for a veteran profile. Searches with the given filters and ranks listings by a 0-1 relevance score combining skills, years of experience, preferred locations, job types and salary. Returns the top results (default 10).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.recommend)
}

func (t *tools) recommend(ctx context.Context, _ *mcp.CallToolRequest, input toolutil.RecommendInput) (*mcp.CallToolResult, toolutil.RecommendOutput, error) {
	if err := toolutil.Validate(input); err != nil {
		return nil, toolutil.RecommendOutput{}, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = toolutil.DefaultRecommendLimit
	}
	recs, err := t.svc.Recommend(ctx, input.Filters.Params(), input.Profile, limit)
	if err != nil {
		slog.Warn("vet_job_recommend failed", slog.Any("error", err))
		return nil, toolutil.RecommendOutput{}, fmt.Errorf("recommend failed: %w", err)
	}
	return nil, toolutil.NewRecommendOutput(recs), nil
}
