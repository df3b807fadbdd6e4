package jobserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_vetjobs/internal/engine/jobs"
)

// RegisterTools registers the veteran job tools on the given MCP server:
// vet_job_search, vet_job_match, vet_job_recommend.
func RegisterTools(server *mcp.Server, svc *jobs.Service) {
	t := &tools{svc: svc}
	registerSearch(server, t)
	registerMatch(server, t)
	registerRecommend(server, t)
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 3

type tools struct {
	svc *jobs.Service
}
