package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/renderaudit/pkg/audit"
	"github.com/gnana997/renderaudit/pkg/rules"
)

// directoryResult is the audit_directory response shape.
type directoryResult struct {
	Reports []audit.FileReport `json:"reports"`
	Totals  rules.Summary      `json:"totals"`
}

func (s *Server) handleAuditFile(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	strict, _ := args["strict"].(bool)

	info, err := os.Stat(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid path: %v", err)), nil
	}
	if info.IsDir() {
		return mcp.NewToolResultError("path is a directory; use audit_directory"), nil
	}

	var report audit.FileReport
	if s.cache != nil {
		if cached, hit := s.cache.Get(path); hit {
			report = cached
		} else {
			report = s.auditor.AuditFile(path)
			if report.ReadError == "" {
				s.cache.Put(path, report)
			}
		}
	} else {
		report = s.auditor.AuditFile(path)
	}

	if !strict {
		report = audit.FilterInfo(report)
	}
	return jsonResult(report)
}

func (s *Server) handleAuditDirectory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	strict, _ := args["strict"].(bool)

	cfg := s.cfg
	if include := stringList(args["include"]); len(include) > 0 {
		cfg.Include = include
	}
	if exclude := stringList(args["exclude"]); len(exclude) > 0 {
		cfg.Exclude = exclude
	}

	result, err := s.auditor.Run(path, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("audit failed: %v", err)), nil
	}

	reports := result.Reports
	if !strict {
		filtered := make([]audit.FileReport, len(reports))
		for i, rep := range reports {
			filtered[i] = audit.FilterInfo(rep)
		}
		reports = filtered
	}

	var totals rules.Summary
	for _, rep := range reports {
		totals.Add(rep.Summary)
	}
	return jsonResult(directoryResult{Reports: reports, Totals: totals})
}

func (s *Server) handleListRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(rules.Catalog())
}

// stringList converts a JSON array argument to []string, dropping
// non-string elements.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
