package mcp

import "github.com/mark3labs/mcp-go/mcp"

func auditFileTool() mcp.Tool {
	return mcp.NewTool("audit_file",
		mcp.WithDescription("Audit a single React source file for re-render anti-patterns. Returns findings and a per-category summary as JSON."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the file to audit"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Include info-severity findings (default false)"),
		),
	)
}

func auditDirectoryTool() mcp.Tool {
	return mcp.NewTool("audit_directory",
		mcp.WithDescription("Audit every supported source file under a directory. Returns per-file reports plus aggregate totals as JSON."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the directory to audit"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Include info-severity findings (default false)"),
		),
		mcp.WithArray("include",
			mcp.Description("Override include glob patterns"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("exclude",
			mcp.Description("Override exclude glob patterns"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func listRulesTool() mcp.Tool {
	return mcp.NewTool("list_rules",
		mcp.WithDescription("List every rule the auditor can report, with severity and description."),
	)
}
