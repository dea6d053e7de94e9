package mcp

import "github.com/mark3labs/mcp-go/mcp"

// inventoryCommandTool defines the inventory_command MCP tool.
var inventoryCommandTool = mcp.NewTool("inventory_command",
	mcp.WithDescription("Apply an inventory instruction to the stockroom catalog. The text must be the structured reply form: a JSON object with product, quantity, unit, action (add/replace), location and threshold, or a JSON array of batch rows. Plain text is echoed back as a conversational reply."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Raw reply text carrying the instruction JSON"),
	),
	mcp.WithString("actor",
		mcp.Description("Who is making the change (recorded in the movement log)"),
	),
	mcp.WithString("session",
		mcp.Description("Undo session key (default shared session)"),
	),
)

// listItemsTool defines the list_items MCP tool.
var listItemsTool = mcp.NewTool("list_items",
	mcp.WithDescription("List catalog items with quantities, units and thresholds."),
	mcp.WithBoolean("low_only",
		mcp.Description("Only return items at or below their alert threshold"),
	),
)

// undoLastTool defines the undo_last MCP tool.
var undoLastTool = mcp.NewTool("undo_last",
	mcp.WithDescription("Undo the last applied inventory command by restoring the items it touched."),
	mcp.WithString("session",
		mcp.Description("Undo session key (default shared session)"),
	),
)
