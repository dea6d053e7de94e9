package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"labstock/internal/catalog"
	"labstock/internal/engine"
	"labstock/internal/snapshot"
)

// handleInventoryCommand runs one raw reply through the pipeline.
func (s *Server) handleInventoryCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	session := request.GetString("session", snapshot.DefaultSession)

	out, err := s.engine.Execute(ctx, engine.Command{
		Text:    text,
		Actor:   request.GetString("actor", "agent"),
		Session: session,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("command failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatOutcome(out)), nil
}

// handleListItems returns the catalog, optionally filtered to low stock.
func (s *Server) handleListItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var items []catalog.Item
	var err error
	if request.GetBool("low_only", false) {
		items, err = s.engine.LowStock(ctx)
	} else {
		items, err = s.store.ListAll(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing items: %v", err)), nil
	}

	if len(items) == 0 {
		return mcp.NewToolResultText("The catalog is empty."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d item(s):\n", len(items))
	for _, it := range items {
		fmt.Fprintf(&b, "- %s: %g %s", it.Name, it.Quantity, it.Unit)
		if it.Location != "" {
			fmt.Fprintf(&b, " @ %s", it.Location)
		}
		if it.Threshold > 0 {
			fmt.Fprintf(&b, " (alert at %g)", it.Threshold)
		}
		fmt.Fprintf(&b, " [id %s]\n", it.ID)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleUndoLast restores the session's last snapshot.
func (s *Server) handleUndoLast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session := request.GetString("session", snapshot.DefaultSession)

	out, err := s.engine.Undo(ctx, session)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return mcp.NewToolResultError("nothing to undo in this session"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("undo failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatOutcome(out)), nil
}

// formatOutcome renders an engine outcome as agent-readable text.
func formatOutcome(out *engine.Outcome) string {
	var b strings.Builder

	switch out.Status {
	case engine.StatusReply:
		return out.Message
	case engine.StatusAmbiguous:
		fmt.Fprintf(&b, "%s\n", out.Message)
		for _, name := range out.Candidates {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "%s: %s\n", out.Status, out.Message)
	for _, it := range out.Items {
		fmt.Fprintf(&b, "- %s: %g %s\n", it.Name, it.Quantity, it.Unit)
	}
	for _, mv := range out.Movements {
		fmt.Fprintf(&b, "movement: %s %g (%s)\n", mv.ItemName, mv.Delta, mv.Kind)
	}
	for _, ev := range out.Alerts {
		fmt.Fprintf(&b, "ALERT: %s at %g (threshold %g)\n", ev.Item.Name, ev.Quantity, ev.Threshold)
	}
	return b.String()
}
