package llm

import (
	"context"
	"fmt"
	"strings"

	"labstock/internal/catalog"
)

// systemPrompt fixes the JSON contract the intent parser understands.
const systemPrompt = `You are an inventory assistant for a laboratory stockroom.
Turn the user's instruction into exactly one JSON object:
{
  "product": "name as mentioned",
  "quantity": number or null,
  "unit": "unit or null",
  "action": "add" or "replace",
  "location": "text or null",
  "threshold": number or null,
  "category": "text or null"
}
Use "add" when the user adds or removes stock (negative quantity removes),
"replace" when they state the amount on hand. If the instruction updates
several known items at once, respond instead with a JSON array of
{"id", "cantidad_final", "diferencia", "nombre"} objects.
If the message is not an inventory instruction, answer conversationally
without any JSON.`

// BuildMessages assembles the conversation for one instruction. When a
// catalog is given, a compact export is included so the model can echo ids
// back in batch replies.
func BuildMessages(instruction string, items []catalog.Item) []Message {
	msgs := []Message{{Role: RoleSystem, Content: systemPrompt}}

	if len(items) > 0 {
		var b strings.Builder
		b.WriteString("Current catalog (id | name | quantity | unit):\n")
		for _, it := range items {
			fmt.Fprintf(&b, "%s | %s | %g | %s\n", it.ID, it.Name, it.Quantity, it.Unit)
		}
		msgs = append(msgs, Message{Role: RoleSystem, Content: b.String()})
	}

	msgs = append(msgs, Message{Role: RoleUser, Content: instruction})
	return msgs
}

// GenerateReply sends one instruction to the provider and returns the raw
// reply text for the core to parse. Timeouts are the caller's business via ctx.
func GenerateReply(ctx context.Context, p Provider, instruction string, items []catalog.Item) (string, error) {
	resp, err := p.Complete(ctx, CompletionRequest{
		Messages:    BuildMessages(instruction, items),
		MaxTokens:   1024,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("completing instruction: %w", err)
	}
	return resp.Content, nil
}
