package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"labstock/internal/engine"
	"labstock/internal/intent"
	"labstock/internal/llm"
	"labstock/internal/snapshot"
)

var (
	applyRaw     bool
	applyActor   string
	applySession string
)

var applyCmd = &cobra.Command{
	Use:   "apply <instruction>",
	Short: "Run one inventory instruction through the pipeline",
	Long: `Sends the instruction to the configured LLM provider, then applies the
structured reply to the catalog. With --raw the argument is treated as
the model reply itself, useful for piping replies captured elsewhere.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStack(false)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()

		text := args[0]
		if !applyRaw {
			provider, err := llm.NewProvider(st.cfg)
			if err != nil {
				return err
			}
			items, err := st.store.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			text, err = llm.GenerateReply(ctx, provider, args[0], items)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Printf("model reply: %s\n", text)
			}
		}

		actor := applyActor
		if actor == "" {
			actor = st.cfg.Actor
		}

		out, err := st.engine.Execute(ctx, engine.Command{
			Text:    text,
			Actor:   actor,
			Session: applySession,
		})
		if err != nil {
			return err
		}

		// When the mention matches several items, let the operator pick one
		// and re-run with the exact name.
		if out.Status == engine.StatusAmbiguous {
			out, err = disambiguate(ctx, st, text, actor, out.Candidates)
			if err != nil {
				return err
			}
		}

		printOutcome(out)
		return nil
	},
}

// disambiguate prompts for a candidate and re-runs the command with the
// product mention pinned to the chosen catalog name.
func disambiguate(ctx context.Context, st *stack, text, actor string, candidates []string) (*engine.Outcome, error) {
	prompt := promptui.Select{
		Label: "Several items match; pick one",
		Items: candidates,
	}
	_, choice, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	parsed, err := intent.Parse(text)
	if err != nil {
		return nil, err
	}

	in := parsed.Intent
	payload := map[string]any{
		"product": choice,
		"action":  string(in.Action),
	}
	if in.Quantity != nil {
		payload["quantity"] = *in.Quantity
	}
	if in.Unit != "" {
		payload["unit"] = in.Unit
	}
	if in.Location != "" {
		payload["location"] = in.Location
	}
	if in.Threshold != nil {
		payload["threshold"] = *in.Threshold
	}
	if in.Category != "" {
		payload["category"] = in.Category
	}

	pinned, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("building pinned command: %w", err)
	}

	return st.engine.Execute(ctx, engine.Command{
		Text:    string(pinned),
		Actor:   actor,
		Session: applySession,
	})
}

func printOutcome(out *engine.Outcome) {
	switch out.Status {
	case engine.StatusReply:
		fmt.Println(out.Message)
		return
	case engine.StatusAmbiguous:
		fmt.Println(out.Message)
		for _, name := range out.Candidates {
			fmt.Printf("  - %s\n", name)
		}
		return
	}

	fmt.Printf("%s: %s\n", out.Status, out.Message)
	for _, it := range out.Items {
		fmt.Printf("  %s: %g %s\n", it.Name, it.Quantity, it.Unit)
	}
	for _, mv := range out.Movements {
		fmt.Printf("  movement: %s %+g (%s)\n", mv.ItemName, mv.Delta, mv.Kind)
	}
	for _, ev := range out.Alerts {
		fmt.Printf("  ALERT: %s at %g (threshold %g)\n", ev.Item.Name, ev.Quantity, ev.Threshold)
	}
}

func init() {
	applyCmd.Flags().BoolVar(&applyRaw, "raw", false, "treat the argument as the model reply itself")
	applyCmd.Flags().StringVar(&applyActor, "actor", "", "who is making the change (default from config)")
	applyCmd.Flags().StringVar(&applySession, "session", snapshot.DefaultSession, "undo session key")
	rootCmd.AddCommand(applyCmd)
}
