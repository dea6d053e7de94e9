// Package engine runs one inventory command through the full pipeline:
// parse the model reply, resolve the mention, plan the mutation, snapshot
// the pre-state, apply, log movements, and evaluate alerts. The engine is
// called synchronously, once per utterance, with no background work.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"labstock/internal/alert"
	"labstock/internal/catalog"
	"labstock/internal/intent"
	"labstock/internal/movement"
	"labstock/internal/planner"
	"labstock/internal/resolver"
	"labstock/internal/snapshot"
)

// Status is the terminal state of one command.
type Status string

const (
	// StatusApplied means at least one plan was written to the catalog.
	StatusApplied Status = "applied"
	// StatusAmbiguous means the mention matched several rows; the caller
	// must present the candidates, never guess.
	StatusAmbiguous Status = "ambiguous"
	// StatusNotFound means the mention matched nothing and the reply
	// carried nothing worth creating an item from.
	StatusNotFound Status = "not_found"
	// StatusNoChange means the plan was empty: nothing to do.
	StatusNoChange Status = "no_change"
	// StatusReply means the model answered conversationally with no
	// structured data; Message carries the raw text for display.
	StatusReply Status = "reply"
)

// Command is one user utterance already turned into a raw model reply.
type Command struct {
	Text    string
	Actor   string
	Session string
}

// Outcome is the result surfaced to the caller.
type Outcome struct {
	Status     Status            `json:"status"`
	Message    string            `json:"message"`
	Plans      []planner.Plan    `json:"plans,omitempty"`
	Candidates []string          `json:"candidates,omitempty"`
	Items      []catalog.Item    `json:"items,omitempty"`
	Alerts     []alert.Event     `json:"alerts,omitempty"`
	Movements  []movement.Record `json:"movements,omitempty"`
}

// Engine wires the pipeline's collaborators together.
type Engine struct {
	store     catalog.Store
	movements *movement.Store
	snapshots *snapshot.Manager
	notifier  alert.Notifier
}

// New creates an Engine. notifier may be nil when no alert sink exists.
func New(store catalog.Store, movements *movement.Store, snapshots *snapshot.Manager, notifier alert.Notifier) *Engine {
	return &Engine{
		store:     store,
		movements: movements,
		snapshots: snapshots,
		notifier:  notifier,
	}
}

// Execute runs one command to a terminal state. Parse errors other than
// "no structured data" are returned to the caller as retryable failures;
// store errors are fatal to the request and never retried here.
func (e *Engine) Execute(ctx context.Context, cmd Command) (*Outcome, error) {
	parsed, err := intent.Parse(cmd.Text)
	if errors.Is(err, intent.ErrNoStructuredData) {
		return &Outcome{Status: StatusReply, Message: strings.TrimSpace(cmd.Text)}, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	if parsed.Kind == intent.KindBatch {
		return e.executeBatch(ctx, cmd, parsed.Batch, items)
	}
	return e.executeSingle(ctx, cmd, parsed.Intent, items)
}

func (e *Engine) executeSingle(ctx context.Context, cmd Command, in intent.Intent, items []catalog.Item) (*Outcome, error) {
	res := resolver.Resolve(in.ProductMention, items)

	if res.Status == resolver.Ambiguous {
		ranked := resolver.Rank(in.ProductMention, res.Candidates)
		names := make([]string, len(ranked))
		for i, it := range ranked {
			names[i] = it.Name
		}
		return &Outcome{
			Status:     StatusAmbiguous,
			Candidates: names,
			Message:    fmt.Sprintf("%q matches %d items; pick one", in.ProductMention, len(names)),
		}, nil
	}

	plan := planner.Compute(res, in)
	if plan.Empty() {
		if res.Status == resolver.NotFound {
			return &Outcome{
				Status:  StatusNotFound,
				Message: fmt.Sprintf("nothing in the catalog matches %q; give a quantity to create it", in.ProductMention),
			}, nil
		}
		return &Outcome{Status: StatusNoChange, Message: "no changes detected"}, nil
	}

	return e.apply(ctx, cmd, []planner.Plan{plan}, items)
}

func (e *Engine) executeBatch(ctx context.Context, cmd Command, updates []intent.BatchUpdate, items []catalog.Item) (*Outcome, error) {
	plans := planner.ComputeBatch(updates, items)

	var active []planner.Plan
	skipped := 0
	for _, p := range plans {
		if p.Empty() {
			skipped++
			continue
		}
		active = append(active, p)
	}
	if len(active) == 0 {
		if skipped > 0 {
			return &Outcome{Status: StatusNoChange, Message: "no changes detected in batch"}, nil
		}
		return &Outcome{Status: StatusNoChange, Message: "empty batch"}, nil
	}

	out, err := e.apply(ctx, cmd, active, items)
	if err == nil && skipped > 0 {
		out.Message += fmt.Sprintf(" (%d rows skipped)", skipped)
	}
	return out, err
}

// apply captures the pre-state, writes every plan, then logs movements
// and evaluates alerts. Logging and alerting run to completion even if
// the caller's context is cancelled mid-request: once the catalog changed,
// the audit trail must follow.
func (e *Engine) apply(ctx context.Context, cmd Command, plans []planner.Plan, items []catalog.Item) (*Outcome, error) {
	byID := make(map[string]catalog.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	// Snapshot strictly before any write, existing rows only: the core
	// never deletes, so created rows have no pre-state to restore.
	var touched []catalog.Item
	for _, p := range plans {
		if it, ok := byID[p.TargetID]; !p.CreateNew && ok {
			touched = append(touched, it)
		}
	}
	if _, err := e.snapshots.Capture(ctx, cmd.Session, touched); err != nil {
		return nil, fmt.Errorf("capturing snapshot: %w", err)
	}

	out := &Outcome{Status: StatusApplied, Plans: plans}
	for _, p := range plans {
		var saved *catalog.Item
		var err error
		if p.CreateNew {
			saved, err = e.store.Insert(ctx, *p.NewItem)
		} else {
			item, ok := byID[p.TargetID]
			if !ok {
				err = fmt.Errorf("planned item %s vanished from catalog", p.TargetID)
			} else {
				saved, err = e.store.Upsert(ctx, p.Apply(item))
			}
		}
		if err != nil {
			// When nothing was written the new snapshot must not shadow
			// the previous still-valid one. After a partial write the new
			// snapshot stays: it holds the written rows' pre-state.
			if len(out.Items) == 0 {
				if rbErr := e.snapshots.Rollback(context.WithoutCancel(ctx), cmd.Session); rbErr != nil {
					log.Printf("engine: rolling back snapshot for %s: %v", cmd.Session, rbErr)
				}
			}
			return nil, fmt.Errorf("applying plan: %w", err)
		}
		out.Items = append(out.Items, *saved)
	}

	post := context.WithoutCancel(ctx)
	for i, p := range plans {
		item := out.Items[i]
		if p.QuantityDelta != 0 {
			if r := e.movements.RecordBestEffort(post, item.ID, item.Name, p.QuantityDelta, cmd.Actor); r != nil {
				out.Movements = append(out.Movements, *r)
			}
		}
		if ev := alert.Evaluate(item); ev != nil {
			out.Alerts = append(out.Alerts, *ev)
			if e.notifier != nil {
				e.notifier.Notify(post, *ev)
			}
		}
	}

	out.Message = applyMessage(out.Items)
	return out, nil
}

// Undo restores the session's last snapshot. Rows created by the undone
// apply stay in the catalog: the core never deletes.
func (e *Engine) Undo(ctx context.Context, session string) (*Outcome, error) {
	restored, err := e.snapshots.Undo(ctx, session)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("undoing last apply: %w", err)
	}
	return &Outcome{
		Status:  StatusApplied,
		Items:   restored,
		Message: fmt.Sprintf("restored %d item(s)", len(restored)),
	}, nil
}

// LowStock lists the items an alert evaluation currently fires for.
func (e *Engine) LowStock(ctx context.Context) ([]catalog.Item, error) {
	items, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	var low []catalog.Item
	for _, it := range items {
		if alert.Evaluate(it) != nil {
			low = append(low, it)
		}
	}
	return low, nil
}

func applyMessage(items []catalog.Item) string {
	switch len(items) {
	case 0:
		return "applied"
	case 1:
		return fmt.Sprintf("%s updated", items[0].Name)
	default:
		names := make([]string, len(items))
		for i, it := range items {
			names[i] = it.Name
		}
		return fmt.Sprintf("%d items updated: %s", len(items), strings.Join(names, ", "))
	}
}
