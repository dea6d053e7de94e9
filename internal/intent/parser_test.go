package intent

import (
	"errors"
	"testing"
)

func TestParseSingleUpdate(t *testing.T) {
	raw := `Sure! Here is the update you asked for:
` + "```json" + `
{"producto": "etanol", "valor": 10, "accion": "sumar", "unidad": "mL"}
` + "```" + `
Let me know if you need anything else.`

	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Kind != KindSingle {
		t.Fatalf("expected KindSingle, got %v", parsed.Kind)
	}
	in := parsed.Intent
	if in.ProductMention != "etanol" {
		t.Errorf("mention: got %q", in.ProductMention)
	}
	if in.Quantity == nil || *in.Quantity != 10 {
		t.Errorf("quantity: got %v", in.Quantity)
	}
	if in.Action != ActionAdd {
		t.Errorf("action: got %q", in.Action)
	}
	if in.Unit != "mL" {
		t.Errorf("unit: got %q", in.Unit)
	}
}

func TestParseSameAsBareSubstring(t *testing.T) {
	// Embedding the object in prose must not change the extracted intent.
	bare := `{"producto": "acetona", "valor": 3, "accion": "reemplazar"}`
	wrapped := "The inventory assistant says: " + bare + " — done!"

	p1, err := Parse(bare)
	if err != nil {
		t.Fatalf("Parse bare: %v", err)
	}
	p2, err := Parse(wrapped)
	if err != nil {
		t.Fatalf("Parse wrapped: %v", err)
	}
	if *p1.Intent.Quantity != *p2.Intent.Quantity || p1.Intent.Action != p2.Intent.Action ||
		p1.Intent.ProductMention != p2.Intent.ProductMention {
		t.Errorf("intents differ: %+v vs %+v", p1.Intent, p2.Intent)
	}
}

func TestParseSingleQuotes(t *testing.T) {
	parsed, err := Parse(`{'producto': 'kit pcr', 'valor': '5', 'unidad': 'kits'}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	in := parsed.Intent
	if in.ProductMention != "kit pcr" {
		t.Errorf("mention: got %q", in.ProductMention)
	}
	if in.Quantity == nil || *in.Quantity != 5 {
		t.Errorf("quantity coerced from string: got %v", in.Quantity)
	}
	if in.Unit != "kits" {
		t.Errorf("unit: got %q", in.Unit)
	}
}

func TestParseNestedBracesInProse(t *testing.T) {
	// A naive first-{/last-} slice would swallow the trailing brace.
	raw := `{"producto": "guantes", "valor": 1} and remember {curly} notation`
	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Intent.ProductMention != "guantes" {
		t.Errorf("mention: got %q", parsed.Intent.ProductMention)
	}
}

func TestParseBatchForm(t *testing.T) {
	raw := `UPDATE_BATCH: [{"id":1,"cantidad_final":3,"diferencia":-2,"nombre":"Ethanol 96%"}]`
	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Kind != KindBatch {
		t.Fatalf("expected KindBatch, got %v", parsed.Kind)
	}
	if len(parsed.Batch) != 1 {
		t.Fatalf("expected 1 update, got %d", len(parsed.Batch))
	}
	upd := parsed.Batch[0]
	if upd.ItemID != "1" {
		t.Errorf("item id: got %q", upd.ItemID)
	}
	if upd.FinalQuantity == nil || *upd.FinalQuantity != 3 {
		t.Errorf("final quantity: got %v", upd.FinalQuantity)
	}
	if upd.Delta == nil || *upd.Delta != -2 {
		t.Errorf("delta: got %v", upd.Delta)
	}
	if upd.Name != "Ethanol 96%" {
		t.Errorf("name: got %q", upd.Name)
	}
}

func TestParseNoStructuredData(t *testing.T) {
	for _, raw := range []string{
		"I could not find any product in your message.",
		"",
		"unbalanced { never closes",
	} {
		_, err := Parse(raw)
		if !errors.Is(err, ErrNoStructuredData) {
			t.Errorf("Parse(%q): expected ErrNoStructuredData, got %v", raw, err)
		}
	}
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse(`{"producto": etanol oops}`)
	var malformed *MalformedJSONError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedJSONError, got %v", err)
	}
}

func TestParseInvalidAction(t *testing.T) {
	_, err := Parse(`{"producto": "etanol", "accion": "explotar"}`)
	var invalid *InvalidActionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidActionError, got %v", err)
	}
	if invalid.Value != "explotar" {
		t.Errorf("value: got %q", invalid.Value)
	}
}

func TestParseActionCaseInsensitive(t *testing.T) {
	cases := map[string]Action{
		"SUMAR":      ActionAdd,
		"Add":        ActionAdd,
		"REEMPLAZAR": ActionReplace,
		"Replace":    ActionReplace,
		"set":        ActionReplace,
	}
	for raw, want := range cases {
		parsed, err := Parse(`{"producto": "x", "accion": "` + raw + `"}`)
		if err != nil {
			t.Fatalf("Parse action %q: %v", raw, err)
		}
		if parsed.Intent.Action != want {
			t.Errorf("action %q: expected %q, got %q", raw, want, parsed.Intent.Action)
		}
	}
}

func TestParseActionDefaultsToAdd(t *testing.T) {
	parsed, err := Parse(`{"producto": "etanol", "valor": 2}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Intent.Action != ActionAdd {
		t.Errorf("expected default ActionAdd, got %q", parsed.Intent.Action)
	}
}

func TestParseInvalidNumber(t *testing.T) {
	_, err := Parse(`{"producto": "etanol", "valor": "muchos"}`)
	var invalid *InvalidNumberError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidNumberError, got %v", err)
	}
	if invalid.Field != "valor" {
		t.Errorf("field: got %q", invalid.Field)
	}
}

func TestParseNullFieldsIgnored(t *testing.T) {
	parsed, err := Parse(`{"producto": "etanol", "valor": null, "unidad": null, "umbral_minimo": null}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	in := parsed.Intent
	if in.Quantity != nil || in.Threshold != nil || in.Unit != "" {
		t.Errorf("null fields should stay unset: %+v", in)
	}
	if !in.Empty() {
		t.Error("expected Empty() for intent with only a mention")
	}
}

func TestParseEnglishAliases(t *testing.T) {
	parsed, err := Parse(`{"product": "ethanol", "quantity": 4, "action": "replace", "location": "shelf B", "threshold": 2, "category": "SOLVENTS"}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	in := parsed.Intent
	if in.ProductMention != "ethanol" || *in.Quantity != 4 || in.Action != ActionReplace ||
		in.Location != "shelf B" || *in.Threshold != 2 || in.Category != "SOLVENTS" {
		t.Errorf("unexpected intent: %+v", in)
	}
}

func TestParseApostropheInsideDoubleQuotes(t *testing.T) {
	parsed, err := Parse(`{"producto": "bob's buffer", "valor": 1}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Intent.ProductMention != "bob's buffer" {
		t.Errorf("mention: got %q", parsed.Intent.ProductMention)
	}
}
