package intent

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Parse extracts a Parsed update from a raw model reply. The reply may
// carry prose before and after the JSON, markdown code fences, and single
// quotes instead of double quotes. The first top-level bracket decides the
// shape: '{' parses as a single update, '[' as a batch.
func Parse(rawText string) (*Parsed, error) {
	candidate, kind, ok := extractCandidate(rawText)
	if !ok {
		return nil, ErrNoStructuredData
	}

	candidate = stripFences(candidate)
	candidate = normalizeQuotes(candidate)

	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	if kind == KindBatch {
		var raw []map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, &MalformedJSONError{Err: err}
		}
		batch := make([]BatchUpdate, 0, len(raw))
		for _, obj := range raw {
			upd, err := batchUpdateFrom(obj)
			if err != nil {
				return nil, err
			}
			batch = append(batch, upd)
		}
		return &Parsed{Kind: KindBatch, Batch: batch}, nil
	}

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, &MalformedJSONError{Err: err}
	}
	in, err := intentFrom(obj)
	if err != nil {
		return nil, err
	}
	return &Parsed{Kind: KindSingle, Intent: *in}, nil
}

// extractCandidate scans for the first '{' or '[' and walks forward
// tracking bracket depth, string state, and escapes until the matching
// closer. Nested braces in surrounding prose cannot truncate the candidate
// the way a first-open/last-close slice would.
func extractCandidate(raw string) (candidate string, kind Kind, ok bool) {
	start := -1
	var opener, closer byte
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			start, opener, closer, kind = i, '{', '}', KindSingle
		case '[':
			start, opener, closer, kind = i, '[', ']', KindBatch
		default:
			continue
		}
		break
	}
	if start < 0 {
		return "", 0, false
	}

	depth := 0
	var quote byte // 0 when outside a string, otherwise the opening quote
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return raw[start : i+1], kind, true
			}
		}
	}
	// Opener without a matching closer: no complete pair exists.
	return "", 0, false
}

// stripFences removes markdown code-fence markers that leaked into the
// candidate substring.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

// normalizeQuotes rewrites single-quoted strings as double-quoted ones,
// leaving anything inside existing double quotes alone.
func normalizeQuotes(s string) string {
	var out bytes.Buffer
	out.Grow(len(s))
	var quote byte
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
			out.WriteByte(c)
		case c == '\\':
			escaped = true
			out.WriteByte(c)
		case quote == '"':
			if c == '"' {
				quote = 0
			}
			out.WriteByte(c)
		case quote == '\'':
			switch c {
			case '\'':
				quote = 0
				out.WriteByte('"')
			case '"':
				out.WriteString(`\"`)
			default:
				out.WriteByte(c)
			}
		case c == '"':
			quote = '"'
			out.WriteByte(c)
		case c == '\'':
			quote = '\''
			out.WriteByte('"')
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// Field aliases. The original model contract spoke Spanish; both key sets
// stay accepted so captured replies keep parsing.
var (
	productKeys   = []string{"product", "producto", "item", "name", "nombre"}
	quantityKeys  = []string{"quantity", "valor", "value", "cantidad", "amount"}
	unitKeys      = []string{"unit", "unidad"}
	actionKeys    = []string{"action", "accion"}
	locationKeys  = []string{"location", "ubicacion"}
	thresholdKeys = []string{"threshold", "umbral_minimo", "minimum"}
	categoryKeys  = []string{"category", "categoria"}

	batchIDKeys    = []string{"id", "item_id"}
	batchNameKeys  = []string{"nombre", "name", "producto", "product"}
	batchFinalKeys = []string{"cantidad_final", "final_quantity", "quantity"}
	batchDeltaKeys = []string{"diferencia", "delta", "difference"}
)

func intentFrom(obj map[string]any) (*Intent, error) {
	in := &Intent{
		ProductMention: stringField(obj, productKeys),
		Unit:           stringField(obj, unitKeys),
		Location:       stringField(obj, locationKeys),
		Category:       stringField(obj, categoryKeys),
	}

	var err error
	if in.Quantity, err = numberField(obj, quantityKeys); err != nil {
		return nil, err
	}
	if in.Threshold, err = numberField(obj, thresholdKeys); err != nil {
		return nil, err
	}

	action, found := lookup(obj, actionKeys)
	if in.Action, err = parseAction(action, found); err != nil {
		return nil, err
	}
	return in, nil
}

func batchUpdateFrom(obj map[string]any) (BatchUpdate, error) {
	upd := BatchUpdate{
		Name: stringField(obj, batchNameKeys),
	}

	// Ids arrive as numbers or strings depending on the model's mood.
	if v, ok := lookup(obj, batchIDKeys); ok && v != nil {
		switch id := v.(type) {
		case string:
			upd.ItemID = id
		case json.Number:
			upd.ItemID = id.String()
		}
	}

	var err error
	if upd.FinalQuantity, err = numberField(obj, batchFinalKeys); err != nil {
		return upd, err
	}
	if upd.Delta, err = numberField(obj, batchDeltaKeys); err != nil {
		return upd, err
	}
	return upd, nil
}

func parseAction(v any, found bool) (Action, error) {
	if !found || v == nil {
		return ActionAdd, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &InvalidActionError{Value: "non-string"}
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "add", "sum", "sumar", "agregar":
		return ActionAdd, nil
	case "replace", "set", "reemplazar":
		return ActionReplace, nil
	default:
		return "", &InvalidActionError{Value: s}
	}
}

func lookup(obj map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func stringField(obj map[string]any, keys []string) string {
	v, ok := lookup(obj, keys)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// numberField coerces a JSON number or numeric string. A missing key or an
// explicit null yields nil without error; anything else non-numeric fails.
func numberField(obj map[string]any, keys []string) (*float64, error) {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, &InvalidNumberError{Field: k}
			}
			return &f, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return nil, &InvalidNumberError{Field: k}
			}
			return &f, nil
		default:
			return nil, &InvalidNumberError{Field: k}
		}
	}
	return nil, nil
}
