package normalize

import (
	"strconv"
	"strings"
)

// Pipeline turns one raw webhook payload into one Record. It holds only
// static tables and rules, so a single value can serve concurrent requests.
type Pipeline struct {
	Tables Tables
	Rules  map[Kind]Rules
}

// NewPipeline builds a pipeline with the default vocabulary and extraction
// rules.
func NewPipeline() *Pipeline {
	return &Pipeline{Tables: DefaultTables(), Rules: DefaultRules()}
}

// PayloadError marks structural problems with the inbound payload. Unlike
// per-field misses, these abort processing.
type PayloadError string

func (e PayloadError) Error() string { return string(e) }

// Unwrap strips the relay delivery envelope: some deliveries arrive as a
// one-element array of {body, headers} objects, others as a bare object with
// a body field. Anything else passes through untouched.
func Unwrap(raw any) any {
	if arr, ok := raw.([]any); ok && len(arr) > 0 {
		if m, ok := arr[0].(map[string]any); ok {
			if body, ok := m["body"].(map[string]any); ok {
				return body
			}
		}
		return raw
	}
	if m, ok := raw.(map[string]any); ok {
		if body, ok := m["body"].(map[string]any); ok {
			return body
		}
	}
	return raw
}

// Normalize runs the full pipeline over one decoded JSON payload. A payload
// that is not an object after unwrapping, or whose discriminators match no
// known shape, returns an error; every other problem degrades the affected
// field to null.
func (p *Pipeline) Normalize(raw any) (Record, Kind, error) {
	payload, ok := Unwrap(raw).(map[string]any)
	if !ok {
		return Record{}, "", PayloadError("payload must be a JSON object")
	}

	kind, err := Classify(payload)
	if err != nil {
		return Record{}, "", err
	}
	rules := p.Rules[kind]

	rec := Record{
		Name:  cleanString(Extract(payload, rules.Name)),
		Email: cleanString(Extract(payload, rules.Email)),
		Phone: coercePhone(Extract(payload, rules.Phone)),
	}

	if name, ok := Extract(payload, rules.Product).(string); ok {
		if slug := p.Tables.ProductSlug(name); slug != "" {
			rec.Product = &slug
		}
	}

	if rules.FixedAction != "" {
		action := rules.FixedAction
		rec.Action = &action
	} else if status, ok := Extract(payload, rules.Status).(string); ok {
		if action, ok := p.Tables.Action(status); ok {
			rec.Action = &action
		}
	}

	rec.Tag = ComposeTag(rec.Action, rec.Product)
	rec.ProductID = rec.Tag

	rec.Amount = AmountInt(Extract(payload, rules.Amount))

	// The settled amount only exists for paid sales; any other action leaves
	// it null even when the payload carries a balance.
	if rec.Action != nil && *rec.Action == ActionBuyer {
		rec.SettledAmount = AmountFloat(Extract(payload, rules.Settled))
	}

	return rec, kind, nil
}

// cleanString keeps trimmed, non-empty strings and discards everything else.
func cleanString(raw any) *string {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// coercePhone additionally tolerates numeric phones sent without quotes.
func coercePhone(raw any) *string {
	if s := cleanString(raw); s != nil {
		return s
	}
	switch v := raw.(type) {
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(v)
		return &s
	}
	return nil
}
