package normalize

import "fmt"

// Kind discriminates the supported webhook shapes.
type Kind string

const (
	KindSaleUpdate     Kind = "sale_update"
	KindContractUpdate Kind = "contract_update"
	KindLeadAbandoned  Kind = "lead_abandoned"
)

// Rules is the per-kind extraction plan. The gateway moved fields around
// between webhook sub-versions, so several entries carry fallback paths; the
// extractor tries them in order.
type Rules struct {
	Name    []Path
	Email   []Path
	Phone   []Path
	Product []Path
	Status  []Path
	Amount  []Path
	Settled []Path

	// FixedAction short-circuits the status lookup for kinds that carry no
	// status field (checkout abandonment). Status paths are ignored when set.
	FixedAction string
}

// DefaultRules returns the extraction plan for each webhook kind.
func DefaultRules() map[Kind]Rules {
	return map[Kind]Rules{
		KindSaleUpdate: {
			Name:    []Path{{"client", "name"}},
			Email:   []Path{{"client", "email"}},
			Phone:   []Path{{"client", "cellphone"}},
			Product: []Path{{"product", "name"}},
			Status:  []Path{{"sale", "status"}, {"currentStatus"}, {"oldStatus"}},
			Amount:  []Path{{"sale", "amount"}},
			Settled: []Path{{"sale", "seller_balance"}},
		},
		KindContractUpdate: {
			Name:    []Path{{"client", "name"}},
			Email:   []Path{{"client", "email"}},
			Phone:   []Path{{"client", "cellphone"}},
			Product: []Path{{"product", "name"}},
			Status:  []Path{{"currentSale", "status"}, {"currentStatus"}, {"oldStatus"}},
			Amount:  []Path{{"currentSale", "amount"}},
			Settled: []Path{{"currentSale", "seller_balance"}},
		},
		KindLeadAbandoned: {
			Name:        []Path{{"lead", "name"}},
			Email:       []Path{{"lead", "email"}},
			Phone:       []Path{{"lead", "cellphone"}},
			Product:     []Path{{"product", "name"}},
			Amount:      []Path{{"product", "amount"}, {"offer", "amount"}},
			FixedAction: ActionAbandoned,
		},
	}
}

// UnsupportedEventError reports discriminators that match no known shape.
type UnsupportedEventError struct {
	Type  string
	Event string
}

func (e UnsupportedEventError) Error() string {
	if e.Event != "" {
		return fmt.Sprintf("unsupported webhook: type=%q event=%q", e.Type, e.Event)
	}
	return fmt.Sprintf("unsupported webhook: type=%q", e.Type)
}

// Classify picks the webhook shape from the type/event discriminators.
// Order matters: lead payloads are only accepted for the checkoutAbandoned
// event, while sale and contract match on type alone.
func Classify(payload map[string]any) (Kind, error) {
	typ, _ := payload["type"].(string)
	event, _ := payload["event"].(string)

	switch {
	case typ == "lead" && event == "checkoutAbandoned":
		return KindLeadAbandoned, nil
	case typ == "sale":
		return KindSaleUpdate, nil
	case typ == "contract":
		return KindContractUpdate, nil
	}
	return "", UnsupportedEventError{Type: typ, Event: event}
}
