package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical action codes referenced outside the status table.
const (
	// ActionBuyer marks a paid sale; it gates the settled-amount field.
	ActionBuyer = "comprador"
	// ActionAbandoned is assigned to checkout-abandoned leads, which carry
	// no status of their own.
	ActionAbandoned = "abandoned"
)

// Tables holds the status and product vocabularies. They are plain data so
// tests and alternative handler configurations can swap them without touching
// code.
type Tables struct {
	// StatusActions maps lowercase gateway statuses to action codes.
	// Lookups lowercase the input; unknown statuses resolve to nothing.
	StatusActions map[string]string

	// ProductSlugs maps exact product display names (trimmed) to canonical
	// slugs. Names missing here fall back to Slugify.
	ProductSlugs map[string]string
}

// DefaultTables returns the vocabulary currently emitted by the payment
// gateway.
func DefaultTables() Tables {
	return Tables{
		StatusActions: map[string]string{
			"created":         "lead",
			"paid":            ActionBuyer,
			"waiting_payment": "pixgerado",
			"refused":         "recusado",
			"refunded":        "reembolsado",
			"chargedback":     "chargeback",
		},
		ProductSlugs: map[string]string{
			"Mentoria Black":      "mentoria-black",
			"Implementação Bravy": "implementacao-bravy",
			"Bravy Club":          "bravy-club",
			"Floow PRO":           "floow-pro",
			"Bravy Black":         "bravy-black",
			"ClickUp Pro":         "clickup-pro",
			"Club+Floow":          "club+floow",
			"ClickUp Start":       "clickup-start",
			"CRM Automatizado":    "crm-automatizado",
		},
	}
}

// Action resolves a raw gateway status to an action code.
func (t Tables) Action(status string) (string, bool) {
	a, ok := t.StatusActions[strings.ToLower(status)]
	return a, ok
}

// ProductSlug resolves a product display name to its slug, deriving one for
// names missing from the table. An empty (or whitespace-only) name has no
// slug.
func (t Tables) ProductSlug(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if slug, ok := t.ProductSlugs[name]; ok {
		return slug
	}
	return Slugify(name)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a slug from a display name: lowercase, whitespace runs
// collapse to a single hyphen, and combining marks are dropped after NFD
// decomposition ("Produto Exótico" -> "produto-exotico").
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}
