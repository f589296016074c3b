// Package credits implements the transactional credit ledger and the
// pricing catalogs consumed by the billing collaborator.
package credits

import "adforge/internal/domain"

// Credit costs per generation action.
const (
	CostFullPack     = 10
	CostHookOnly     = 2
	CostScriptOnly   = 3
	CostSectionRegen = 1
)

// SectionCost returns the debit amount for regenerating a single section.
func SectionCost(section domain.Section) int {
	switch section {
	case domain.SectionHooks:
		return CostHookOnly
	case domain.SectionScripts:
		return CostScriptOnly
	default:
		return CostSectionRegen
	}
}

// Plan describes a subscription tier and its monthly credit grant.
type Plan struct {
	ID      string
	Name    string
	Price   int // cents
	Credits int
}

// Pack describes a one-time credit purchase.
type Pack struct {
	ID      string
	Name    string
	Price   int // cents
	Credits int
}

// Plans is the subscription catalog, keyed by plan id.
var Plans = map[string]Plan{
	"starter":      {ID: "starter", Name: "Starter", Price: 2900, Credits: 100},
	"professional": {ID: "professional", Name: "Professional", Price: 7900, Credits: 500},
	"agency":       {ID: "agency", Name: "Agency", Price: 19900, Credits: 2000},
}

// Packs is the one-time purchase catalog, keyed by pack id.
var Packs = map[string]Pack{
	"small":  {ID: "small", Name: "50 Credits", Price: 990, Credits: 50},
	"medium": {ID: "medium", Name: "150 Credits", Price: 2490, Credits: 150},
	"large":  {ID: "large", Name: "500 Credits", Price: 6990, Credits: 500},
}
