package activity

import "strings"

// Category buckets a free-text status label. The KPI counters and the badge
// styling share this classification so they can never disagree.
type Category int

const (
	CategoryNeutral Category = iota
	CategoryLate
	CategoryDone
	CategoryInProcess
	CategoryReview
	CategoryBlocked
)

// Badge is the {background, text, icon} triple a status cell renders with.
type Badge struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Icon       string `json:"icon"`
}

type badgeRule struct {
	substrings []string
	category   Category
	badge      Badge
}

// Rule order matters: the first match wins, so over-limit outranks
// delivered, which outranks in-process, and so on.
var badgeRules = []badgeRule{
	{
		substrings: []string{"fuera de plazo", "atrasad", "atraso"},
		category:   CategoryLate,
		badge:      Badge{Background: "bg-danger", Text: "text-white", Icon: "⏰"},
	},
	{
		substrings: []string{"a tiempo", "entregado", "cerrada"},
		category:   CategoryDone,
		badge:      Badge{Background: "bg-success", Text: "text-white", Icon: "✔"},
	},
	{
		substrings: []string{"en proceso", "proceso"},
		category:   CategoryInProcess,
		badge:      Badge{Background: "bg-warning", Text: "text-dark", Icon: "⚙"},
	},
	{
		substrings: []string{"revisión", "revision"},
		category:   CategoryReview,
		badge:      Badge{Background: "bg-info", Text: "text-dark", Icon: "👁"},
	},
	{
		substrings: []string{"bloquead"},
		category:   CategoryBlocked,
		badge:      Badge{Background: "bg-dark", Text: "text-white", Icon: "⛔"},
	},
}

var neutralBadge = Badge{Background: "bg-secondary", Text: "text-white", Icon: ""}

func matchRule(status string) (badgeRule, bool) {
	normalized := strings.ToLower(status)
	for _, rule := range badgeRules {
		for _, sub := range rule.substrings {
			if strings.Contains(normalized, sub) {
				return rule, true
			}
		}
	}
	return badgeRule{}, false
}

// BadgeFor maps a status label to its badge style, falling back to a
// neutral style for unknown text.
func BadgeFor(status string) Badge {
	if rule, ok := matchRule(status); ok {
		return rule.badge
	}
	return neutralBadge
}

// CategoryFor classifies a status label for KPI counting.
func CategoryFor(status string) Category {
	if rule, ok := matchRule(status); ok {
		return rule.category
	}
	return CategoryNeutral
}
