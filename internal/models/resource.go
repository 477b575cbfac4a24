package models

import "strings"

// Resource is one of the fixed household counters. The set is closed:
// no dynamic table names, every switch over it is exhaustive.
type Resource string

const (
	Electricity Resource = "electricity"
	Water       Resource = "water"
	Gas         Resource = "gas"
)

// Resources returns the whole set in display order.
func Resources() []Resource {
	return []Resource{Electricity, Water, Gas}
}

// Unit is the display unit for reports.
func (r Resource) Unit() string {
	switch r {
	case Electricity:
		return "кВт·ч"
	case Water, Gas:
		return "м³"
	}
	return ""
}

// Title is the menu/report caption, emoji included.
func (r Resource) Title() string {
	switch r {
	case Electricity:
		return "⚡ Электричество"
	case Water:
		return "💧 Вода"
	case Gas:
		return "🔥 Газ"
	}
	return string(r)
}

func (r Resource) Valid() bool {
	switch r {
	case Electricity, Water, Gas:
		return true
	}
	return false
}

// resourceAliases maps user-facing synonyms to resources. Keys are
// lowercase.
var resourceAliases = map[string]Resource{
	"electricity":   Electricity,
	"power":         Electricity,
	"light":         Electricity,
	"свет":          Electricity,
	"электричество": Electricity,
	"water":         Water,
	"вода":          Water,
	"gas":           Gas,
	"газ":           Gas,
}

// ParseResource resolves a user-typed alias to a resource.
func ParseResource(s string) (Resource, error) {
	r, ok := resourceAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrUnknownResource
	}
	return r, nil
}
