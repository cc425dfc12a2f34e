package model

import "strings"

// NewToolsLimit is how many of the most recently registered tools the
// synthetic "new" category selects.
const NewToolsLimit = 8

// Category is one entry of the declarative category table. A category
// matches a tool in exactly one of three ways:
//
//   - Synthetic: ignores tags and status entirely; the query engine selects
//     the NewToolsLimit highest-ID tools instead.
//   - Status: matches tools whose Status equals Status.
//   - Keywords: matches tools whose Category tag contains any keyword as a
//     case-insensitive substring. Multi-word categories map several keywords
//     to one id ("design" matches both "design" and "criação").
type Category struct {
	ID        string
	Label     string
	Keywords  []string
	Status    ToolStatus // Non-empty for status-derived categories.
	Synthetic bool       // True only for "new".
}

// Categories is the full category table in display order. Keeping the
// matching rules here, rather than spread across a switch, keeps them
// testable in isolation from any rendering concern.
var Categories = []Category{
	{ID: "new", Label: "Novas Ferramentas", Synthetic: true},
	{ID: "ia", Label: "IA", Keywords: []string{"ia"}},
	{ID: "espionagem", Label: "Espionagem", Keywords: []string{"espionagem"}},
	{ID: "mineracao", Label: "Mineração", Keywords: []string{"mineração"}},
	{ID: "seo", Label: "SEO / Análise", Keywords: []string{"seo"}},
	{ID: "streaming", Label: "Streaming", Keywords: []string{"streaming"}},
	{ID: "design", Label: "Design/Criação", Keywords: []string{"design", "criação"}},
	{ID: "diversos", Label: "Diversos", Keywords: []string{"diversos"}},
	{ID: "offline", Label: "Offline", Status: StatusOffline},
	{ID: "maintenance", Label: "Em Manutenção", Status: StatusMaintenance},
}

// CategoryByID looks up a category in the table. Returns false for ids the
// table does not know.
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Matches reports whether the tool satisfies this category's predicate.
// Synthetic categories never match here; the query engine handles their
// selection separately because it depends on the whole tool set.
func (c Category) Matches(tool Tool) bool {
	if c.Synthetic {
		return false
	}
	if c.Status != "" {
		return tool.Status == c.Status
	}

	tag := strings.ToLower(tool.Category)
	for _, kw := range c.Keywords {
		if strings.Contains(tag, kw) {
			return true
		}
	}
	return false
}
