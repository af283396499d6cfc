package platform

import (
	"strings"

	"golang.org/x/text/cases"

	"rascan/internal/config"
)

// Definition maps a canonical RetroAchievements system name to the local
// folder names that should resolve to it. Override, when set, wins over every
// other rule and is compared verbatim; it exists so a user can force a mapping
// that collides with the normalization rules (the stock example is keeping a
// folder literally named "32X" away from generic slug handling).
type Definition struct {
	Name     string
	Aliases  []string
	Override string
}

// FromConfig converts the configured platform table, preserving order.
func FromConfig(platforms []config.Platform) []Definition {
	defs := make([]Definition, 0, len(platforms))
	for _, p := range platforms {
		defs = append(defs, Definition{
			Name:     p.Name,
			Aliases:  append([]string(nil), p.Aliases...),
			Override: p.Override,
		})
	}
	return defs
}

// Resolver maps free-form library folder names to canonical system names.
type Resolver struct {
	defs []Definition
	fold cases.Caser
}

// NewResolver builds a resolver over the given definitions. Definition order
// is the tie-break: the first definition whose rule matches wins.
func NewResolver(defs []Definition) *Resolver {
	return &Resolver{defs: defs, fold: cases.Fold()}
}

// Resolve returns the canonical system name for a folder, or false when no
// definition matches. Rules run in order across all definitions: override
// token (verbatim), exact case-folded name, slug comparison, aliases. The
// function is pure and deterministic.
func (r *Resolver) Resolve(folder string) (string, bool) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return "", false
	}

	for _, def := range r.defs {
		if def.Override != "" && def.Override == folder {
			return def.Name, true
		}
	}

	folded := r.fold.String(folder)
	for _, def := range r.defs {
		if r.fold.String(def.Name) == folded {
			return def.Name, true
		}
	}

	folderSlug := stripWhitespace(folded)
	for _, def := range r.defs {
		if nameSlug(r.fold.String(def.Name)) == folderSlug {
			return def.Name, true
		}
	}

	for _, def := range r.defs {
		for _, alias := range def.Aliases {
			if r.fold.String(alias) == folded {
				return def.Name, true
			}
		}
	}

	return "", false
}

// nameSlug rewrites a canonical name the way frontends slug their folder
// names: spaces become hyphens, any remaining whitespace is dropped. Slashes
// are deliberately left in place; "Genesis/Mega Drive" only matches folders
// that keep the slash. Matching slash-free slugs is what aliases are for.
func nameSlug(name string) string {
	name = strings.ReplaceAll(name, " ", "-")
	return stripWhitespace(name)
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
