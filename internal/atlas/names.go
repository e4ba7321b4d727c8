package atlas

import (
	"fmt"
	"strings"
)

// NameOverride is one cosmetic rename rule. Either Contains/Replace
// (substring replacement) or Name plus optional Rarity, Gender and Class
// predicates with a Rename target.
type NameOverride struct {
	Contains string `yaml:"contains"`
	Replace  string `yaml:"replace"`

	Name   string `yaml:"name"`
	Rarity int    `yaml:"rarity"`
	Gender string `yaml:"gender"`
	Class  string `yaml:"class"`
	Rename string `yaml:"rename"`
}

// DefaultNameOverrides covers known collisions in the JP export.
func DefaultNameOverrides() []NameOverride {
	return []NameOverride{
		{Contains: "Altria", Replace: "Artoria"},
		{Name: "BB", Rarity: 5, Rename: "BB (Summer)"},
		{Name: "Kishinami Hakuno", Gender: "female", Rename: "Kishinami Hakunon"},
		{Name: "Ereshkigal", Class: "beastEresh", Rename: "Ereshkigal (Summer)"},
	}
}

// NameRecord carries the attributes override predicates look at.
type NameRecord struct {
	Name      string
	Rarity    int
	Gender    string
	ClassName string
}

func (o NameOverride) apply(rec NameRecord) string {
	if o.Contains != "" {
		return strings.ReplaceAll(rec.Name, o.Contains, o.Replace)
	}
	if o.Name == "" || rec.Name != o.Name {
		return rec.Name
	}
	if o.Rarity != 0 && rec.Rarity != o.Rarity {
		return rec.Name
	}
	if o.Gender != "" && rec.Gender != o.Gender {
		return rec.Name
	}
	if o.Class != "" && rec.ClassName != o.Class {
		return rec.Name
	}
	return o.Rename
}

// Namer assigns unique display names within one run.
// Records must be fed in ascending collection number order.
type Namer struct {
	overrides []NameOverride
	seen      map[string]struct{}
}

// NewNamer returns a Namer applying overrides in the given order.
func NewNamer(overrides []NameOverride) *Namer {
	return &Namer{
		overrides: overrides,
		seen:      make(map[string]struct{}),
	}
}

// Name applies the overrides, then suffixes the class name when the result
// was already handed out.
func (n *Namer) Name(rec NameRecord) string {
	for _, o := range n.overrides {
		rec.Name = o.apply(rec)
	}

	name := rec.Name
	if n.taken(name) {
		name = fmt.Sprintf("%s (%s)", rec.Name, rec.ClassName)
	}
	// Same name and class twice: number the extra copies.
	for i := 2; n.taken(name); i++ {
		name = fmt.Sprintf("%s (%s) %d", rec.Name, rec.ClassName, i)
	}

	n.seen[name] = struct{}{}
	return name
}

func (n *Namer) taken(name string) bool {
	_, ok := n.seen[name]
	return ok
}
