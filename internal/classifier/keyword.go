// Package classifier assigns digest entries to categories by keyword rules.
package classifier

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultCategory is the catch-all used by the built-in rule table
const DefaultCategory = "其他"

// Rule maps a category name to the keywords that select it
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// DefaultRules is the built-in education news rule table
var DefaultRules = []Rule{
	{
		Name: "市委教委",
		Keywords: []string{
			"市委教委", "市委教育工委", "市教委", "教工委",
			"教育工委", "教育委员会", "首都教育两委", "教育两委",
		},
	},
	{
		Name: "中小学",
		Keywords: []string{
			"中小学", "小学", "初中", "高中", "义务教育", "基础教育", "幼儿园",
			"幼儿", "托育", "K12", "班主任", "青少年", "少儿", "少年",
		},
	},
	{
		Name:     "高校",
		Keywords: []string{"高校", "大学", "学院", "本科", "研究生", "硕士", "博士"},
	},
}

// Classifier evaluates an ordered rule table. It is safe for concurrent use.
type Classifier struct {
	rules    []Rule
	folded   [][]string
	fallback string
}

// New creates a Classifier from rules evaluated in order, with fallback as the
// category for text no rule matches
func New(rules []Rule, fallback string) (*Classifier, error) {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		return nil, fmt.Errorf("fallback category is required")
	}

	seen := map[string]bool{fallback: true}
	c := &Classifier{fallback: fallback}
	for i, r := range rules {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("rule %d: duplicate category %q", i, name)
		}
		seen[name] = true

		var keys []string
		for _, k := range r.Keywords {
			if k = fold(strings.TrimSpace(k)); k != "" {
				keys = append(keys, k)
			}
		}
		c.rules = append(c.rules, Rule{Name: name, Keywords: append([]string(nil), r.Keywords...)})
		c.folded = append(c.folded, keys)
	}

	return c, nil
}

// Default creates a Classifier with the built-in rule table
func Default() *Classifier {
	c, err := New(DefaultRules, DefaultCategory)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the category of the text formed by joining the non-empty
// parts with spaces. The first rule with a keyword contained in the text wins.
func (c *Classifier) Classify(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	haystack := fold(strings.Join(kept, " "))

	for i, keys := range c.folded {
		for _, k := range keys {
			if strings.Contains(haystack, k) {
				return c.rules[i].Name
			}
		}
	}
	return c.fallback
}

// Order returns the rule categories in table order followed by the fallback
func (c *Classifier) Order() []string {
	order := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		order = append(order, r.Name)
	}
	return append(order, c.fallback)
}

// Fallback returns the catch-all category
func (c *Classifier) Fallback() string {
	return c.fallback
}

// Rules returns a copy of the rule table
func (c *Classifier) Rules() []Rule {
	return CloneRules(c.rules)
}

// CloneRules deep-copies a rule table
func CloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Name: r.Name, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// fold normalizes width variants and case so that "Ｋ１２" matches "k12"
func fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
