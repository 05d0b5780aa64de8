package allocation

import (
	"encoding/json"
	"strings"
)

// Category is an asset class inferred from an entry's name.
type Category string

const (
	CategoryIndexFund      Category = "Index Fund"
	CategoryFund           Category = "Fund"
	CategoryREITs          Category = "REITs"
	CategoryBond           Category = "Bond"
	CategoryPreciousMetals Category = "Precious Metals"
	CategoryOther          Category = "Other"
)

// Rule maps a set of literal, case-sensitive markers to a category.
type Rule struct {
	Markers  []string
	Category Category
}

// Matches reports whether name contains any of the rule's markers.
func (r Rule) Matches(name string) bool {
	for _, marker := range r.Markers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// Rules are evaluated top to bottom and the first match wins, so a name such
// as "沪深300指数基金" is an index fund and not a plain fund.
var Rules = []Rule{
	{Markers: []string{"ETF", "指数", "Index"}, Category: CategoryIndexFund},
	{Markers: []string{"基金", "Fund"}, Category: CategoryFund},
	{Markers: []string{"REIT"}, Category: CategoryREITs},
	{Markers: []string{"债", "国债", "Bond", "Treasury"}, Category: CategoryBond},
	{Markers: []string{"黄金", "Gold"}, Category: CategoryPreciousMetals},
}

// CategoryOf returns the category of an asset name.
func CategoryOf(name string) Category {
	for _, rule := range Rules {
		if rule.Matches(name) {
			return rule.Category
		}
	}
	return CategoryOther
}

// CategoryTotal is the aggregate of every result in one category.
type CategoryTotal struct {
	Category   Category `json:"category"`
	Amount     float64  `json:"amount"`
	Percentage float64  `json:"percentage"`
}

// CategoryTotals is an insertion-ordered mapping from category to totals.
// The zero value is empty and ready to use.
type CategoryTotals struct {
	totals []CategoryTotal
	index  map[Category]int
}

func (c *CategoryTotals) add(category Category, amount, percentage float64) {
	if c.index == nil {
		c.index = make(map[Category]int)
	}
	i, ok := c.index[category]
	if !ok {
		i = len(c.totals)
		c.index[category] = i
		c.totals = append(c.totals, CategoryTotal{Category: category})
	}
	c.totals[i].Amount += amount
	c.totals[i].Percentage += percentage
}

// Len returns the number of distinct categories.
func (c CategoryTotals) Len() int {
	return len(c.totals)
}

// Get returns the totals of a category.
func (c CategoryTotals) Get(category Category) (CategoryTotal, bool) {
	i, ok := c.index[category]
	if !ok {
		return CategoryTotal{}, false
	}
	return c.totals[i], true
}

// Categories returns the categories in order of first appearance.
func (c CategoryTotals) Categories() []Category {
	out := make([]Category, len(c.totals))
	for i, total := range c.totals {
		out[i] = total.Category
	}
	return out
}

// Totals returns a copy of the aggregated totals in order of first appearance.
func (c CategoryTotals) Totals() []CategoryTotal {
	out := make([]CategoryTotal, len(c.totals))
	copy(out, c.totals)
	return out
}

// Each calls fn for every category in order of first appearance.
func (c CategoryTotals) Each(fn func(CategoryTotal)) {
	for _, total := range c.totals {
		fn(total)
	}
}

// MarshalJSON encodes the totals as an ordered array.
func (c CategoryTotals) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Totals())
}

// Categorize folds results into per-category totals in plan order.
func Categorize(results []Result) CategoryTotals {
	var totals CategoryTotals
	for _, r := range results {
		totals.add(CategoryOf(r.Name), r.Amount, r.Percentage)
	}
	return totals
}
