// Package categories holds the fixed transaction category registry.
//
// The category list is configuration data loaded once at process start and
// immutable for the process lifetime. Lookups are total: an unknown code
// degrades to the first entry instead of failing.
package categories

// Category carries the display metadata for one category code.
type Category struct {
	Code  string
	Label string
	Icon  string
	Color string
}

var registry = []Category{
	{Code: "food-drinks", Label: "Food & Drinks", Icon: "coffee", Color: "#f97316"},
	{Code: "shopping", Label: "Shopping", Icon: "shopping-bag", Color: "#ec4899"},
	{Code: "housing", Label: "Housing", Icon: "home", Color: "#8b5cf6"},
	{Code: "transportation", Label: "Transportation", Icon: "car", Color: "#3b82f6"},
	{Code: "healthcare", Label: "Healthcare", Icon: "heart", Color: "#ef4444"},
	{Code: "entertainment", Label: "Entertainment", Icon: "smartphone", Color: "#06b6d4"},
	{Code: "travel", Label: "Travel", Icon: "plane", Color: "#14b8a6"},
	{Code: "education", Label: "Education", Icon: "graduation-cap", Color: "#f59e0b"},
	{Code: "dining", Label: "Dining Out", Icon: "utensils", Color: "#10b981"},
	{Code: "fitness", Label: "Fitness", Icon: "dumbbell", Color: "#84cc16"},
	{Code: "gifts", Label: "Gifts & Donations", Icon: "gift", Color: "#a855f7"},
	{Code: "business", Label: "Business", Icon: "briefcase", Color: "#6366f1"},
	{Code: "utilities", Label: "Utilities", Icon: "zap", Color: "#eab308"},
}

var byCode = func() map[string]Category {
	m := make(map[string]Category, len(registry))
	for _, c := range registry {
		m[c.Code] = c
	}
	return m
}()

// Lookup returns the category for code, or the registry's first entry when
// the code is unknown. It never fails.
func Lookup(code string) Category {
	if c, ok := byCode[code]; ok {
		return c
	}
	return registry[0]
}

// Default returns the fallback category used for unknown codes.
func Default() Category {
	return registry[0]
}

// All returns a copy of the registry in its fixed order.
func All() []Category {
	out := make([]Category, len(registry))
	copy(out, registry)
	return out
}

// IsKnown reports whether code names a registered category.
func IsKnown(code string) bool {
	_, ok := byCode[code]
	return ok
}
