package classify

import (
	"path/filepath"
	"regexp"
	"strings"
)

// promotionStrategy reports whether a constant with the given name should be
// promoted to a function-kind symbol.
type promotionStrategy func(name string) bool

var (
	componentNameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	hookNameRe      = regexp.MustCompile(`^use[A-Z][A-Za-z0-9]*$`)
	helperNameRe    = regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)
)

// defaultPromotion accepts component-style (UserCard) and hook-style
// (useCartState) constant names. SCREAMING_CASE configuration constants fail
// both patterns and stay dropped.
func defaultPromotion(name string) bool {
	return componentNameRe.MatchString(name) || hookNameRe.MatchString(name)
}

// tsxPromotion additionally accepts lowercase-initial helper names, which
// show up as arrow-function helpers in .tsx modules.
func tsxPromotion(name string) bool {
	return defaultPromotion(name) || helperNameRe.MatchString(name)
}

// promotionStrategies selects the strategy per file extension. Extensions
// without an entry use defaultPromotion, so adding a file family is a
// one-line change here.
var promotionStrategies = map[string]promotionStrategy{
	".tsx": tsxPromotion,
}

// promoteConstant applies the promotion strategy for the entry's file family.
func promoteConstant(name, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if strategy, ok := promotionStrategies[ext]; ok {
		return strategy(name)
	}
	return defaultPromotion(name)
}
