package scoring

// Resolve maps a four-part classification to its score under the given rule
// table. It never fails: any missing piece of configuration resolves to 0.
//
// The fallthrough order is load-bearing and must not be reordered:
//
//  1. unknown category or sub-type → 0
//  2. the sub-type entry holds a nested map under the level → look the
//     result up inside it (leveled rules, e.g. competitions)
//  3. the sub-type entry holds a plain integer under the result (flat
//     rules, e.g. publications or grades)
//  4. the sub-type entry holds a "default" score (fixed rules, e.g.
//     volunteering)
//
// A sub-type mixing a "default" alongside leveled or flat entries is legal;
// "default" is the last resort, never a shortcut.
func Resolve(rules RuleTable, category, subType, level, result string) int {
	if level == "" {
		level = LevelNone
	}
	if result == "" {
		result = ResultOther
	}

	catRules, ok := rules[category].(map[string]any)
	if !ok {
		return 0
	}

	subRules, ok := catRules[subType].(map[string]any)
	if !ok {
		return 0
	}

	if nested, ok := subRules[level].(map[string]any); ok {
		score, _ := asInt(nested[result])
		return score
	}

	if score, ok := asInt(subRules[result]); ok {
		return score
	}

	if score, ok := asInt(subRules[defaultKey]); ok {
		return score
	}

	return 0
}
