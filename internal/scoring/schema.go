package scoring

import "sort"

// Choice is a (code, label) pair for a selectable classification value.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SubTypeSchema describes one sub-type and the form inputs it requires.
type SubTypeSchema struct {
	Value string `json:"value"`
	Label string `json:"label"`
	// NeedsLevel is true when any rule value for this sub-type is itself a
	// nested mapping, i.e. the sub-type scores by level.
	NeedsLevel bool `json:"needsLevel"`
	// NeedsResult is false only for fixed-score sub-types carrying a
	// "default" entry.
	NeedsResult bool `json:"needsResult"`
}

// CategorySchema groups the sub-types of one category.
type CategorySchema struct {
	Label    string          `json:"label"`
	SubTypes []SubTypeSchema `json:"sub_types"`
}

// Categories enumerates category codes with their labels, ordered by code.
func Categories(rules RuleTable) []Choice {
	choices := make([]Choice, 0, len(rules))
	for _, key := range sortedKeys(rules) {
		if key == metadataKey {
			continue
		}
		content, ok := rules[key].(map[string]any)
		if !ok {
			continue
		}
		choices = append(choices, Choice{Value: key, Label: labelOrKey(content, key)})
	}
	return choices
}

// SubTypes enumerates every sub-type across all categories, de-duplicated by
// code. Categories are walked in code order; when the same sub-type code
// appears under several categories with different labels, the last one seen
// wins.
func SubTypes(rules RuleTable) []Choice {
	labels := map[string]string{}
	for _, catKey := range sortedKeys(rules) {
		if catKey == metadataKey {
			continue
		}
		catContent, ok := rules[catKey].(map[string]any)
		if !ok {
			continue
		}
		for _, subKey := range sortedKeys(catContent) {
			if subKey == labelKey {
				continue
			}
			subContent, ok := catContent[subKey].(map[string]any)
			if !ok {
				continue
			}
			labels[subKey] = labelOrKey(subContent, subKey)
		}
	}

	codes := make([]string, 0, len(labels))
	for code := range labels {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	choices := make([]Choice, 0, len(codes))
	for _, code := range codes {
		choices = append(choices, Choice{Value: code, Label: labels[code]})
	}
	return choices
}

// MetadataChoices enumerates a flat metadata section (levels, results or
// doc_types), ordered by code.
func MetadataChoices(rules RuleTable, section string) []Choice {
	metadata, ok := rules[metadataKey].(map[string]any)
	if !ok {
		return nil
	}
	data, ok := metadata[section].(map[string]any)
	if !ok {
		return nil
	}

	choices := make([]Choice, 0, len(data))
	for _, key := range sortedKeys(data) {
		label, _ := data[key].(string)
		if label == "" {
			label = key
		}
		choices = append(choices, Choice{Value: key, Label: label})
	}
	return choices
}

// Structure derives the per-category form schema from the current rule
// table. It is recomputed on every call so rule edits surface immediately.
func Structure(rules RuleTable) map[string]CategorySchema {
	structure := make(map[string]CategorySchema)

	for _, catKey := range sortedKeys(rules) {
		if catKey == metadataKey {
			continue
		}
		catContent, ok := rules[catKey].(map[string]any)
		if !ok {
			continue
		}

		subTypes := make([]SubTypeSchema, 0, len(catContent))
		for _, subKey := range sortedKeys(catContent) {
			if subKey == labelKey {
				continue
			}
			subContent, ok := catContent[subKey].(map[string]any)
			if !ok {
				continue
			}

			needsLevel := false
			needsResult := true
			for key, value := range subContent {
				if key == labelKey {
					continue
				}
				if _, nested := value.(map[string]any); nested {
					needsLevel = true
				}
				if key == defaultKey {
					needsResult = false
				}
			}

			subTypes = append(subTypes, SubTypeSchema{
				Value:       subKey,
				Label:       labelOrKey(subContent, subKey),
				NeedsLevel:  needsLevel,
				NeedsResult: needsResult,
			})
		}

		structure[catKey] = CategorySchema{
			Label:    labelOrKey(catContent, catKey),
			SubTypes: subTypes,
		}
	}

	return structure
}

// Contains reports whether a choice list carries the given code.
func Contains(choices []Choice, value string) bool {
	for _, choice := range choices {
		if choice.Value == value {
			return true
		}
	}
	return false
}

// WithoutSentinels filters placeholder codes out of a choice list before it
// is surfaced to clients.
func WithoutSentinels(choices []Choice, sentinels ...string) []Choice {
	excluded := make(map[string]struct{}, len(sentinels))
	for _, sentinel := range sentinels {
		excluded[sentinel] = struct{}{}
	}

	filtered := make([]Choice, 0, len(choices))
	for _, choice := range choices {
		if _, skip := excluded[choice.Value]; skip {
			continue
		}
		filtered = append(filtered, choice)
	}
	return filtered
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func labelOrKey(content map[string]any, key string) string {
	if label, ok := content[labelKey].(string); ok && label != "" {
		return label
	}
	return key
}
