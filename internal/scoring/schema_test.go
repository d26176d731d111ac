package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesOrderedWithLabels(t *testing.T) {
	categories := Categories(testRules())

	require.Len(t, categories, 3)
	assert.Equal(t, []Choice{
		{Value: "academic", Label: "Academic"},
		{Value: "social", Label: "Social"},
		{Value: "sport", Label: "Sport"},
	}, categories)
}

func TestSubTypesDeduplicated(t *testing.T) {
	rules := testRules()
	// The same sub-type code under two categories must appear once; the
	// label from the later category wins.
	rules["academic"].(map[string]any)["volunteer"] = map[string]any{
		"label":   "Academic volunteering",
		"default": 1,
	}

	subTypes := SubTypes(rules)

	var volunteer *Choice
	for i := range subTypes {
		if subTypes[i].Value == "volunteer" {
			require.Nil(t, volunteer, "sub-type listed twice")
			volunteer = &subTypes[i]
		}
	}
	require.NotNil(t, volunteer)
	assert.Equal(t, "Volunteering", volunteer.Label, "expected the label from the later category")
}

func TestStructureFlags(t *testing.T) {
	structure := Structure(testRules())

	sport, ok := structure["sport"]
	require.True(t, ok)
	require.Len(t, sport.SubTypes, 1)
	competition := sport.SubTypes[0]
	assert.True(t, competition.NeedsLevel, "nested level maps require a level")
	assert.False(t, competition.NeedsResult, "a default entry makes the result optional")

	academic := structure["academic"]
	require.Len(t, academic.SubTypes, 1)
	grades := academic.SubTypes[0]
	assert.False(t, grades.NeedsLevel)
	assert.True(t, grades.NeedsResult)

	social := structure["social"]
	require.Len(t, social.SubTypes, 1)
	volunteer := social.SubTypes[0]
	assert.False(t, volunteer.NeedsLevel)
	assert.False(t, volunteer.NeedsResult)
}

func TestStructureEmptyTable(t *testing.T) {
	assert.Empty(t, Structure(RuleTable{}))
	assert.Empty(t, Categories(RuleTable{}))
	assert.Empty(t, SubTypes(RuleTable{}))
}

func TestMetadataChoices(t *testing.T) {
	levels := MetadataChoices(testRules(), SectionLevels)
	require.Len(t, levels, 3)
	assert.True(t, Contains(levels, "university"))
	assert.True(t, Contains(levels, "none"))

	assert.Nil(t, MetadataChoices(testRules(), "unknown_section"))
	assert.Nil(t, MetadataChoices(RuleTable{}, SectionLevels))
}

func TestWithoutSentinels(t *testing.T) {
	results := MetadataChoices(testRules(), SectionResults)
	filtered := WithoutSentinels(results, ResultNone)

	assert.False(t, Contains(filtered, "none"))
	assert.True(t, Contains(filtered, "other"))
	assert.Len(t, filtered, len(results)-1)
}
