package scoring

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Reserved keys inside the rule table.
const (
	metadataKey = "metadata"
	labelKey    = "label"
	defaultKey  = "default"
)

// Sentinel classification values. They are stored on documents when an axis
// does not apply and are never offered as user-selectable options.
const (
	LevelNone   = "none"
	ResultOther = "other"
	ResultNone  = "none"
)

// Metadata sections carrying flat code → label mappings.
const (
	SectionLevels   = "levels"
	SectionResults  = "results"
	SectionDocTypes = "doc_types"
)

// RuleTable is the decoded scoring configuration. Top-level keys are
// category codes (plus "metadata"); each category maps sub-type codes to one
// of three shapes: level → result → score, result → score, or a lone
// "default" score. A "label" key may sit alongside entries at any level.
type RuleTable map[string]any

// Provider supplies the current rule table snapshot. Implementations must
// return an empty table rather than fail, so score resolution degrades to
// zero instead of breaking request handling.
type Provider interface {
	Rules() RuleTable
}

//go:embed rules_schema.json
var rulesSchemaJSON string

var rulesSchema = jsonschema.MustCompileString("rules_schema.json", rulesSchemaJSON)

// FileProvider re-reads a JSON rule file on every call. There is no caching:
// edits to the file take effect on the next lookup.
type FileProvider struct {
	path   string
	logger zerolog.Logger
}

// NewFileProvider builds a provider reading rules from the given path.
func NewFileProvider(path string, logger zerolog.Logger) *FileProvider {
	return &FileProvider{
		path:   path,
		logger: logger.With().Str("component", "scoring_rules").Logger(),
	}
}

// Rules loads the current rule table. A missing or malformed file yields an
// empty table and a diagnostic log entry, never an error.
func (p *FileProvider) Rules() RuleTable {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		p.logger.Warn().Err(err).Str("path", p.path).Msg("scoring rules unavailable")
		return RuleTable{}
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		p.logger.Warn().Err(err).Str("path", p.path).Msg("scoring rules are not valid json")
		return RuleTable{}
	}

	if err := rulesSchema.Validate(decoded); err != nil {
		p.logger.Warn().Err(err).Str("path", p.path).Msg("scoring rules do not match the expected grammar")
		return RuleTable{}
	}

	return RuleTable(decoded)
}

// StaticProvider wraps a fixed table, used in tests and for defaults.
type StaticProvider struct {
	Table RuleTable
}

// Rules returns the wrapped table.
func (p StaticProvider) Rules() RuleTable {
	if p.Table == nil {
		return RuleTable{}
	}
	return p.Table
}

// asInt normalises the numeric representations a rule value may decode to.
func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
