package hunt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sigma "github.com/bradleyjkemp/sigma-go"
	sigmaevaluator "github.com/bradleyjkemp/sigma-go/evaluator"
	"gopkg.in/yaml.v3"
)

// queryField is the event field hunt queries are matched against.
const queryField = "query"

// Classifier maps a free-text hunt query to the keyword categories it mentions.
type Classifier interface {
	Classify(query string) []Category
}

type compiledCategory struct {
	category Category
	rule     sigma.Rule
	eval     *sigmaevaluator.RuleEvaluator
}

// SigmaClassifier compiles each catalogue category into a Sigma rule and
// evaluates the rules against the query text.
type SigmaClassifier struct {
	rules []compiledCategory
	ctx   context.Context
}

// sigmaDocument is the subset of the Sigma rule format rendered per category.
type sigmaDocument struct {
	Title       string                 `yaml:"title"`
	ID          string                 `yaml:"id"`
	Description string                 `yaml:"description,omitempty"`
	Level       string                 `yaml:"level,omitempty"`
	Tags        []string               `yaml:"tags,omitempty"`
	Logsource   map[string]string      `yaml:"logsource"`
	Detection   map[string]interface{} `yaml:"detection"`
}

// NewSigmaClassifier compiles every category of c.
func NewSigmaClassifier(c *Catalog) (*SigmaClassifier, error) {
	if c == nil {
		return nil, fmt.Errorf("hunt catalog is nil")
	}

	compiled := make([]compiledCategory, 0, len(c.Categories))
	for _, cat := range c.Categories {
		raw, err := renderSigmaRule(cat)
		if err != nil {
			return nil, fmt.Errorf("render sigma rule %s: %w", cat.ID, err)
		}
		rule, err := sigma.ParseRule(raw)
		if err != nil {
			return nil, fmt.Errorf("parse sigma rule %s: %w", cat.ID, err)
		}
		compiled = append(compiled, compiledCategory{
			category: cat,
			rule:     rule,
			eval:     sigmaevaluator.ForRule(rule),
		})
	}

	// Kill-chain order keeps matched findings in a stable, meaningful sequence.
	sort.SliceStable(compiled, func(i, j int) bool {
		return tacticRank(compiled[i].category.Tactic) < tacticRank(compiled[j].category.Tactic)
	})

	return &SigmaClassifier{rules: compiled, ctx: context.Background()}, nil
}

// Classify returns every category whose rule matches query, in kill-chain order.
func (s *SigmaClassifier) Classify(query string) []Category {
	if s == nil || len(s.rules) == 0 {
		return nil
	}

	event := map[string]interface{}{
		queryField: strings.ToLower(strings.TrimSpace(query)),
	}
	var out []Category
	for _, r := range s.rules {
		res, err := r.eval.Matches(s.ctx, event)
		if err != nil {
			continue
		}
		if res.Match {
			out = append(out, r.category)
		}
	}
	return out
}

func renderSigmaRule(cat Category) ([]byte, error) {
	keywords := make([]string, 0, len(cat.Keywords))
	for _, k := range cat.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no usable keywords")
	}

	doc := sigmaDocument{
		Title:       cat.Title,
		ID:          cat.ID,
		Description: cat.Description,
		Level:       strings.ToLower(strings.TrimSpace(cat.Severity)),
		Tags:        attackTags(cat.Tactic, cat.Technique),
		Logsource:   map[string]string{"product": "socdash", "service": "hunt"},
		Detection: map[string]interface{}{
			"selection": map[string]interface{}{
				queryField + "|contains": keywords,
			},
			"condition": "selection",
		},
	}
	return yaml.Marshal(doc)
}

// attackTags renders ATT&CK tags the way Sigma rules carry them.
func attackTags(tactic, technique string) []string {
	var tags []string
	if t := strings.TrimSpace(tactic); t != "" {
		tags = append(tags, "attack."+strings.ReplaceAll(strings.ToLower(t), "-", "_"))
	}
	if t := strings.TrimSpace(technique); t != "" {
		tags = append(tags, "attack."+strings.ToLower(t))
	}
	return tags
}
