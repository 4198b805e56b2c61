package explain

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/coursematch/core"
	"github.com/tmc/langchaingo/prompts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateName identifies one sentence shape.
type TemplateName string

const (
	// Relevance sentences
	MatchedWithSkills TemplateName = "matched_with_skills"
	MatchedOnly       TemplateName = "matched_only"
	PhrasesWithSkills TemplateName = "phrases_with_skills"
	PhrasesOnly       TemplateName = "phrases_only"
	SkillsOnly        TemplateName = "skills_only"
	CoversPhrases     TemplateName = "covers_phrases"
	CoversTopics      TemplateName = "covers_topics"
	Snippet           TemplateName = "snippet"
	NameFallback      TemplateName = "name_fallback"

	// Context sentences
	SingleApplication TemplateName = "single_application"
	DualApplication   TemplateName = "dual_application"
)

type templateDef struct {
	text string
	vars []string
}

var defaultTemplates = map[TemplateName]templateDef{
	MatchedWithSkills: {"This course directly addresses your interest in {{.topics}} by teaching {{.skills}} through practical, hands-on projects.", []string{"topics", "skills"}},
	MatchedOnly:       {"This course covers {{.topics}} and provides structured learning to help you master these concepts.", []string{"topics"}},
	PhrasesWithSkills: {"This course teaches {{.skills}} and covers {{.phrases}}, directly aligning with your learning goals.", []string{"skills", "phrases"}},
	PhrasesOnly:       {"This course focuses on {{.phrases}} with comprehensive content and practical examples.", []string{"phrases"}},
	SkillsOnly:        {"This course teaches {{.skills}} and provides the knowledge and skills you're seeking through interactive learning experiences.", []string{"skills"}},
	CoversPhrases:     {"Relevant to your request as it covers {{.phrases}} with practical examples and structured learning paths.", []string{"phrases"}},
	CoversTopics:      {"This course addresses your interest in {{.topics}} and provides comprehensive coverage of these topics.", []string{"topics"}},
	Snippet:           {"This course is relevant because it {{.snippet}}", []string{"snippet"}},
	NameFallback:      {"This course on {{.name}} provides comprehensive coverage of the topics you're seeking and aligns with your learning objectives.", []string{"name"}},
	SingleApplication: {"The skills and knowledge from this course can be directly applied to {{.primary}}.", []string{"primary"}},
	DualApplication:   {"This course enables you to contribute to {{.primary}}, as well as {{.secondary}}.", []string{"primary", "secondary"}},
}

const (
	maxTopSkills      = 3
	maxListed         = 2
	minSkillLength    = 3
	minMatchedTerm    = 4
	snippetThreshold  = 100
	minSnippetSegment = 21
	maxSnippetLength  = 120
)

// Explanation pairs the two sentences shown with a recommendation.
type Explanation struct {
	Relevance string `json:"relevance"`
	Context   string `json:"context"`
}

// Renderer builds explanation sentences. It is safe for concurrent use.
type Renderer struct {
	templates map[TemplateName]prompts.PromptTemplate
	logger    *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTemplate replaces the wording of one sentence shape.
// The text uses Go template syntax and may only reference the variables the
// default template for name uses.
func WithTemplate(name TemplateName, text string) Option {
	return func(r *Renderer) error {
		def, ok := defaultTemplates[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
		}
		if err := prompts.CheckValidTemplate(text, prompts.TemplateFormatGoTemplate, def.vars); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidTemplate, name, err)
		}
		r.templates[name] = prompts.NewPromptTemplate(text, def.vars)
		return nil
	}
}

// NewRenderer creates a renderer using the default wording unless overridden.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[TemplateName]prompts.PromptTemplate, len(defaultTemplates)),
		logger:    slog.Default().With("component", "explain-renderer"),
	}
	for name, def := range defaultTemplates {
		r.templates[name] = prompts.NewPromptTemplate(def.text, def.vars)
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Explain renders both sentences for a ranked result.
func (r *Renderer) Explain(result core.Result, query string) (Explanation, error) {
	if result.Item == nil {
		return Explanation{}, ErrItemRequired
	}
	relevance, err := r.Relevance(result.Item, query)
	if err != nil {
		return Explanation{}, err
	}
	local, err := r.Context(result.Item)
	if err != nil {
		return Explanation{}, err
	}
	return Explanation{Relevance: relevance, Context: local}, nil
}

// Relevance describes how item relates to the raw query text.
func (r *Renderer) Relevance(item *core.Item, query string) (string, error) {
	if item == nil {
		return "", ErrItemRequired
	}

	description := strings.ToLower(item.Description)
	phrases := keyPhrases(description)
	terms := queryTerms(query)

	var matched []string
	for _, term := range terms {
		if utf8.RuneCountInString(term) >= minMatchedTerm && strings.Contains(description, term) {
			matched = append(matched, term)
		}
	}

	if len(item.Skills) > 0 {
		skills := topSkills(item.Skills)
		switch {
		case len(matched) > 0 && skills != "":
			return r.render(MatchedWithSkills, map[string]any{"topics": listed(matched), "skills": skills})
		case len(matched) > 0:
			return r.render(MatchedOnly, map[string]any{"topics": listed(matched)})
		case len(phrases) > 0 && skills != "":
			return r.render(PhrasesWithSkills, map[string]any{"skills": skills, "phrases": listed(phrases)})
		case len(phrases) > 0:
			return r.render(PhrasesOnly, map[string]any{"phrases": listed(phrases)})
		case skills != "":
			return r.render(SkillsOnly, map[string]any{"skills": skills})
		}
	}

	if len(phrases) > 0 {
		return r.render(CoversPhrases, map[string]any{"phrases": listed(phrases)})
	}
	if len(matched) > 0 {
		return r.render(CoversTopics, map[string]any{"topics": listed(matched)})
	}
	if s, ok := snippet(description, terms); ok {
		return r.render(Snippet, map[string]any{"snippet": s})
	}
	return r.render(NameFallback, map[string]any{"name": item.Name})
}

// Context describes where the item's skills apply locally.
func (r *Renderer) Context(item *core.Item) (string, error) {
	if item == nil {
		return "", ErrItemRequired
	}

	apps := applications(item)
	switch len(apps) {
	case 0:
		if s, ok := topicContext[strings.TrimSpace(item.Topic)]; ok {
			return s, nil
		}
		return genericContext, nil
	case 1:
		return r.render(SingleApplication, map[string]any{"primary": apps[0]})
	default:
		return r.render(DualApplication, map[string]any{"primary": apps[0], "secondary": apps[1]})
	}
}

func (r *Renderer) render(name TemplateName, values map[string]any) (string, error) {
	out, err := r.templates[name].Format(values)
	if err != nil {
		r.logger.Error("failed to render explanation", "template", name, "err", err)
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidTemplate, name, err)
	}
	return out, nil
}

func keyPhrases(description string) []string {
	var out []string
	for _, rule := range keyPhraseRules {
		if containsAny(description, rule.keywords) {
			out = append(out, rule.phrase)
		}
	}
	return out
}

func applications(item *core.Item) []string {
	description := strings.ToLower(item.Description)

	var apps []string
	for _, rule := range applicationRules {
		if containsAny(description, rule.keywords) && !containsAny(description, rule.unless) {
			apps = append(apps, rule.application)
		}
	}
	if strings.Contains(description, "quantum") || item.Specialized {
		apps = append(apps, quantumApplication)
	}

	if len(item.Skills) > 0 {
		skills := strings.ToLower(strings.Join(item.Skills, " "))
		if containsAny(skills, []string{"python", "programming"}) && !anyMentions(apps, "software", "tech") {
			apps = append(apps, pythonApplication)
		}
		if containsAny(skills, []string{"excel", "spreadsheet"}) && !anyMentions(apps, "data") {
			apps = append(apps, excelApplication)
		}
	}
	return apps
}

// queryTerms splits the lower-cased query into word runs, keeping first
// occurrences in query order.
func queryTerms(query string) []string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	seen := make(map[string]bool, len(words))
	terms := words[:0]
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			terms = append(terms, w)
		}
	}
	return terms
}

func topSkills(skills []string) string {
	caser := cases.Title(language.English)
	var top []string
	for _, s := range skills[:min(maxTopSkills, len(skills))] {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) >= minSkillLength {
			top = append(top, caser.String(s))
		}
	}
	return strings.Join(top, ", ")
}

func snippet(description string, terms []string) (string, bool) {
	if len(description) <= snippetThreshold || len(terms) == 0 {
		return "", false
	}
	for _, segment := range strings.Split(description, ".") {
		segment = strings.TrimSpace(segment)
		if len(segment) < minSnippetSegment || !containsAny(segment, terms) {
			continue
		}
		runes := []rune(segment)
		if len(runes) > maxSnippetLength {
			runes = runes[:maxSnippetLength]
		}
		return string(runes) + "...", true
	}
	return "", false
}

func listed(values []string) string {
	return strings.Join(values[:min(maxListed, len(values))], ", ")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func anyMentions(values []string, needles ...string) bool {
	for _, v := range values {
		if containsAny(v, needles) {
			return true
		}
	}
	return false
}
