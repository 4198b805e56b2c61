package explain

import (
	"strings"
	"testing"

	"github.com/poiesic/coursematch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(opts...)
	require.NoError(t, err)
	return r
}

func TestRelevance(t *testing.T) {
	r := newRenderer(t)

	tests := []struct {
		name  string
		item  *core.Item
		query string
		want  string
	}{
		{
			name: "matched terms with skills",
			item: &core.Item{
				Name:        "Quantum Basics",
				Description: "Learn quantum circuits and qubits.",
				Skills:      []string{"quantum circuits", "linear algebra", "qiskit", "go"},
			},
			query: "quantum circuits",
			want:  "This course directly addresses your interest in quantum, circuits by teaching Quantum Circuits, Linear Algebra, Qiskit through practical, hands-on projects.",
		},
		{
			name: "matched terms with only short skills",
			item: &core.Item{
				Name:        "Stats",
				Description: "statistics for everyone",
				Skills:      []string{"r", "go"},
			},
			query: "statistics",
			want:  "This course covers statistics and provides structured learning to help you master these concepts.",
		},
		{
			name: "key phrases with skills",
			item: &core.Item{
				Name:        "Finance 101",
				Description: "Personal finance basics",
				Skills:      []string{"budgeting"},
			},
			query: "money",
			want:  "This course teaches Budgeting and covers finance, directly aligning with your learning goals.",
		},
		{
			name: "skills only",
			item: &core.Item{
				Name:        "Pottery",
				Description: "clay on a wheel",
				Skills:      []string{"pottery", "glazing"},
			},
			query: "art",
			want:  "This course teaches Pottery, Glazing and provides the knowledge and skills you're seeking through interactive learning experiences.",
		},
		{
			name: "key phrases without skills",
			item: &core.Item{
				Name:        "Solar Power",
				Description: "Renewable solar installations and medical devices",
			},
			query: "sun",
			want:  "Relevant to your request as it covers healthcare, energy systems with practical examples and structured learning paths.",
		},
		{
			name: "matched terms without skills",
			item: &core.Item{
				Name:        "Gardening",
				Description: "Grow tomatoes at home",
			},
			query: "tomatoes",
			want:  "This course addresses your interest in tomatoes and provides comprehensive coverage of these topics.",
		},
		{
			name: "name fallback",
			item: &core.Item{
				Name:        "Birdwatching",
				Description: "Spot birds",
			},
			query: "fish",
			want:  "This course on Birdwatching provides comprehensive coverage of the topics you're seeking and aligns with your learning objectives.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Relevance(tt.item, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelevance_Snippet(t *testing.T) {
	r := newRenderer(t)
	item := &core.Item{
		Name: "Birdwatching",
		Description: "Spot birds in the wild. " +
			"You will keep a field journal of every owl you see at dusk. " +
			"Bring binoculars and patience for long walks.",
	}

	got, err := r.Relevance(item, "owl")
	require.NoError(t, err)
	assert.Equal(t, "This course is relevant because it you will keep a field journal of every owl you see at dusk...", got)
}

func TestContext(t *testing.T) {
	r := newRenderer(t)

	t.Run("single application", func(t *testing.T) {
		got, err := r.Context(&core.Item{Description: "Crop rotation for smallholders"})
		require.NoError(t, err)
		assert.Equal(t, "The skills and knowledge from this course can be directly applied to "+applicationRules[0].application+".", got)
	})

	t.Run("two applications use the first two", func(t *testing.T) {
		got, err := r.Context(&core.Item{Description: "Farm finance"})
		require.NoError(t, err)
		assert.Equal(t, "This course enables you to contribute to "+applicationRules[0].application+", as well as "+applicationRules[2].application+".", got)
	})

	t.Run("specialized flag adds quantum application", func(t *testing.T) {
		got, err := r.Context(&core.Item{Description: "nothing relevant", Specialized: true})
		require.NoError(t, err)
		assert.Contains(t, got, quantumApplication)
	})

	t.Run("python skills", func(t *testing.T) {
		got, err := r.Context(&core.Item{Description: "nothing relevant", Skills: []string{"python"}})
		require.NoError(t, err)
		assert.Contains(t, got, pythonApplication)
	})

	t.Run("data rule suppressed by health", func(t *testing.T) {
		apps := applications(&core.Item{Description: "health data"})
		assert.Equal(t, []string{applicationRules[1].application}, apps)
	})

	t.Run("topic fallback", func(t *testing.T) {
		got, err := r.Context(&core.Item{Description: "nothing relevant", Topic: "Business"})
		require.NoError(t, err)
		assert.Equal(t, topicContext["Business"], got)
	})

	t.Run("generic fallback", func(t *testing.T) {
		got, err := r.Context(&core.Item{Description: "nothing relevant", Topic: "Other"})
		require.NoError(t, err)
		assert.Equal(t, genericContext, got)
	})
}

func TestExplain(t *testing.T) {
	r := newRenderer(t)
	item := &core.Item{Name: "Finance 101", Description: "Personal finance basics", Skills: []string{"budgeting"}}

	first, err := r.Explain(core.Result{Item: item, Similarity: 0.4}, "finance")
	require.NoError(t, err)
	second, err := r.Explain(core.Result{Item: item, Similarity: 0.9}, "finance")
	require.NoError(t, err)

	assert.Equal(t, first, second, "explanations must not depend on score")
	assert.NotEmpty(t, first.Relevance)
	assert.NotEmpty(t, first.Context)

	_, err = r.Explain(core.Result{}, "finance")
	assert.ErrorIs(t, err, ErrItemRequired)
}

func TestWithTemplate(t *testing.T) {
	t.Run("override wording", func(t *testing.T) {
		r := newRenderer(t, WithTemplate(SkillsOnly, "Teaches {{.skills}}."))
		got, err := r.Relevance(&core.Item{Name: "Pottery", Description: "clay", Skills: []string{"glazing"}}, "art")
		require.NoError(t, err)
		assert.Equal(t, "Teaches Glazing.", got)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := NewRenderer(WithTemplate("nope", "x"))
		assert.ErrorIs(t, err, ErrUnknownTemplate)
	})

	t.Run("unknown variable", func(t *testing.T) {
		_, err := NewRenderer(WithTemplate(SkillsOnly, "{{.name}}"))
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := NewRenderer(WithTemplate(SkillsOnly, "{{.skills"))
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})
}

func TestQueryTerms(t *testing.T) {
	assert.Equal(t, []string{"learn", "go", "fast"}, queryTerms("Learn GO, go fast!"))
	assert.Empty(t, queryTerms("  !!"))
	assert.True(t, strings.HasPrefix(topSkills([]string{"data science"}), "Data"))
}
