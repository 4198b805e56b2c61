package explain

// phraseRule maps description keywords to a key phrase.
type phraseRule struct {
	phrase   string
	keywords []string
}

// keyPhraseRules are checked in order; every matching rule contributes.
var keyPhraseRules = []phraseRule{
	{"quantum computing fundamentals", []string{"quantum", "qubit", "superposition"}},
	{"machine learning", []string{"machine learning", "ml", "neural"}},
	{"data analysis", []string{"data analysis", "analytics", "data science"}},
	{"programming", []string{"programming", "code", "python", "javascript"}},
	{"business strategy", []string{"business", "strategy", "management"}},
	{"design and creativity", []string{"design", "creative", "ui", "ux"}},
	{"finance", []string{"finance", "financial"}},
	{"healthcare", []string{"health", "medical"}},
	{"energy systems", []string{"energy", "solar", "renewable"}},
}

// applicationRule maps description keywords to a local application.
type applicationRule struct {
	application string
	keywords    []string
	// unless suppresses the rule when the description mentions any of these.
	unless []string
}

var applicationRules = []applicationRule{
	{
		application: "agricultural supply chain optimization and crop yield prediction for Ugandan farmers",
		keywords:    []string{"agriculture", "crop", "farm", "yield", "supply chain"},
	},
	{
		application: "disease surveillance and health data management for Village Health Teams across Uganda",
		keywords:    []string{"health", "medical", "disease", "healthcare", "epidemiology"},
	},
	{
		application: "fintech innovation and business strategy for startups at Innovation Village and Kampala tech hubs",
		keywords:    []string{"finance", "fintech", "banking", "payment", "business", "strategy"},
	},
	{
		application: "energy grid optimization and infrastructure planning for Uganda's power distribution networks",
		keywords:    []string{"energy", "power", "grid", "infrastructure", "optimization"},
	},
	{
		application: "data-driven decision making for government agencies and private sector organizations in Uganda",
		keywords:    []string{"data", "analytics", "analysis", "statistics", "machine learning"},
		unless:      []string{"agriculture", "health"},
	},
	{
		application: "improving educational outcomes and curriculum development for Ugandan secondary schools and universities",
		keywords:    []string{"education", "learning", "teaching", "pedagogy"},
	},
	{
		application: "building local tech solutions and software products for Ugandan markets",
		keywords:    []string{"programming", "software", "development", "coding", "technology"},
	},
	{
		application: "enhancing digital communication and content creation for Ugandan businesses and educational institutions",
		keywords:    []string{"communication", "design", "creative", "marketing", "content"},
	},
}

const (
	quantumApplication = "exploring quantum algorithms for energy optimization and secure communications in Uganda's growing tech infrastructure"
	pythonApplication  = "developing Python-based solutions for local Ugandan tech challenges"
	excelApplication   = "improving data management and analysis workflows in Ugandan organizations"
)

// topicContext holds fallback context sentences keyed by topic label.
var topicContext = map[string]string{
	"Data & AI": "The analytical and machine learning skills taught here can support data-driven initiatives across Uganda's agriculture, health, and business sectors.",
	"Business":  "Business and strategy concepts from this course can guide entrepreneurship and innovation in Uganda's growing tech ecosystem.",
	"Creative":  "Communication and design skills can enhance digital content creation and educational materials for Ugandan institutions.",
}

const genericContext = "The knowledge and skills from this course are transferable to various sectors of Uganda's digital transformation and economic development."
