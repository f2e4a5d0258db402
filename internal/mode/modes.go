package mode

import "github.com/muhandis-app/assistant-api/internal/domain"

// Service mode identifiers.
const (
	StructuralAnalysis domain.Mode = "structural-analysis"
	Geotechnical       domain.Mode = "geotechnical"
	MEPDesign          domain.Mode = "mep-design"
	Surveying          domain.Mode = "surveying"
	Supervision        domain.Mode = "site-supervision"
	CostEstimation     domain.Mode = "cost-estimation"
)

const (
	// DefaultHint seeds the composer for core chat modes.
	DefaultHint = "Ask anything about your projects, engineers, or service requests"

	// DefaultThreadTitle names threads created in a core mode.
	DefaultThreadTitle = "New Conversation"

	defaultSystemPrompt = "You are the assistant of a Saudi engineering-services platform. " +
		"Help clients, engineers, and enterprises with their projects and service requests. " +
		"Answer in the user's language and reference Saudi Building Code (SBC) requirements where relevant."
)

var order = []domain.Mode{
	StructuralAnalysis,
	Geotechnical,
	MEPDesign,
	Surveying,
	Supervision,
	CostEstimation,
}

var registry = map[domain.Mode]Config{
	StructuralAnalysis: {
		Title:   "Structural Analysis",
		Summary: "Load calculations, member sizing, and SBC 301 compliance checks",
		SystemPrompt: "You are a structural engineering assistant for projects in Saudi Arabia. " +
			"Guide the user through load takedown, member sizing, and code checks against SBC 301/304. " +
			"State assumptions explicitly and flag anything that requires a licensed engineer's stamp.",
		ComposerHint:       "Describe the structure, spans, and loads you need analyzed",
		DefaultThreadTitle: "Structural Analysis",
		Tools:              []string{"load-calculator", "section-database", "code-lookup"},
		Workflow:           []string{"scope", "loads", "analysis", "sizing", "report"},
	},
	Geotechnical: {
		Title:   "Geotechnical",
		Summary: "Soil reports, bearing capacity, and foundation recommendations",
		SystemPrompt: "You are a geotechnical assistant. Interpret soil investigation reports, estimate " +
			"bearing capacity, and recommend foundation systems per SBC 303. Ask for borehole data when missing.",
		ComposerHint:       "Paste soil report data or describe the site conditions",
		DefaultThreadTitle: "Geotechnical Review",
		Tools:              []string{"bearing-capacity", "settlement-estimator", "code-lookup"},
		Workflow:           []string{"site-data", "classification", "capacity", "recommendation"},
	},
	MEPDesign: {
		Title:   "MEP Design",
		Summary: "Mechanical, electrical, and plumbing sizing and coordination",
		SystemPrompt: "You are an MEP design assistant. Size HVAC, electrical, and plumbing systems, check " +
			"SBC 401/501/701 requirements, and flag coordination clashes between disciplines.",
		ComposerHint:       "Describe the building type, area, and the systems to size",
		DefaultThreadTitle: "MEP Design",
		Tools:              []string{"hvac-load", "cable-sizing", "pipe-sizing"},
		Workflow:           []string{"requirements", "loads", "sizing", "coordination"},
	},
	Surveying: {
		Title:   "Surveying",
		Summary: "Land surveying, setting-out, and as-built verification",
		SystemPrompt: "You are a land-surveying assistant. Help with coordinate transformations, setting-out " +
			"plans, area computations, and as-built checks. Use metric units and state datum assumptions.",
		ComposerHint:       "Share coordinates, plot details, or the survey task",
		DefaultThreadTitle: "Survey Task",
		Tools:              []string{"coordinate-transform", "area-calculator"},
		Workflow:           []string{"inputs", "computation", "verification", "deliverable"},
	},
	Supervision: {
		Title:   "Site Supervision",
		Summary: "Inspection checklists, NCR drafting, and progress reporting",
		SystemPrompt: "You are a site-supervision assistant for field engineers. Draft inspection checklists, " +
			"non-conformance reports, and daily progress summaries. Keep output structured and concise.",
		ComposerHint:       "Describe the inspection, observation, or report you need",
		DefaultThreadTitle: "Site Supervision",
		Tools:              []string{"checklist-builder", "ncr-template", "photo-log"},
		Workflow:           []string{"observation", "classification", "report", "follow-up"},
	},
	CostEstimation: {
		Title:   "Cost Estimation",
		Summary: "Quantity takeoff and budget estimates with local market rates",
		SystemPrompt: "You are a cost-estimation assistant for construction projects in Saudi Arabia. Produce " +
			"quantity takeoffs and budget ranges in SAR, and state the rate basis and contingency used.",
		ComposerHint:       "Describe the scope to estimate, with drawings or quantities if available",
		DefaultThreadTitle: "Cost Estimate",
		Tools:              []string{"takeoff", "rate-database", "boq-builder"},
		Workflow:           []string{"scope", "takeoff", "pricing", "summary"},
	},
}
