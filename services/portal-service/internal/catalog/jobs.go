package catalog

import "github.com/vasapolrittideah/careers-portal/services/portal-service/internal/payload"

// Postings are listed in the order the jobs page shows them. The id is what
// the apply link passes as ?id=.
var postings = []payload.JobPosting{
	{ID: "marketing-manager", Title: "Marketing Manager", Company: "Starlight Resorts", Type: "Full-time"},
	{ID: "web-developer", Title: "Web Developer", Company: "WonderlightAdventure", Type: "Full-time"},
	{ID: "ai-prompt-engineer", Title: "AI Prompt Engineer", Company: "Visionary AI", Type: "Contract"},
	{ID: "tour-guide", Title: "Tour Guide", Company: "Explore More", Type: "Part-time"},
	{ID: "luxury-brand-ambassador", Title: "Luxury Brand Ambassador", Company: "Elegance United", Type: "Full-time"},
	{ID: "data-entry", Title: "Data Entry", Company: "Quantum Analytics", Type: "Full-time"},
	{ID: "ux-ui-designer", Title: "UX/UI Designer", Company: "Pixel Perfect", Type: "Full-time"},
	{ID: "content-creator", Title: "Content Creator", Company: "StoryWeave", Type: "Part-time"},
}

// Jobs returns a copy of the static job catalog.
func Jobs() []payload.JobPosting {
	out := make([]payload.JobPosting, len(postings))
	copy(out, postings)
	return out
}
