package domain

// SampleListings is the fixed fallback listing set used when the listing
// store is empty or unavailable. Mirrors the seed data shipped with the
// server.
func SampleListings() []JobListing {
	return []JobListing{
		{
			ID:              "job-001",
			Title:           "Senior Frontend Engineer",
			Company:         "TechCorp Innovation Labs",
			Location:        "San Francisco, CA",
			RequiredSkills:  []string{"react", "typescript", "javascript"},
			OptionalSkills:  []string{"graphql", "webpack", "testing"},
			ExperienceLevel: "senior",
			SalaryRange:     "$160k-$210k",
			WorkType:        WorkRemote,
			Industries:      []string{"technology", "saas"},
			Description:     "Join our frontend team building next-gen web applications. Lead our React initiative and mentor junior developers.",
		},
		{
			ID:              "job-002",
			Title:           "Full-Stack Engineer",
			Company:         "CloudScale Systems",
			Location:        "Seattle, WA",
			RequiredSkills:  []string{"python", "javascript", "react"},
			OptionalSkills:  []string{"postgresql", "docker", "aws"},
			ExperienceLevel: "mid",
			SalaryRange:     "$130k-$170k",
			WorkType:        WorkHybrid,
			Industries:      []string{"technology", "cloud"},
			Description:     "We're building cloud infrastructure for the future. Design and implement full-stack solutions across Python and TypeScript services.",
		},
		{
			ID:              "job-003",
			Title:           "Product Manager",
			Company:         "InnovateTech Solutions",
			Location:        "New York, NY",
			RequiredSkills:  []string{"product strategy", "analytics", "agile"},
			OptionalSkills:  []string{"sql", "figma"},
			ExperienceLevel: "senior",
			SalaryRange:     "$140k-$180k",
			WorkType:        WorkOnsite,
			Industries:      []string{"technology", "saas"},
			Description:     "Lead our product vision and strategy. Bridge the gap between user needs and technical capabilities.",
		},
		{
			ID:              "job-004",
			Title:           "Backend Engineer",
			Company:         "DataStream Analytics",
			Location:        "Remote (US)",
			RequiredSkills:  []string{"go", "postgresql", "kubernetes"},
			OptionalSkills:  []string{"kafka", "redis", "grpc"},
			ExperienceLevel: "mid",
			SalaryRange:     "$135k-$175k",
			WorkType:        WorkRemote,
			Industries:      []string{"technology", "data"},
			Description:     "Build high-throughput data pipelines and APIs. Our platform ingests billions of events a day.",
		},
		{
			ID:              "job-005",
			Title:           "DevOps Engineer",
			Company:         "SecureNet Infrastructure",
			Location:        "Austin, TX",
			RequiredSkills:  []string{"terraform", "aws", "kubernetes"},
			OptionalSkills:  []string{"python", "ansible"},
			ExperienceLevel: "senior",
			SalaryRange:     "$145k-$185k",
			WorkType:        WorkHybrid,
			Industries:      []string{"technology", "security"},
			Description:     "Own our cloud infrastructure end to end. Automate everything, keep the fleet healthy, and harden the perimeter.",
		},
		{
			ID:              "job-006",
			Title:           "Machine Learning Engineer",
			Company:         "Cognition AI",
			Location:        "Boston, MA",
			RequiredSkills:  []string{"python", "pytorch", "ml"},
			OptionalSkills:  []string{"spark", "mlops"},
			ExperienceLevel: "mid",
			SalaryRange:     "$150k-$195k",
			WorkType:        WorkRemote,
			Industries:      []string{"technology", "ai"},
			Description:     "Ship production ML systems for recommendation and ranking. Work closely with research and platform teams.",
		},
		{
			ID:              "job-007",
			Title:           "UX Designer",
			Company:         "BrightPath Design Studio",
			Location:        "Portland, OR",
			RequiredSkills:  []string{"figma", "user research", "prototyping"},
			OptionalSkills:  []string{"html", "css"},
			ExperienceLevel: "junior",
			SalaryRange:     "$85k-$110k",
			WorkType:        WorkOnsite,
			Industries:      []string{"design", "technology"},
			Description:     "Craft delightful product experiences for consumer and enterprise clients.",
		},
		{
			ID:              "job-008",
			Title:           "Frontend Developer",
			Company:         "RetailFlow Commerce",
			Location:        "Chicago, IL",
			RequiredSkills:  []string{"react", "javascript", "css"},
			OptionalSkills:  []string{"typescript", "nextjs"},
			ExperienceLevel: "junior",
			SalaryRange:     "$95k-$125k",
			WorkType:        WorkHybrid,
			Industries:      []string{"retail", "ecommerce"},
			Description:     "Build storefront experiences used by millions of shoppers. Strong eye for pixel-perfect UI required.",
		},
	}
}
