package expert

// Built-in domain names, in presentation order.
const (
	DomainProductivity        = "productivity"
	DomainTechnology          = "technology"
	DomainBusiness            = "business"
	DomainAcademic            = "academic"
	DomainSoftwareDevelopment = "software_development"
	DomainProductDesign       = "product_design"
)

var productivityExperts = []Template{
	{
		Key:         "gtd_expert",
		Name:        "David Allen (GTD Expert)",
		Expertise:   "Getting Things Done methodology",
		Perspective: "Focuses on capture, clarification, and context-based action",
		Background:  "Creator of GTD system, emphasizes stress-free productivity through complete capture and trusted systems",
	},
	{
		Key:         "para_expert",
		Name:        "Tiago Forte (PARA Expert)",
		Expertise:   "Building a Second Brain and PARA method",
		Perspective: "Focuses on actionability and creative output",
		Background:  "Digital organization expert, emphasizes projects over areas, progressive summarization",
	},
	{
		Key:         "deep_work_expert",
		Name:        "Cal Newport (Deep Work Expert)",
		Expertise:   "Deep Work and Digital Minimalism",
		Perspective: "Advocates for focused work and minimal digital distraction",
		Background:  "Computer science professor, author on focused work and attention management",
	},
	{
		Key:         "pomodoro_expert",
		Name:        "Francesco Cirillo (Pomodoro Expert)",
		Expertise:   "Pomodoro Technique and time boxing",
		Perspective: "Emphasizes focused work intervals and sustainable pace",
		Background:  "Creator of Pomodoro Technique, focuses on time awareness and flow states",
	},
	{
		Key:         "adhd_specialist",
		Name:        "Dr. Sarah Mitchell (ADHD Specialist)",
		Expertise:   "ADHD and Executive Function support",
		Perspective: "Considers working memory limitations and cognitive load",
		Background:  "Clinical psychologist specializing in executive function challenges and assistive technology",
	},
}

var techExperts = []Template{
	{
		Key:         "ux_designer",
		Name:        "Sarah Chen (UX Designer)",
		Expertise:   "User Experience and Interface Design",
		Perspective: "Focuses on user-centered design and accessibility",
		Background:  "Senior UX designer with 10+ years in product design, specializes in complex system usability",
	},
	{
		Key:         "software_architect",
		Name:        "Marcus Thompson (Software Architect)",
		Expertise:   "System Architecture and Scalability",
		Perspective: "Emphasizes maintainable, scalable system design",
		Background:  "Principal architect at major tech company, expert in distributed systems and API design",
	},
	{
		Key:         "devops_engineer",
		Name:        "Alex Rodriguez (DevOps Engineer)",
		Expertise:   "Infrastructure, Deployment, and Operations",
		Perspective: "Focuses on reliability, monitoring, and automation",
		Background:  "Senior DevOps engineer, expert in cloud infrastructure and CI/CD pipelines",
	},
	{
		Key:         "security_expert",
		Name:        "Dr. Lisa Wang (Security Expert)",
		Expertise:   "Cybersecurity and Privacy",
		Perspective: "Prioritizes security, privacy, and risk management",
		Background:  "Security researcher and consultant, specializes in application security and threat modeling",
	},
	{
		Key:         "frontend_expert",
		Name:        "Jordan Kim (Frontend Expert)",
		Expertise:   "Frontend Development and Performance",
		Perspective: "Focuses on user interface implementation and performance optimization",
		Background:  "Senior frontend engineer, expert in modern web technologies and performance optimization",
	},
}

var businessExperts = []Template{
	{
		Key:         "product_manager",
		Name:        "Emily Johnson (Product Manager)",
		Expertise:   "Product Strategy and Market Fit",
		Perspective: "Balances user needs with business objectives",
		Background:  "Senior PM at successful startups, expert in product-market fit and user research",
	},
	{
		Key:         "startup_advisor",
		Name:        "Mike Chen (Startup Advisor)",
		Expertise:   "Entrepreneurship and Business Development",
		Perspective: "Focuses on rapid iteration and market validation",
		Background:  "Serial entrepreneur and startup advisor, expert in lean startup methodology",
	},
	{
		Key:         "growth_expert",
		Name:        "Anna Rodriguez (Growth Expert)",
		Expertise:   "Growth Marketing and User Acquisition",
		Perspective: "Emphasizes scalable growth and user engagement",
		Background:  "Growth marketing leader, expert in data-driven growth strategies and user retention",
	},
	{
		Key:         "finance_expert",
		Name:        "Robert Kim (Finance Expert)",
		Expertise:   "Financial Planning and Business Models",
		Perspective: "Analyzes financial viability and sustainability",
		Background:  "Former investment banker turned startup CFO, expert in financial modeling and fundraising",
	},
}

var academicExperts = []Template{
	{
		Key:         "psychology_researcher",
		Name:        "Dr. Jennifer Adams (Psychology Researcher)",
		Expertise:   "Cognitive Psychology and Human Behavior",
		Perspective: "Applies psychological principles to understand user behavior",
		Background:  "Professor of cognitive psychology, research focus on attention, memory, and decision-making",
	},
	{
		Key:         "education_expert",
		Name:        "Dr. Michael Brown (Education Expert)",
		Expertise:   "Learning Sciences and Educational Technology",
		Perspective: "Focuses on effective learning and knowledge transfer",
		Background:  "Education researcher, expert in learning sciences and educational technology design",
	},
	{
		Key:         "data_scientist",
		Name:        "Dr. Priya Patel (Data Scientist)",
		Expertise:   "Data Analysis and Machine Learning",
		Perspective: "Emphasizes data-driven insights and predictive modeling",
		Background:  "PhD in Statistics, expert in machine learning applications and data analysis",
	},
}

// softwareDevelopmentExperts reuses the engineering-facing technology experts
// and adds a backend specialist.
func softwareDevelopmentExperts() []Template {
	keep := map[string]bool{
		"software_architect": true,
		"devops_engineer":    true,
		"security_expert":    true,
		"frontend_expert":    true,
	}
	var set []Template
	for _, t := range techExperts {
		if keep[t.Key] {
			set = append(set, t)
		}
	}
	return append(set, Template{
		Key:         "backend_expert",
		Name:        "Carlos Mendez (Backend Expert)",
		Expertise:   "Backend Development and Database Design",
		Perspective: "Focuses on scalable backend architecture and data management",
		Background:  "Senior backend engineer, expert in distributed systems and database optimization",
	})
}

func productDesignExperts() []Template {
	var set []Template
	for _, t := range techExperts {
		if t.Key == "ux_designer" {
			set = append(set, t)
		}
	}
	for _, t := range businessExperts {
		if t.Key == "product_manager" {
			set = append(set, t)
		}
	}
	for _, t := range academicExperts {
		if t.Key == "psychology_researcher" {
			set = append(set, t)
		}
	}
	return append(set, Template{
		Key:         "design_researcher",
		Name:        "Taylor Smith (Design Researcher)",
		Expertise:   "User Research and Design Strategy",
		Perspective: "Emphasizes user-centered research and evidence-based design",
		Background:  "Design researcher with expertise in qualitative and quantitative user research methods",
	})
}

// BuiltinDomains returns domain names in presentation order.
func BuiltinDomains() []string {
	return []string{
		DomainProductivity,
		DomainTechnology,
		DomainBusiness,
		DomainAcademic,
		DomainSoftwareDevelopment,
		DomainProductDesign,
	}
}

// Builtin returns the default domain tables.
func Builtin() map[string][]Template {
	return map[string][]Template{
		DomainProductivity:        append([]Template(nil), productivityExperts...),
		DomainTechnology:          append([]Template(nil), techExperts...),
		DomainBusiness:            append([]Template(nil), businessExperts...),
		DomainAcademic:            append([]Template(nil), academicExperts...),
		DomainSoftwareDevelopment: softwareDevelopmentExperts(),
		DomainProductDesign:       productDesignExperts(),
	}
}

// NewBuiltinStore returns a store seeded with the default domain tables.
func NewBuiltinStore() *MemoryStore {
	return NewMemoryStore(BuiltinDomains(), Builtin())
}

// Sample bundles a domain, an expert selection, and a round plan for a
// ready-made review scenario.
type Sample struct {
	Domain  string
	Experts []string
	Focus   string
	Rounds  []string
}

// Samples returns the ready-made review configurations by name.
func Samples() map[string]Sample {
	return map[string]Sample{
		"task_management_review": {
			Domain:  DomainProductivity,
			Experts: []string{"gtd_expert", "para_expert", "adhd_specialist", "deep_work_expert"},
			Focus:   "task management system design",
			Rounds: []string{
				"Initial Reactions",
				"Organizational Model",
				"User Experience",
				"Missing Concepts",
				"Implementation Priority",
				"Final Recommendations",
			},
		},
		"app_architecture_review": {
			Domain:  DomainTechnology,
			Experts: []string{"software_architect", "ux_designer", "devops_engineer", "security_expert"},
			Focus:   "application architecture and design",
			Rounds: []string{
				"Architecture Overview",
				"Scalability Concerns",
				"Security Assessment",
				"User Experience",
				"Deployment Strategy",
				"Recommendations",
			},
		},
		"startup_idea_validation": {
			Domain:  DomainBusiness,
			Experts: []string{"product_manager", "startup_advisor", "growth_expert", "finance_expert"},
			Focus:   "startup idea and business model",
			Rounds: []string{
				"Market Opportunity",
				"Product-Market Fit",
				"Business Model",
				"Growth Strategy",
				"Financial Viability",
				"Go-to-Market Strategy",
			},
		},
	}
}

// SampleNames returns the available sample configuration names.
func SampleNames() []string {
	return []string{
		"task_management_review",
		"app_architecture_review",
		"startup_idea_validation",
	}
}
