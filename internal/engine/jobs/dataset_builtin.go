package jobs

import "time"

// SourceLocal tags listings served from the local dataset.
const SourceLocal = "local"

func rating(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// BuiltinListings returns the curated listings shipped with the service.
// Each call returns a fresh copy.
func BuiltinListings() []Job {
	raw := []RawJob{
		{
			ID: "vj-001", Title: "Cybersecurity Analyst", Company: "Northern Shield Defence",
			Location: "Ottawa, ON", Description: "Monitor and defend networks for federal clients. Former signals and cyber operators welcome.",
			RequiredSkills: []string{"network security", "incident response", "SIEM"}, PreferredSkills: []string{"Python", "threat intelligence"},
			SalaryMin: 85000, SalaryMax: 105000, ClearanceLevel: "secret", MOSCode: "00378", RequiredMOSCodes: []string{"00378", "00362"},
			JobType: "full-time", Industry: "Defence & Security", ExperienceLevel: "mid", EducationLevel: "college",
			CompanySize: "medium", CompanyRating: rating(4.3), Benefits: []string{"health", "pension", "training"},
			Date: day("2026-09-02"), URL: "https://jobs.example.ca/vj-001",
		},
		{
			ID: "vj-002", Title: "Logistics Coordinator", Company: "Maple Freight Lines",
			Location: "Edmonton, AB", Description: "Plan inbound and outbound shipments across western Canada.",
			RequiredSkills: []string{"logistics", "inventory management", "dispatch"}, PreferredSkills: []string{"SAP"},
			SalaryMin: 55000, SalaryMax: 65000, MOSCode: "00168", RequiredMOSCodes: []string{"00168"},
			JobType: "full-time", Industry: "Transportation", ExperienceLevel: "entry", EducationLevel: "high school",
			CompanySize: "large", CompanyRating: rating(3.9), Benefits: []string{"health", "dental"},
			Date: day("2026-09-10"), URL: "https://jobs.example.ca/vj-002",
		},
		{
			ID: "vj-003", Title: "Aircraft Maintenance Engineer", Company: "Boreal Aerospace",
			Location: "Winnipeg, MB", Description: "Inspect and repair turboprop fleets. AVN and ACS technicians encouraged to apply.",
			RequiredSkills: []string{"aircraft maintenance", "avionics"}, PreferredSkills: []string{"AME licence"},
			SalaryMin: 78000, SalaryMax: 98000, ClearanceLevel: "reliability", MOSCode: "00135", RequiredMOSCodes: []string{"00135", "00136"},
			JobType: "full-time", Industry: "Aerospace", ExperienceLevel: "senior", EducationLevel: "college",
			CompanySize: "large", CompanyRating: rating(4.1), Benefits: []string{"health", "pension", "tools allowance"},
			Date: day("2026-08-28"), URL: "https://jobs.example.ca/vj-003",
		},
		{
			ID: "vj-004", Title: "Project Manager, Infrastructure", Company: "Trident Engineering",
			Location: "Halifax, NS", Description: "Lead construction projects for port and base infrastructure.",
			RequiredSkills: []string{"project management", "budgeting"}, PreferredSkills: []string{"PMP", "leadership"},
			SalaryMin: 95000, SalaryMax: 120000, ClearanceLevel: "reliability",
			JobType: "full-time", Industry: "Construction", ExperienceLevel: "senior", EducationLevel: "bachelor",
			CompanySize: "medium", CompanyRating: rating(4.0), Benefits: []string{"health", "bonus"},
			Date: day("2026-09-15"), URL: "https://jobs.example.ca/vj-004",
		},
		{
			ID: "vj-005", Title: "Remote IT Support Specialist", Company: "Patriot Tech Services",
			Location: "Remote (Canada)", Description: "Tier 2 support for a national help desk. Fully remote.",
			RequiredSkills: []string{"technical support", "Active Directory"}, PreferredSkills: []string{"ITIL"},
			SalaryMin: 50000, SalaryMax: 62000,
			JobType: "full-time", Industry: "Information Technology", ExperienceLevel: "entry", EducationLevel: "college",
			CompanySize: "small", CompanyRating: rating(3.6), Benefits: []string{"remote stipend", "health"},
			Date: day("2026-09-20"), URL: "https://jobs.example.ca/vj-005",
		},
		{
			ID: "vj-006", Title: "Security Operations Supervisor", Company: "Garrison Protective Services",
			Location: "Toronto, ON", Description: "Supervise a team of guards at critical infrastructure sites. Military police experience an asset.",
			RequiredSkills: []string{"team leadership", "physical security"}, PreferredSkills: []string{"first aid"},
			SalaryMin: 60000, SalaryMax: 70000, ClearanceLevel: "reliability", MOSCode: "00161", RequiredMOSCodes: []string{"00161"},
			JobType: "full-time", Industry: "Security Services", ExperienceLevel: "mid", EducationLevel: "high school",
			CompanySize: "large", CompanyRating: rating(3.4), Benefits: []string{"health"},
			Date: day("2026-09-05"), URL: "https://jobs.example.ca/vj-006",
		},
		{
			ID: "vj-007", Title: "Paramedic", Company: "Prairie Health Authority",
			Location: "Regina, SK", Description: "Primary care paramedic for urban and rural response.",
			RequiredSkills: []string{"emergency medical care", "patient assessment"}, PreferredSkills: []string{"ACP"},
			SalaryMin: 65000, SalaryMax: 82000, MOSCode: "00334", RequiredMOSCodes: []string{"00334"},
			JobType: "full-time", Industry: "Healthcare", ExperienceLevel: "entry", EducationLevel: "college",
			CompanySize: "large", CompanyRating: rating(3.8), Benefits: []string{"pension", "health", "dental"},
			Date: day("2026-09-12"), URL: "https://jobs.example.ca/vj-007",
		},
		{
			ID: "vj-008", Title: "Heavy Equipment Technician", Company: "Coastal Marine Works",
			Location: "Esquimalt, BC", Description: "Maintain diesel engines and hydraulic systems on marine and land equipment.",
			RequiredSkills: []string{"diesel mechanics", "hydraulics"}, PreferredSkills: []string{"welding"},
			SalaryMin: 70000, SalaryMax: 88000, MOSCode: "00129", RequiredMOSCodes: []string{"00129", "00331"},
			JobType: "contract", Industry: "Marine", ExperienceLevel: "mid", EducationLevel: "trade certificate",
			CompanySize: "small", Benefits: []string{"overtime"},
			Date: day("2026-08-30"), URL: "https://jobs.example.ca/vj-008",
		},
		{
			ID: "vj-009", Title: "Intelligence Analyst", Company: "Strategic Insight Group",
			Location: "Arlington, VA", Description: "All-source analysis supporting defence customers in the United States.",
			RequiredSkills: []string{"intelligence analysis", "report writing"}, PreferredSkills: []string{"GEOINT", "Python"},
			SalaryMin: 110000, SalaryMax: 140000, ClearanceLevel: "top secret", MOSCode: "35F", RequiredMOSCodes: []string{"35F", "35N"},
			JobType: "full-time", Industry: "Defence & Security", ExperienceLevel: "senior", EducationLevel: "bachelor",
			CompanySize: "medium", CompanyRating: rating(4.5), Benefits: []string{"health", "401k", "tuition"},
			Date: day("2026-09-18"), URL: "https://jobs.example.com/vj-009",
		},
		{
			ID: "vj-010", Title: "Network Technician", Company: "Lone Star Communications",
			Location: "San Antonio, TX", Description: "Install and troubleshoot enterprise networks and radio links.",
			RequiredSkills: []string{"network cabling", "routing"}, PreferredSkills: []string{"CCNA"},
			SalaryMin: 52000, SalaryMax: 64000, ClearanceLevel: "secret", MOSCode: "25B", RequiredMOSCodes: []string{"25B", "25U"},
			JobType: "full-time", Industry: "Telecommunications", ExperienceLevel: "entry", EducationLevel: "high school",
			CompanySize: "medium", CompanyRating: rating(3.7), Benefits: []string{"health", "401k"},
			Date: day("2026-09-08"), URL: "https://jobs.example.com/vj-010",
		},
		{
			ID: "vj-011", Title: "Training Program Instructor", Company: "Veterans Skills Academy",
			Location: "Kingston, ON", Description: "Deliver leadership and trades courses to transitioning members.",
			RequiredSkills: []string{"instruction", "curriculum design"}, PreferredSkills: []string{"leadership"},
			SalaryMin: 58000, SalaryMax: 66000,
			JobType: "part-time", Industry: "Education", ExperienceLevel: "mid", EducationLevel: "college",
			CompanySize: "small", CompanyRating: rating(4.6), Benefits: []string{"flexible hours"},
			Date: day("2026-09-01"), URL: "https://jobs.example.ca/vj-011",
		},
		{
			ID: "vj-012", Title: "Operations Manager", Company: "Laurentian Distribution",
			Location: "Montréal, QC", Description: "Lead warehouse operations and a bilingual team of forty.",
			RequiredSkills: []string{"operations management", "people leadership"}, PreferredSkills: []string{"French", "lean"},
			SalaryMin: 90000, SalaryMax: 110000,
			JobType: "full-time", Industry: "Warehousing", ExperienceLevel: "executive", EducationLevel: "bachelor",
			CompanySize: "large", CompanyRating: rating(3.9), Benefits: []string{"health", "bonus", "pension"},
			Date: day("2026-09-14"), URL: "https://jobs.example.ca/vj-012",
		},
	}

	out := make([]Job, len(raw))
	for i, r := range raw {
		out[i] = Normalize(r, SourceLocal)
	}
	return out
}
