package career

import (
	"fmt"
	"sort"
	"strings"
)

// RoleProfile is the static requirement sheet of a role.
type RoleProfile struct {
	Role            string
	RequiredSkills  []string
	TechnicalSkills []string
	MinExperience   float64
	Certifications  []string
}

// Skills returns required then technical skills, in declared priority order.
func (p RoleProfile) Skills() []string {
	out := make([]string, 0, len(p.RequiredSkills)+len(p.TechnicalSkills))
	out = append(out, p.RequiredSkills...)
	return append(out, p.TechnicalSkills...)
}

// SalaryBand is an annual salary range in INR lakhs.
type SalaryBand struct {
	Min float64
	Max float64
	Avg float64
}

var (
	defaultCurrentSalary = SalaryBand{Min: 5, Max: 10, Avg: 7.5}
	defaultTargetSalary  = SalaryBand{Min: 8, Max: 15, Avg: 11}
)

type keyedText struct {
	key  string
	text []string
}

type keyedFormat struct {
	key    string
	format string
}

// Reference holds the editorial tables the predictor reads: role
// transitions, role profiles, salaries and learning material. It is never
// mutated after construction.
type Reference struct {
	transitions map[string][]string
	profiles    map[string]RoleProfile
	salaries    map[string]SalaryBand
	resources   []keyedText
	importance  []keyedFormat
}

// NormalizeRole lowercases a role title and collapses its whitespace.
func NormalizeRole(role string) string {
	return strings.Join(strings.Fields(strings.ToLower(role)), " ")
}

// DefaultReference returns the built-in reference tables.
func DefaultReference() *Reference {
	ref := &Reference{
		transitions: map[string][]string{
			"junior developer":     {"senior developer", "full stack developer", "backend developer"},
			"senior developer":     {"tech lead", "engineering manager", "architect"},
			"full stack developer": {"senior full stack developer", "tech lead", "product engineer"},
			"backend developer":    {"senior backend developer", "backend architect", "devops engineer"},
			"frontend developer":   {"senior frontend developer", "ui/ux engineer", "full stack developer"},
			"data analyst":         {"senior data analyst", "data scientist", "business intelligence analyst"},
			"data scientist":       {"senior data scientist", "ml engineer", "data science manager"},
			"ml engineer":          {"senior ml engineer", "ml architect", "ai researcher"},
			"devops engineer":      {"senior devops engineer", "cloud architect", "sre"},
			"qa engineer":          {"senior qa engineer", "qa lead", "sdet"},
			"intern":               {"junior developer", "associate engineer", "trainee"},
			"fresher":              {"junior developer", "associate engineer", "trainee"},
		},
		profiles: make(map[string]RoleProfile),
		salaries: map[string]SalaryBand{
			"junior developer":     {Min: 3.5, Max: 6, Avg: 4.5},
			"senior developer":     {Min: 8, Max: 15, Avg: 11},
			"tech lead":            {Min: 15, Max: 25, Avg: 20},
			"full stack developer": {Min: 6, Max: 12, Avg: 8.5},
			"data scientist":       {Min: 8, Max: 18, Avg: 12},
			"ml engineer":          {Min: 10, Max: 20, Avg: 14},
			"devops engineer":      {Min: 7, Max: 15, Avg: 10},
			"engineering manager":  {Min: 20, Max: 40, Avg: 28},
			"intern":               {Min: 0.15, Max: 0.5, Avg: 0.3},
			"fresher":              {Min: 2.5, Max: 5, Avg: 3.5},
		},
		resources: []keyedText{
			{key: "system design", text: []string{"System Design Primer", "Designing Data-Intensive Applications"}},
			{key: "docker", text: []string{"Docker Mastery Course", "Official Docker Documentation"}},
			{key: "kubernetes", text: []string{"Kubernetes in Action", "CKA Certification Course"}},
			{key: "machine learning", text: []string{"Coursera ML Specialization", "Fast.ai Course"}},
			{key: "react", text: []string{"React Official Tutorial", "Epic React by Kent C. Dodds"}},
			{key: "python", text: []string{"Python Crash Course", "Automate the Boring Stuff"}},
			{key: "aws", text: []string{"AWS Solutions Architect Course", "AWS Documentation"}},
			{key: "mentoring", text: []string{"The Manager's Path", "Leadership Training"}},
			{key: "code review", text: []string{"Code Review Best Practices", "Google Engineering Practices"}},
		},
		importance: []keyedFormat{
			{key: "system design", format: "Critical for %s to architect scalable solutions"},
			{key: "docker", format: "Essential for modern %s deployment workflows"},
			{key: "kubernetes", format: "Required for %s to manage containerized applications"},
			{key: "mentoring", format: "Key leadership skill for %s position"},
			{key: "machine learning", format: "Core competency for %s in AI/ML projects"},
		},
	}

	for _, p := range []RoleProfile{
		{
			Role:            "junior developer",
			RequiredSkills:  []string{"programming fundamentals", "version control", "debugging", "testing"},
			TechnicalSkills: []string{"git", "sql", "rest api", "html"},
			MinExperience:   1,
		},
		{
			Role:            "senior developer",
			RequiredSkills:  []string{"system design", "mentoring", "code review", "architecture"},
			TechnicalSkills: []string{"advanced algorithms", "design patterns", "performance optimization"},
			MinExperience:   5,
			Certifications:  []string{"AWS Solutions Architect", "Professional Scrum Master"},
		},
		{
			Role:            "tech lead",
			RequiredSkills:  []string{"team management", "technical strategy", "project planning"},
			TechnicalSkills: []string{"system architecture", "scalability", "security"},
			MinExperience:   7,
			Certifications:  []string{"PMP", "AWS Solutions Architect Professional"},
		},
		{
			Role:            "full stack developer",
			RequiredSkills:  []string{"frontend", "backend", "database", "deployment"},
			TechnicalSkills: []string{"react", "node.js", "mongodb", "docker"},
			MinExperience:   3,
			Certifications:  []string{"Full Stack Web Development", "Cloud Practitioner"},
		},
		{
			Role:            "data scientist",
			RequiredSkills:  []string{"machine learning", "statistics", "data analysis", "python"},
			TechnicalSkills: []string{"scikit-learn", "tensorflow", "pandas", "sql"},
			MinExperience:   3,
			Certifications:  []string{"Google Data Analytics", "AWS ML Specialty"},
		},
		{
			Role:            "senior data scientist",
			RequiredSkills:  []string{"machine learning", "statistics", "experimentation", "mentoring"},
			TechnicalSkills: []string{"python", "sql", "spark", "deep learning"},
			MinExperience:   6,
		},
		{
			Role:            "ml engineer",
			RequiredSkills:  []string{"deep learning", "mlops", "model deployment", "python"},
			TechnicalSkills: []string{"pytorch", "tensorflow", "kubernetes", "docker"},
			MinExperience:   4,
			Certifications:  []string{"TensorFlow Developer", "AWS ML Specialty"},
		},
		{
			Role:            "devops engineer",
			RequiredSkills:  []string{"ci/cd", "cloud platforms", "automation", "monitoring"},
			TechnicalSkills: []string{"docker", "kubernetes", "terraform", "jenkins"},
			MinExperience:   3,
			Certifications:  []string{"AWS DevOps Professional", "CKA"},
		},
		{
			Role:            "engineering manager",
			RequiredSkills:  []string{"people management", "strategic planning", "budgeting"},
			TechnicalSkills: []string{"technical oversight", "architecture review"},
			MinExperience:   8,
			Certifications:  []string{"PMP", "Leadership Training"},
		},
		{
			Role:            "architect",
			RequiredSkills:  []string{"system design", "architecture", "technical strategy", "documentation"},
			TechnicalSkills: []string{"microservices", "cloud platforms", "scalability", "security"},
			MinExperience:   10,
			Certifications:  []string{"AWS Solutions Architect Professional", "TOGAF"},
		},
	} {
		ref.profiles[p.Role] = p
	}

	return ref
}

// Transitions returns the curated next roles for a current role, or nil.
func (r *Reference) Transitions(role string) []string {
	return r.transitions[NormalizeRole(role)]
}

// Profile returns the requirement sheet of a role.
func (r *Reference) Profile(role string) (RoleProfile, bool) {
	p, ok := r.profiles[NormalizeRole(role)]
	return p, ok
}

// Salary returns the salary band of a role.
func (r *Reference) Salary(role string) (SalaryBand, bool) {
	s, ok := r.salaries[NormalizeRole(role)]
	return s, ok
}

// KnownRoles lists the current roles that have curated transitions, sorted.
func (r *Reference) KnownRoles() []string {
	roles := make([]string, 0, len(r.transitions))
	for role := range r.transitions {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Resources returns learning material for a skill. The first table key
// contained in the skill wins; unknown skills get generic pointers.
func (r *Reference) Resources(skill string) []string {
	lower := strings.ToLower(skill)
	for _, entry := range r.resources {
		if strings.Contains(lower, entry.key) {
			return append([]string(nil), entry.text...)
		}
	}
	return []string{skill + " Online Course", skill + " Documentation", skill + " Tutorial"}
}

// Importance explains why a skill matters for a role.
func (r *Reference) Importance(skill, role string) string {
	lower := strings.ToLower(skill)
	for _, entry := range r.importance {
		if strings.Contains(lower, entry.key) {
			return fmt.Sprintf(entry.format, role)
		}
	}
	return "Important skill for " + role + " role"
}
