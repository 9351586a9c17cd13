package dto

type ProfileOutput struct {
	Name     string
	Handle   string
	Initials string
	Title    string
	Location string
	ShortBio string
	Tagline  string
	GitHub   string
	Email    string
}

type WorkOutput struct {
	ID       string
	Company  string
	Role     string
	Period   string
	Location string
	Summary  string
}

type EducationOutput struct {
	ID       string
	School   string
	Degree   string
	Period   string
	Location string
	Summary  string
}

type TechOutput struct {
	Key   string
	Label string
}

type ContentOutput struct {
	Profile   ProfileOutput
	Work      []WorkOutput
	Education []EducationOutput
	TechStack []TechOutput
}

type ProjectSeed struct {
	ID                 string
	Name               string
	DescriptionSerious string
	DescriptionPlayful string
	Tech               []string
	GitHubURL          string
	LiveURL            string
	Pinned             bool
}

type OverrideOutput struct {
	Name               string
	DescriptionSerious string
	DescriptionPlayful string
	Tech               []string
	LiveURL            string
	Pinned             *bool
}

// CatalogOutput is what the project provider needs from the content file.
type CatalogOutput struct {
	GitHubUser string
	Projects   []ProjectSeed
	Blacklist  []string
	Overrides  map[string]OverrideOutput
}

type ResumePageOutput struct {
	Page  int
	Pages int
	Text  string
}
