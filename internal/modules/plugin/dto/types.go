package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type ProjectRecord struct {
	Plugin             string
	ID                 string
	Name               string
	DescriptionSerious string
	DescriptionPlayful string
	Tech               []string
	GitHubURL          string
	LiveURL            string
}
