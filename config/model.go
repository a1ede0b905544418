package config

import (
	"time"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/lumber"
)

// Config is the complete covgate configuration. It is built once per
// invocation and passed explicitly through the call chain.
type Config struct {
	Config   string `mapstructure:"config"`
	Verbose  bool   `mapstructure:"verbose"`
	RepoRoot string `mapstructure:"repo_root"`
	Logger   string `mapstructure:"logger" validate:"oneof=zap logrus"`
	Port     string `mapstructure:"port" validate:"required,numeric"`

	// Options passed through to the coverage tool.
	Source              core.ReportSource `mapstructure:"source" validate:"oneof=xcov xccov file"`
	ToolPath            string            `mapstructure:"tool_path"`
	Scheme              string            `mapstructure:"scheme"`
	Workspace           string            `mapstructure:"workspace"`
	Project             string            `mapstructure:"project"`
	DerivedDataPath     string            `mapstructure:"derived_data_path"`
	XccovFileDirectPath string            `mapstructure:"xccov_file_direct_path" validate:"required_if=Source xccov"`
	ReportPath          string            `mapstructure:"report_path" validate:"required_if=Source file"`
	IgnoreFilePath      string            `mapstructure:"ignore_file_path"`
	IgnoreGlobs         []string          `mapstructure:"ignore_globs"`
	IncludeTargets      []string          `mapstructure:"include_targets"`
	ExcludeTargets      []string          `mapstructure:"exclude_targets"`
	// MinimumCoveragePercentage is nil when no threshold is configured. Zero is a configured threshold.
	MinimumCoveragePercentage *int          `mapstructure:"minimum_coverage_percentage" validate:"omitempty,min=0,max=100"`
	MatchMode                 core.MatchMode `mapstructure:"match_mode" validate:"oneof=path basename"`
	Timeout                   time.Duration  `mapstructure:"timeout" validate:"gt=0"`
	MaxReportSize             string         `mapstructure:"max_report_size" validate:"required"`

	Changes   ChangesConfig        `mapstructure:"changes"`
	Publisher PublisherConfig      `mapstructure:"publisher"`
	GitHub    GitHubConfig         `mapstructure:"github"`
	Archive   ArchiveConfig        `mapstructure:"archive"`
	Log       lumber.LoggingConfig `mapstructure:"log"`
}

// ChangesConfig selects how the changed file set is obtained.
type ChangesConfig struct {
	Source   core.ChangeSource `mapstructure:"source" validate:"oneof=git github diff"`
	BaseRef  string            `mapstructure:"base_ref" validate:"required_if=Source git"`
	HeadRef  string            `mapstructure:"head_ref"`
	DiffFile string            `mapstructure:"diff_file" validate:"required_if=Source diff"`
}

// PublisherConfig selects where the summary goes.
type PublisherConfig struct {
	Type       core.PublisherType `mapstructure:"type" validate:"oneof=stdout file github"`
	OutputFile string             `mapstructure:"output_file" validate:"required_if=Type file"`
	// Sticky updates the previous covgate comment instead of adding a new one.
	Sticky bool `mapstructure:"sticky"`
	// Status sets a commit status on the pull request head.
	Status bool `mapstructure:"status"`
}

// GitHubConfig holds the coordinates of the pull request under review.
type GitHubConfig struct {
	Token       string `mapstructure:"token"`
	APIURL      string `mapstructure:"api_url" validate:"omitempty,url"`
	Owner       string `mapstructure:"owner"`
	Repo        string `mapstructure:"repo"`
	PullRequest int    `mapstructure:"pull_request" validate:"min=0"`
}

// ArchiveConfig controls storing the filtered report after a run.
type ArchiveConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Dir     string      `mapstructure:"dir"`
	Azure   AzureConfig `mapstructure:"azure"`
}

// AzureConfig provides the blob storage configuration.
type AzureConfig struct {
	ContainerName      string `mapstructure:"container_name"`
	StorageAccountName string `mapstructure:"storage_account"`
	StorageAccessKey   string `mapstructure:"storage_access_key"`
}

// UsesGitHub reports whether any component talks to the GitHub API.
func (c *Config) UsesGitHub() bool {
	return c.Changes.Source == core.ChangesGitHub || c.Publisher.Type == core.PublishGitHub
}

// UsesAzure reports whether archives go to blob storage instead of a local directory.
func (c *Config) UsesAzure() bool {
	return c.Archive.Azure.StorageAccountName != ""
}
