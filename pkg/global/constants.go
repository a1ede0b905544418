package global

import "time"

// BinaryVersion is the covgate version, overridden at build time.
var BinaryVersion = "0.3.0"

// All constants related to covgate
const (
	EnvPrefix            = "COVGATE"
	DefaultPort          = "9876"
	DefaultToolTimeout   = 10 * time.Minute
	DefaultHTTPTimeout   = 45 * time.Second
	DefaultMaxReportSize = "50MB"
	DefaultIgnoreFile    = ".xcovignore"
	DefaultArchiveDir    = "./covgate-archive"
	ConfigFileName       = ".covgate"
	XcovReportFileName   = "report.json"
	ArchiveFileName      = "coverage.json"
	CommentMarker        = "<!-- covgate -->"
	StatusContext        = "covgate/coverage"
	DirectoryPermissions = 0o755
	FilePermissions      = 0o644
	GracefulTimeout      = 5 * time.Second
)

// Coverage ratios at which a file is shown as healthy or as a warning.
const (
	FileCoverageGood    = 0.8
	FileCoverageWarning = 0.5
)

// XcovPassThroughOptions lists the config keys forwarded verbatim to xcov.
// The threshold is evaluated by covgate so that xcov never aborts the run.
var XcovPassThroughOptions = []string{
	"scheme",
	"workspace",
	"project",
	"derived_data_path",
	"xccov_file_direct_path",
	"ignore_file_path",
	"include_targets",
	"exclude_targets",
}
