package core

// CoverageReport is the structured result returned by a ReportLoader.
type CoverageReport struct {
	// Coverage is the aggregate ratio in [0,1] across every target.
	Coverage float64  `json:"coverage"`
	Targets  []Target `json:"targets"`
}

// Target is a named build target owning the coverage of its files.
type Target struct {
	Name string `json:"name"`
	// Coverage is the target-wide ratio and is not recomputed by filtering.
	Coverage float64        `json:"coverage"`
	Files    []CoverageFile `json:"files"`
}

// CoverageFile is the coverage of a single source file.
type CoverageFile struct {
	Name      string             `json:"name"`
	Location  string             `json:"location,omitempty"`
	Coverage  float64            `json:"coverage"`
	Functions []FunctionCoverage `json:"functions,omitempty"`
}

// FunctionCoverage is informational per-function coverage carried from the tool output.
type FunctionCoverage struct {
	Name     string  `json:"name"`
	Coverage float64 `json:"coverage"`
}

// Copy returns a deep copy of the report.
func (r *CoverageReport) Copy() *CoverageReport {
	if r == nil {
		return nil
	}
	out := &CoverageReport{Coverage: r.Coverage, Targets: make([]Target, len(r.Targets))}
	for i, t := range r.Targets {
		out.Targets[i] = Target{Name: t.Name, Coverage: t.Coverage, Files: make([]CoverageFile, len(t.Files))}
		for j, f := range t.Files {
			f.Functions = append([]FunctionCoverage(nil), f.Functions...)
			out.Targets[i].Files[j] = f
		}
	}
	return out
}

// ChangedFileSet is the set of repo-relative paths added or modified by the review request.
type ChangedFileSet map[string]struct{}

// NewChangedFileSet builds a set from the given paths.
func NewChangedFileSet(paths ...string) ChangedFileSet {
	s := make(ChangedFileSet, len(paths))
	s.Add(paths...)
	return s
}

// Add inserts paths into the set, skipping empty strings.
func (s ChangedFileSet) Add(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		s[p] = struct{}{}
	}
}

// Has reports whether p is a member.
func (s ChangedFileSet) Has(p string) bool {
	_, ok := s[p]
	return ok
}

// MatchMode selects how report files are compared with changed paths.
type MatchMode string

const (
	// MatchPath compares normalized repo-relative paths.
	MatchPath MatchMode = "path"
	// MatchBasename compares base file names only.
	MatchBasename MatchMode = "basename"
)

// ReportSource selects the ReportLoader implementation.
type ReportSource string

// Report sources.
const (
	SourceXcov  ReportSource = "xcov"
	SourceXccov ReportSource = "xccov"
	SourceFile  ReportSource = "file"
)

// ChangeSource selects the ChangeProvider implementation.
type ChangeSource string

// Changed files sources.
const (
	ChangesGit    ChangeSource = "git"
	ChangesGitHub ChangeSource = "github"
	ChangesDiff   ChangeSource = "diff"
)

// PublisherType selects where the summary is posted.
type PublisherType string

// Publishers.
const (
	PublishStdout PublisherType = "stdout"
	PublishFile   PublisherType = "file"
	PublishGitHub PublisherType = "github"
)

// Summary is the rendered outcome of a coverage check.
type Summary struct {
	Markdown string `json:"markdown"`
	Passed   bool   `json:"passed"`
	// Evaluated is false when the check short-circuited on an error.
	Evaluated bool `json:"evaluated"`
	// Failure is the fail message when the threshold was not met.
	Failure string `json:"failure,omitempty"`
}

// CommandType is the kind of external command being executed.
type CommandType string

// Types of external commands.
const (
	CommandXcov  CommandType = "xcov"
	CommandXccov CommandType = "xccov"
	CommandGit   CommandType = "git"
)
