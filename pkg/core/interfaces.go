package core

import (
	"context"
	"io"
)

// ReportLoader obtains a coverage report from an external tool or from disk.
type ReportLoader interface {
	// Load returns the report or a ToolUnavailable, Retrieval or Config error.
	Load(ctx context.Context) (*CoverageReport, error)
}

// ChangeProvider returns the files added or modified by the current review request.
type ChangeProvider interface {
	ChangedFiles(ctx context.Context) (ChangedFileSet, error)
}

// Publisher posts the rendered summary and the pass/fail signal.
type Publisher interface {
	// Publish posts the markdown summary.
	Publish(ctx context.Context, markdown string) error
	// Signal surfaces the gate decision.
	Signal(ctx context.Context, passed bool, description string) error
}

// ExecutionManager runs external commands.
type ExecutionManager interface {
	// LookPath resolves the executable for name, honoring an explicit override path.
	LookPath(name, override string) (string, error)
	// Output runs the command in dir and returns its stdout. Stderr is streamed to the logger.
	Output(ctx context.Context, commandType CommandType, dir string, name string, args ...string) ([]byte, error)
}

// IgnoreHandler decides whether a report file should be dropped before filtering.
type IgnoreHandler interface {
	ShouldIgnore(path string) bool
}

// BlobStore stores archived artifacts.
type BlobStore interface {
	// Create stores the contents of reader at path and returns its location.
	Create(ctx context.Context, path string, reader io.Reader, mimeType string) (string, error)
}

// Compressor compresses and decompresses archived artifacts.
type Compressor interface {
	Compress(in io.Reader, out io.Writer) error
	Decompress(in io.Reader, out io.Writer) error
	// Extension is the file suffix of compressed artifacts.
	Extension() string
}

// ArtifactManager archives the outcome of a run.
type ArtifactManager interface {
	Archive(ctx context.Context, runID string, report *CoverageReport, summary *Summary) (string, error)
}
