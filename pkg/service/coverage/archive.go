package coverage

import (
	"bytes"
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/lumber"
)

const archiveMimeType = "application/zstd"

// Record is the archived outcome of a single run.
type Record struct {
	RunID     string               `json:"run_id"`
	CreatedAt time.Time            `json:"created_at"`
	Report    *core.CoverageReport `json:"report"`
	Summary   *core.Summary        `json:"summary"`
}

type archiver struct {
	store      core.BlobStore
	compressor core.Compressor
	logger     lumber.Logger
}

// NewArchiver returns an ArtifactManager writing compressed run records to store.
func NewArchiver(store core.BlobStore, compressor core.Compressor, logger lumber.Logger) core.ArtifactManager {
	return &archiver{store: store, compressor: compressor, logger: logger}
}

// Archive stores the filtered report and its summary under <runID>/coverage.json.zst.
func (a *archiver) Archive(ctx context.Context, runID string, report *core.CoverageReport, summary *core.Summary) (string, error) {
	body, err := json.Marshal(Record{RunID: runID, CreatedAt: time.Now().UTC(), Report: report, Summary: summary})
	if err != nil {
		a.logger.Errorf("failed to marshal coverage record %v", err)
		return "", err
	}
	var compressed bytes.Buffer
	if err := a.compressor.Compress(bytes.NewReader(body), &compressed); err != nil {
		return "", err
	}
	blobPath := path.Join(runID, global.ArchiveFileName+a.compressor.Extension())
	location, err := a.store.Create(ctx, blobPath, &compressed, archiveMimeType)
	if err != nil {
		a.logger.Errorf("failed to store coverage record %s, error: %v", blobPath, err)
		return "", err
	}
	a.logger.Infof("archived coverage record at %s", location)
	return location, nil
}
