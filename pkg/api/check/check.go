package check

import (
	"encoding/json"
	"net/http"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/LambdaTest/covgate/pkg/reportloader"
	"github.com/LambdaTest/covgate/pkg/service/coverage"
	"github.com/gin-gonic/gin"
)

// Request is the body of a coverage check.
type Request struct {
	// Report is a coverage report in the xcov or xccov JSON shape.
	Report       json.RawMessage `json:"report" binding:"required"`
	ChangedFiles []string        `json:"changed_files"`
	Threshold    *int            `json:"threshold" binding:"omitempty,min=0,max=100"`
	MatchMode    core.MatchMode  `json:"match_mode" binding:"omitempty,oneof=path basename"`
	RepoRoot     string          `json:"repo_root"`
}

// Handler filters the posted report to the changed files and returns the summary.
func Handler(logger lumber.Logger, maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBodyBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}
		request := Request{}
		if err := c.ShouldBindJSON(&request); err != nil {
			logger.Errorf("error while binding json %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		report, err := reportloader.Decode(request.Report)
		if err != nil {
			logger.Errorf("invalid coverage report %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		mode := request.MatchMode
		if mode == "" {
			mode = core.MatchPath
		}
		filtered := coverage.Filter(report, core.NewChangedFileSet(request.ChangedFiles...), mode, request.RepoRoot)
		c.JSON(http.StatusOK, coverage.Summarize(filtered, report, request.Threshold))
	}
}
