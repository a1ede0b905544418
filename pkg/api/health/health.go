// Package health serves the liveness probe of covgate serve.
package health

import (
	"net/http"

	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/gin-gonic/gin"
)

// VersionHeader carries the running covgate version on health responses.
const VersionHeader = "X-Covgate-Version"

// Handler reports that the server is up.
func Handler(c *gin.Context) {
	c.Header(VersionHeader, global.BinaryVersion)
	c.Data(http.StatusOK, gin.MIMEPlain, []byte(http.StatusText(http.StatusOK)))
}
