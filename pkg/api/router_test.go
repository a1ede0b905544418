package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LambdaTest/covgate/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	xcov, err := testutils.LoadFile(testutils.XcovReportPath)
	require.NoError(t, err)

	checkBody := func(threshold string, changed string) []byte {
		return []byte(`{"report":` + string(xcov) + `,"changed_files":[` + changed + `],"threshold":` + threshold + `}`)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		body       []byte
		wantStatus int
		wantPassed *bool
		contains   string
	}{
		{"health", http.MethodGet, "/health", nil, http.StatusOK, nil, "OK"},
		{"check passes", http.MethodPost, "/v1/check", checkBody("50", `"App/a.swift"`), http.StatusOK, boolPtr(true), "a.swift"},
		{"check fails", http.MethodPost, "/v1/check", checkBody("70", `"App/a.swift"`), http.StatusOK, boolPtr(false), "Code coverage under minimum of 70%"},
		{"no threshold", http.MethodPost, "/v1/check", checkBody("null", ""), http.StatusOK, boolPtr(true), "no changed files in this target"},
		{"threshold out of range", http.MethodPost, "/v1/check", checkBody("101", ""), http.StatusBadRequest, nil, "Threshold"},
		{"missing report", http.MethodPost, "/v1/check", []byte(`{"changed_files":[]}`), http.StatusBadRequest, nil, "Report"},
		{"unknown report shape", http.MethodPost, "/v1/check", []byte(`{"report":{"foo":1}}`), http.StatusBadRequest, nil, "no coverage or targets"},
		{"bad match mode", http.MethodPost, "/v1/check", []byte(`{"report":{"coverage":1},"match_mode":"fuzzy"}`), http.StatusBadRequest, nil, "MatchMode"},
		{"body too large", http.MethodPost, "/v1/check", append(bytes.Repeat([]byte(" "), 1<<16), checkBody("50", "")...), http.StatusBadRequest, nil, "too large"},
	}
	router := NewRouter(logger, 1<<15).Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			if tt.wantPassed != nil {
				var got struct {
					Markdown string `json:"markdown"`
					Passed   bool   `json:"passed"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, *tt.wantPassed, got.Passed)
			}
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}
