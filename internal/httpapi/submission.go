package httpapi

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"judgecore/internal/judge/task"
	"judgecore/internal/judge/verdict"
)

// submissionRequest is the exact wire shape of the submission endpoint
// (source + lang + problem_id).
type submissionRequest struct {
	Source    string `json:"source" binding:"required"`
	Lang      string `json:"lang" binding:"required"`
	ProblemID string `json:"problem_id" binding:"required"`
}

// submissionResponse is the exact wire shape of a verdict: a stable
// ordinal status plus a debug-rendered info string.
type submissionResponse struct {
	Status verdict.Code `json:"status"`
	Info   string       `json:"info"`
}

// NewSubmissionHandler builds the gin handler for the submission
// endpoint. An unrecognized lang is rejected before any work is
// dispatched (HTTP 400, empty body). An unparseable problem_id still
// returns HTTP 200, carrying the UnknownError verdict with the literal
// "Wrong problem id" info string rather than a debug-rendered one.
func NewSubmissionHandler(eng *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		if _, err := eng.Registry.ExecuteRecipe(req.Lang); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		if _, err := strconv.ParseUint(req.ProblemID, 10, 64); err != nil {
			c.JSON(http.StatusOK, submissionResponse{
				Status: verdict.UnknownError,
				Info:   "Wrong problem id",
			})
			return
		}

		testcasesPath := filepath.Join(eng.TestcaseRoot, req.ProblemID)
		tk := task.New(req.ProblemID, testcasesPath, req.Lang, req.Source)

		result := make(chan verdict.Verdict, 1)
		job := tk.Job(eng.Stager, eng.Compiler, eng.Runner, func(v verdict.Verdict) {
			result <- v
		})
		eng.Pool.Submit(job)

		select {
		case v := <-result:
			c.JSON(http.StatusOK, submissionResponse{Status: v.Code, Info: v.Info})
		case <-c.Request.Context().Done():
			c.Status(http.StatusGatewayTimeout)
		}
	}
}
