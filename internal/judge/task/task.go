// Package task implements the per-submission pipeline: stage source,
// compile, discover testcases, and fan out into RunnerJobs that the
// pool will drive to completion.
package task

import (
	"os"

	"judgecore/internal/judge/aggregation"
	"judgecore/internal/judge/compiler"
	"judgecore/internal/judge/pool"
	"judgecore/internal/judge/runner"
	"judgecore/internal/judge/stage"
	"judgecore/internal/judge/testcase"
	"judgecore/internal/judge/verdict"
	appErr "judgecore/pkg/errors"
)

// Task is one submission's pipeline input.
type Task struct {
	ProblemID     string
	TestcasesPath string
	Lang          string
	Source        string
}

// ReportFunc receives the terminal verdict for a submission, whether it
// was reached immediately (staging/compile failure) or asynchronously
// via the Aggregation finalizer once every testcase reports in.
type ReportFunc func(verdict.Verdict)

// New constructs a Task.
func New(problemID, testcasesPath, lang, source string) Task {
	return Task{ProblemID: problemID, TestcasesPath: testcasesPath, Lang: lang, Source: source}
}

// Job wraps Execute as a pool.Unit: its successors are the RunnerJobs
// Execute produced, each adapted to the pool's Followup interface.
// This is the convenience wrapper the thread pool's component design
// calls for (submit_task).
func (t Task) Job(stager *stage.Stager, c *compiler.Compiler, r *runner.Runner, report ReportFunc) pool.Unit {
	return func() []pool.Followup {
		jobs := t.Execute(stager, c, r, report)
		out := make([]pool.Followup, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, j)
		}
		return out
	}
}

// Execute runs the synchronous half of the pipeline (stage, compile,
// discover testcases) and returns the RunnerJobs to fan out. Any
// failure short-circuits to a terminal verdict reported via report and
// yields no RunnerJobs — mirroring the design's "a Task produces N
// RunnerJobs; a RunnerJob produces none" branching rule.
func (t Task) Execute(stager *stage.Stager, c *compiler.Compiler, r *runner.Runner, report ReportFunc) []runner.Job {
	staged, err := stager.Stage(t.Source, t.Lang)
	if err != nil {
		report(verdict.UnknownErrorf(err.Error()))
		return nil
	}

	artifact, err := c.Compile(staged)
	if err != nil {
		staged.Cleanup()
		if appErr.GetCode(err) == appErr.CompilationError {
			report(verdict.CompilationErrorf(appErr.GetError(err).Error()))
		} else {
			report(verdict.CompilationErrorf(err.Error()))
		}
		return nil
	}

	cases, err := testcase.Discover(t.TestcasesPath)
	if err != nil {
		staged.Cleanup()
		report(verdict.UnknownErrorf(err.Error()))
		return nil
	}

	// The staged source (and, for compiled languages, the compiled
	// artifact) must outlive every fanned-out RunnerJob: those run
	// asynchronously, after Execute has already returned, so cleanup
	// can only happen once the Aggregation finalizer fires.
	jobs, err := r.Execute(runner.Artifact{Path: artifact.Path}, t.Lang, cases, func(agg *aggregation.Aggregation) {
		report(finalVerdict(agg))
		staged.Cleanup()
		if artifact.Path != staged.Path {
			os.Remove(artifact.Path)
		}
	})
	if err != nil {
		staged.Cleanup()
		if artifact.Path != staged.Path {
			os.Remove(artifact.Path)
		}
		report(verdict.UnknownErrorf(err.Error()))
		return nil
	}

	return jobs
}

// finalVerdict collapses a completed Aggregation into the single
// external verdict, giving runtime-error observations priority over
// wrong-answer accounting.
func finalVerdict(agg *aggregation.Aggregation) verdict.Verdict {
	if agg.RuntimeError() {
		return verdict.RuntimeErrorf("non-empty stderr on at least one testcase")
	}
	wrong := agg.Wrong()
	if wrong == 0 {
		return verdict.Accept()
	}
	total := agg.Total
	return verdict.WrongAnswerf(int(total-wrong), int(total))
}
