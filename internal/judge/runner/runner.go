// Package runner resolves the execute recipe for a compiled artifact
// and expands a testcase list into independently-dispatchable jobs
// that share one aggregation record.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"judgecore/internal/judge/aggregation"
	"judgecore/internal/judge/comparator"
	"judgecore/internal/judge/recipe"
	"judgecore/internal/judge/testcase"
	appErr "judgecore/pkg/errors"
	"judgecore/pkg/utils/logger"
)

// Artifact is the minimal shape the Compiler hands the Runner; defined
// here (rather than imported from the compiler package) to keep Runner
// decoupled from compiler internals.
type Artifact struct {
	Path string
}

// Job is one testcase's worth of deferred work: a single exec against
// the resolved command, reporting into the shared Aggregation.
type Job struct {
	Testcase testcase.Testcase
	Agg      *aggregation.Aggregation
	Argv     []string
}

// Runner expands a compiled artifact plus its testcases into a set of
// RunnerJobs sharing one Aggregation.
type Runner struct {
	registry *recipe.Registry
}

// New creates a Runner backed by registry.
func New(registry *recipe.Registry) *Runner {
	return &Runner{registry: registry}
}

// Execute resolves the execute recipe for lang and builds one Job per
// testcase. finalizer is invoked exactly once, by whichever Job's
// completion brings completed to total (or immediately, if testcases
// is empty). Both $source and $target resolve to artifact.Path: the
// compiled binary for compiled languages, the staged source otherwise.
func (r *Runner) Execute(artifact Artifact, lang string, testcases []testcase.Testcase, finalizer aggregation.Finalizer) ([]Job, error) {
	tpl, err := r.registry.ExecuteRecipe(lang)
	if err != nil {
		return nil, err
	}

	argv := make([]string, 0, len(tpl))
	for _, tok := range tpl {
		if tok.Kind == recipe.Literal {
			argv = append(argv, tok.Literal)
		} else {
			argv = append(argv, artifact.Path)
		}
	}
	if len(argv) == 0 {
		return nil, appErr.New(appErr.RuntimeError).WithMessage("execute command is empty")
	}

	agg := aggregation.New(len(testcases), argv, artifact.Path, finalizer)

	jobs := make([]Job, 0, len(testcases))
	for _, tc := range testcases {
		jobs = append(jobs, Job{Testcase: tc, Agg: agg, Argv: argv})
	}
	return jobs, nil
}

// ExecuteOnce runs this job's testcase: fork the captured argv with
// stdin/stdout/stderr redirected to file-backed descriptors, compare
// the captured stdout against the expected output, and report the
// outcome into the shared Aggregation.
func (j Job) ExecuteOnce() error {
	outName := j.Testcase.Output.Name
	stdoutPath := fmt.Sprintf("%s-%s-stdout", j.Agg.BinPath, outName)
	stderrPath := fmt.Sprintf("%s-%s-stderr", j.Agg.BinPath, outName)
	defer os.Remove(stdoutPath)
	defer os.Remove(stderrPath)

	inFile, err := os.Open(j.Testcase.Input.Path)
	if err != nil {
		j.Agg.RecordTestcase(true, false, 1, 1)
		return appErr.Wrapf(err, appErr.RuntimeError, "open testcase input: %v", err)
	}
	defer inFile.Close()

	outFile, err := os.Create(stdoutPath)
	if err != nil {
		j.Agg.RecordTestcase(true, false, 1, 1)
		return appErr.Wrapf(err, appErr.RuntimeError, "create stdout capture: %v", err)
	}
	defer outFile.Close()

	errFile, err := os.Create(stderrPath)
	if err != nil {
		j.Agg.RecordTestcase(true, false, 1, 1)
		return appErr.Wrapf(err, appErr.RuntimeError, "create stderr capture: %v", err)
	}
	defer errFile.Close()

	cmd := exec.Command(j.Argv[0], j.Argv[1:]...)
	cmd.Stdin = inFile
	cmd.Stdout = outFile
	cmd.Stderr = errFile
	_ = cmd.Run() // exit status is not consulted; only captured stderr and output matter

	timeMs, memKB := measureUsage(cmd.ProcessState)

	stderrInfo, statErr := os.Stat(stderrPath)
	runtimeErr := statErr == nil && stderrInfo.Size() > 0

	cmpRes, cmpErr := comparator.Compare(j.Testcase.Output.Path, stdoutPath)
	wrong := cmpErr != nil || !cmpRes.Consistent
	if cmpErr != nil {
		logger.Warn(context.Background(), "compare testcase output failed", zap.String("testcase", outName), zap.Error(cmpErr))
	}

	j.Agg.RecordTestcase(wrong, runtimeErr, timeMs, memKB)
	return cmpErr
}
