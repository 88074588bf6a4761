// Package compiler resolves a compile recipe against a staged source
// and forks a child process to produce a compiled artifact.
package compiler

import (
	"os"
	"os/exec"

	"judgecore/internal/judge/recipe"
	"judgecore/internal/judge/stage"
	appErr "judgecore/pkg/errors"
)

// Artifact is the result of a successful compile step: the path the
// runner should execute. For interpreted languages it equals the
// staged source path.
type Artifact struct {
	Path string
}

// Compiler turns a staged source into a runnable artifact using the
// compile recipe registered for its language.
type Compiler struct {
	registry *recipe.Registry
}

// New creates a Compiler backed by registry.
func New(registry *recipe.Registry) *Compiler {
	return &Compiler{registry: registry}
}

// Compile resolves and runs the compile recipe for staged.Lang. A
// registered-but-absent compile recipe (interpreted language) is not
// an error: the staged source path is returned unchanged.
func (c *Compiler) Compile(staged stage.Source) (Artifact, error) {
	tpl, ok := c.registry.CompileRecipe(staged.Lang)
	if !ok {
		return Artifact{}, appErr.Newf(appErr.LanguageNotSupported, "language %q is not registered", staged.Lang)
	}
	if tpl == nil {
		return Artifact{Path: staged.Path}, nil
	}

	target := staged.Path + ".exe"
	logPath := target + ".log"

	argv := tpl.Resolve(staged.Path)
	if len(argv) == 0 {
		return Artifact{}, appErr.New(appErr.CompilationError).WithMessage("compile command is empty")
	}

	logFile, err := os.Create(logPath)
	if err != nil {
		return Artifact{}, appErr.Wrapf(err, appErr.CompilationError, "open compile log: %v", err)
	}
	defer logFile.Close()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stderr = logFile
	if err := cmd.Run(); err != nil {
		if _, isExit := err.(*exec.ExitError); !isExit {
			return Artifact{}, appErr.Wrapf(err, appErr.CompilationError, "start compiler: %v", err)
		}
	}

	logContents, err := os.ReadFile(logPath)
	if err != nil {
		return Artifact{}, appErr.Wrapf(err, appErr.CompilationError, "read compile log: %v", err)
	}
	defer os.Remove(logPath)

	if len(logContents) > 0 {
		return Artifact{}, appErr.New(appErr.CompilationError).WithMessage(string(logContents))
	}

	return Artifact{Path: target}, nil
}
