// Package recipe holds the command templates that drive compilation and
// execution for each supported language.
package recipe

import (
	"strings"

	"github.com/google/shlex"

	appErr "judgecore/pkg/errors"
)

// TokenKind identifies whether a recipe token is literal text or a
// placeholder to be resolved against a staged source.
type TokenKind int

const (
	Literal TokenKind = iota
	Source
	Target
)

// Token is one element of a command template.
type Token struct {
	Kind    TokenKind
	Literal string // only meaningful when Kind == Literal
}

// Recipe is an ordered command template: argv[0] is always Recipe[0].
type Recipe []Token

// Resolve substitutes $source/$target placeholders with concrete paths,
// returning the command as a plain argv slice.
func (r Recipe) Resolve(sourcePath string) []string {
	targetPath := sourcePath + ".exe"
	out := make([]string, 0, len(r))
	for _, tok := range r {
		switch tok.Kind {
		case Source:
			out = append(out, sourcePath)
		case Target:
			out = append(out, targetPath)
		default:
			out = append(out, tok.Literal)
		}
	}
	return out
}

// parseTemplate tokenizes a recipe command string. Tokens are split
// shell-style (so quoted literal arguments survive), and any token
// beginning with '$' is parsed as a placeholder; unrecognized
// placeholders pass through unchanged as literals.
func parseTemplate(cmd string) (Recipe, error) {
	fields, err := shlex.Split(cmd)
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.ValidationFailed, "parse recipe template: %v", err)
	}
	recipe := make(Recipe, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, "$") {
			switch f[1:] {
			case "source":
				recipe = append(recipe, Token{Kind: Source})
				continue
			case "target":
				recipe = append(recipe, Token{Kind: Target})
				continue
			}
		}
		recipe = append(recipe, Token{Kind: Literal, Literal: f})
	}
	return recipe, nil
}
