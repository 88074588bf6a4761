// Package config loads the process and recipe configuration from a
// TOML document on disk.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"judgecore/internal/judge/recipe"
	appErr "judgecore/pkg/errors"
)

// Document is the on-disk shape of config.toml: the enumerated
// languages list plus the compile/execute template tables. Any other
// top-level key is ignored by go-toml's default decode behavior.
type Document struct {
	Languages []string          `toml:"languages"`
	Compile   map[string]string `toml:"compile"`
	Execute   map[string]string `toml:"execute"`

	Listen       string `toml:"listen"`
	StagingRoot  string `toml:"staging_root"`
	TestcaseRoot string `toml:"testcase_root"`
	Workers      int    `toml:"workers"`
	LogLevel     string `toml:"log_level"`
}

// Load reads and parses path, returning the recipe registry built from
// its languages/compile/execute sections and the decoded document for
// the caller to pull process-level fields from. A missing or
// malformed file is a fatal startup error.
func Load(path string) (*recipe.Registry, Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Document{}, appErr.Wrapf(err, appErr.InternalServerError, "read config %s: %v", path, err)
	}

	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, Document{}, appErr.Wrapf(err, appErr.InvalidFormat, "parse config %s: %v", path, err)
	}

	reg, err := recipe.NewRegistry(recipe.Source{
		Languages: doc.Languages,
		Compile:   doc.Compile,
		Execute:   doc.Execute,
	})
	if err != nil {
		return nil, Document{}, err
	}

	return reg, doc, nil
}

// Defaults fills in zero-valued process fields with the service's
// conventional defaults, mirroring the teacher's flag-plus-config-file
// pattern (explicit flags and file values win; these are the fallback).
func (d Document) Defaults() Document {
	if d.Listen == "" {
		d.Listen = ":8080"
	}
	if d.StagingRoot == "" {
		d.StagingRoot = "assets/src"
	}
	if d.TestcaseRoot == "" {
		d.TestcaseRoot = "assets"
	}
	if d.Workers <= 0 {
		d.Workers = 0 // 0 tells pool.New to default to GOMAXPROCS
	}
	if d.LogLevel == "" {
		d.LogLevel = "info"
	}
	return d
}
