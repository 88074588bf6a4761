package recipe

import appErr "judgecore/pkg/errors"

// Registry is the read-mostly mapping from language tag to command
// template, built once at startup and never mutated afterward. It holds
// two independent tables: one for compile commands (a language may be
// absent here, meaning "interpreted, skip compilation") and one for
// execute commands (absence here is a hard error).
type Registry struct {
	languages map[string]struct{}
	compile   map[string]Recipe
	execute   map[string]Recipe
}

// Source is the raw config shape accepted by NewRegistry: the
// enumerated `languages` list plus the `compile`/`execute` tables of
// template strings, matching the on-disk TOML document.
type Source struct {
	Languages []string
	Compile   map[string]string
	Execute   map[string]string
}

// NewRegistry parses the compile/execute template tables against the
// declared language list. Entries whose key is not in Languages are
// ignored, matching the config's enumerated-options policy.
func NewRegistry(src Source) (*Registry, error) {
	reg := &Registry{
		languages: make(map[string]struct{}, len(src.Languages)),
		compile:   make(map[string]Recipe),
		execute:   make(map[string]Recipe),
	}
	for _, lang := range src.Languages {
		reg.languages[lang] = struct{}{}
	}

	for lang, tpl := range src.Compile {
		if _, known := reg.languages[lang]; !known {
			continue
		}
		parsed, err := parseTemplate(tpl)
		if err != nil {
			return nil, appErr.Wrapf(err, appErr.ValidationFailed, "compile recipe for %q: %v", lang, err)
		}
		reg.compile[lang] = parsed
	}

	for lang, tpl := range src.Execute {
		if _, known := reg.languages[lang]; !known {
			continue
		}
		parsed, err := parseTemplate(tpl)
		if err != nil {
			return nil, appErr.Wrapf(err, appErr.ValidationFailed, "execute recipe for %q: %v", lang, err)
		}
		reg.execute[lang] = parsed
	}

	return reg, nil
}

// CompileRecipe returns the compile template for lang. ok is false only
// when the language itself isn't registered; a registered-but-absent
// compile template (interpreted language) returns a nil Recipe with
// ok=true.
func (r *Registry) CompileRecipe(lang string) (recipe Recipe, ok bool) {
	if _, known := r.languages[lang]; !known {
		return nil, false
	}
	return r.compile[lang], true
}

// ExecuteRecipe returns the execute template for lang, or an error if
// none is registered — the execute side has no "skip" interpretation.
func (r *Registry) ExecuteRecipe(lang string) (Recipe, error) {
	if _, known := r.languages[lang]; !known {
		return nil, appErr.Newf(appErr.RecipeNotFound, "no execute recipe registered for language %q", lang)
	}
	recipe, ok := r.execute[lang]
	if !ok {
		return nil, appErr.Newf(appErr.RecipeNotFound, "no execute recipe registered for language %q", lang)
	}
	return recipe, nil
}

// Languages returns the registered language tags.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.languages))
	for lang := range r.languages {
		out = append(out, lang)
	}
	return out
}
