package source

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// VerifyError lists the problems esbuild found in rewritten output.
type VerifyError struct {
	File     string
	Messages []string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("esbuild rejected %s:\n%s", e.File, strings.Join(e.Messages, "\n"))
}

// Verify checks that code is a well-formed module of the given language by
// running it through esbuild's transform API. name is only used in messages.
func Verify(name, code string, lang Lang) error {
	result := api.Transform(code, api.TransformOptions{
		Loader:     loaderFor(lang),
		Format:     api.FormatESModule,
		Sourcefile: name,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	verr := &VerifyError{File: name}
	for _, msg := range result.Errors {
		if msg.Location == nil {
			verr.Messages = append(verr.Messages, msg.Text)
			continue
		}
		verr.Messages = append(verr.Messages, fmt.Sprintf("%s:%d:%d: %s",
			msg.Location.File,
			msg.Location.Line,
			msg.Location.Column,
			msg.Text))
	}
	return verr
}

func loaderFor(lang Lang) api.Loader {
	switch lang {
	case TypeScript:
		return api.LoaderTS
	case TSX:
		return api.LoaderTSX
	default:
		// JSX in .js files is common in React code bases.
		return api.LoaderJSX
	}
}
