package corpus

import (
	"embed"
	"io/fs"
)

// Starter corpus shipped inside the binary so `tmplhub sync --builtin` and
// `tmplhub lint --builtin` work without a checkout. Only markdown is
// embedded.
//
//go:embed templates/*.md templates/*/*.md
var builtinFS embed.FS

// Builtin returns the embedded starter corpus rooted at its template
// directory, laid out exactly like an on-disk corpus.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		// The subtree is compiled in; failure here means a broken build.
		panic(err)
	}
	return sub
}
