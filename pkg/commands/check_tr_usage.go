package commands

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type trUsage struct {
	Key  string
	File string
	Line int
}

// MissingKey is a message id used in source that a locale does not define.
type MissingKey struct {
	Locale string
	Key    string
	File   string
	Line   int
}

// CheckTrUsage scans the Go sources under root for literal message ids and
// reports every id missing from one of the given languages in bundle.
func CheckTrUsage(logger *logrus.Logger, bundle *i18n.Bundle, root string, languages []string) ([]MissingKey, error) {
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	usages, err := collectTrUsages(root)
	if err != nil {
		return nil, err
	}
	if len(usages) == 0 {
		return nil, fmt.Errorf("no translation usages found under %s", root)
	}

	messages := bundle.Messages()

	allowed := make(map[string]language.Tag, len(languages))
	for _, code := range languages {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", code, err)
		}
		if messages[tag] == nil {
			return nil, fmt.Errorf("language %q (%s) not found in bundle", code, tag)
		}
		allowed[code] = tag
	}

	var missing []MissingKey
	seen := make(map[string]bool)
	for _, u := range usages {
		// First occurrence is the one reported.
		if seen[u.Key] {
			continue
		}
		seen[u.Key] = true

		for locale, tag := range allowed {
			if messages[tag][u.Key] == nil {
				missing = append(missing, MissingKey{Locale: locale, Key: u.Key, File: u.File, Line: u.Line})
			}
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Key != missing[j].Key {
			return missing[i].Key < missing[j].Key
		}
		return missing[i].Locale < missing[j].Locale
	})

	for _, m := range missing {
		logger.WithFields(logrus.Fields{
			"locale": m.Locale,
			"key":    m.Key,
			"source": fmt.Sprintf("%s:%d", m.File, m.Line),
		}).Error("Translation key missing")
	}
	if len(missing) == 0 {
		logger.WithFields(logrus.Fields{
			"locales":     strings.Join(languages, ", "),
			"unique_keys": len(seen),
		}).Info("All translation usages are present")
	}
	return missing, nil
}

func collectTrUsages(root string) ([]trUsage, error) {
	var usages []trUsage

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_") || d.Name() == "vendor") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(rel, ".go") || strings.HasSuffix(rel, "_test.go") {
			return nil
		}

		fileUsages, err := collectTrUsagesFromGoFile(path, rel)
		if err != nil {
			return err
		}
		usages = append(usages, fileUsages...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return usages, nil
}

// collectTrUsagesFromGoFile picks up intl.MustT(ctx, "id") calls and the
// page writers' h.t("id") calls.
func collectTrUsagesFromGoFile(absPath, relPath string) ([]trUsage, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, absPath, nil, 0)
	if err != nil {
		return nil, err
	}

	var usages []trUsage
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		selector, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		argIdx := -1
		switch selector.Sel.Name {
		case "t", "T":
			argIdx = 0
		case "MustT":
			argIdx = 1
		}
		if argIdx < 0 || len(call.Args) <= argIdx {
			return true
		}
		if key, ok := stringLiteral(call.Args[argIdx]); ok && key != "" {
			pos := fset.Position(call.Args[argIdx].Pos())
			usages = append(usages, trUsage{Key: key, File: relPath, Line: pos.Line})
		}
		return true
	})

	return usages, nil
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	unquoted, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return unquoted, true
}
