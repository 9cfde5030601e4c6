package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-peril/internal/game"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// ResponseData is what item responses and help text can reference.
type ResponseData struct {
	Item   *game.Item
	Player game.Player
	Flags  map[string]int
	Verbs  []string
}

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	// Quick check: if no template markers, return as-is
	if !strings.Contains(tmplStr, "{{") {
		return tmplStr, nil
	}

	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// render expands an item's canned text. A broken template is logged and
// shown verbatim.
func render(ctx context.Context, text string, it *game.Item, w *game.WorldState) string {
	out, err := ExpandTemplate(text, &ResponseData{Item: it, Player: w.Player, Flags: w.Flags})
	if err != nil {
		slog.WarnContext(ctx, "expanding response", "item", it.Handle, "error", err)
		return text
	}
	return out
}

// respond returns the item's rendered response for verb, or fallback.
func respond(ctx context.Context, w *game.WorldState, it *game.Item, verb string, fallback string) string {
	if text, ok := it.Response(verb); ok {
		return render(ctx, text, it, w)
	}
	return fallback
}
