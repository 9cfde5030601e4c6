package commands

import (
	"testing"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestExpandTemplate(t *testing.T) {
	data := &ResponseData{
		Item:   &game.Item{Handle: "lamp", Name: "Brass Lamp"},
		Player: game.Player{Location: "hallway", Inventory: []string{"key"}},
		Flags:  map[string]int{"looked_in_box": 1},
	}

	tests := map[string]struct {
		tmpl   string
		exp    string
		expErr string
	}{
		"plain text": {
			tmpl: "Nothing to see.",
			exp:  "Nothing to see.",
		},
		"item field": {
			tmpl: "The {{ .Item.Name | lower }} glows.",
			exp:  "The brass lamp glows.",
		},
		"flag condition": {
			tmpl: "{{ if .Flags.looked_in_box }}Seen.{{ else }}Unseen.{{ end }}",
			exp:  "Seen.",
		},
		"sprig function": {
			tmpl: "{{ .Item.Handle | upper }} in {{ .Player.Location | title }}",
			exp:  "LAMP in Hallway",
		},
		"parse error": {
			tmpl:   "{{ .Item.Name ",
			expErr: "parsing template",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ExpandTemplate(tt.tmpl, data)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "output", got, tt.exp)
		})
	}
}
