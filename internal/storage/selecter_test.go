package storage

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestSaveSelector(t *testing.T) {
	recs := []*SaveRecord{
		{Slot: "slot1", Location: "hallway", SavedAt: time.Now()},
		{Slot: "autosave", Location: "apartment_living_room", SavedAt: time.Now()},
	}
	s := NewSaveSelector(recs)

	testutil.AssertEqual(t, "len", s.Len(), 2)
	testutil.AssertEqual(t, "first", s.Select(1), "autosave")
	testutil.AssertEqual(t, "second", s.Select(2), "slot1")
	testutil.AssertEqual(t, "out of range", s.Select(3), "")
	testutil.AssertEqual(t, "zero", s.Select(0), "")
	testutil.AssertEqual(t, "line prefix", strings.HasPrefix(s.Lines()[0], " 1. autosave  apartment_living_room"), true)
}

func TestSaveSelector_Prompt(t *testing.T) {
	recs := []*SaveRecord{
		{Slot: "slot1", Location: "hallway"},
		{Slot: "slot2", Location: "roof"},
	}

	tests := map[string]struct {
		input  string
		exp    string
		expErr string
	}{
		"valid choice":    {input: "2\n", exp: "slot2"},
		"retry after bad": {input: "x\n9\n1\n", exp: "slot1"},
		"gives up":        {input: "x\nx\nx\n", expErr: "too many tries"},
		"input ends":      {input: "", expErr: "EOF"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := NewSaveSelector(recs).Prompt(bufio.NewScanner(strings.NewReader(tt.input)), &out, "Load which game?")
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "slot", got, tt.exp)
			testutil.AssertEqual(t, "listed", strings.Contains(out.String(), " 2. slot2"), true)
		})
	}
}
