package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pixil98/go-peril/internal"
)

// SaveSelector presents a numbered list of save slots and reads a choice.
type SaveSelector struct {
	slots  []string
	output []string
}

// NewSaveSelector lists recs in slot order.
func NewSaveSelector(recs []*SaveRecord) *SaveSelector {
	s := &SaveSelector{}

	sorted := append([]*SaveRecord(nil), recs...)
	sortRecords(sorted)

	// Calculate column widths
	slotWidth, locWidth := 4, 8
	for _, r := range sorted {
		slotWidth = max(slotWidth, len(r.Slot))
		locWidth = max(locWidth, len(r.Location))
	}

	for i, r := range sorted {
		s.slots = append(s.slots, r.Slot)
		s.output = append(s.output, fmt.Sprintf("%2d. %-*s  %-*s  %s",
			i+1, slotWidth, r.Slot, locWidth, r.Location, r.SavedAt.Local().Format(time.DateTime)))
	}

	return s
}

// Len is the number of choices.
func (s *SaveSelector) Len() int {
	return len(s.slots)
}

// Lines returns the rendered listing.
func (s *SaveSelector) Lines() []string {
	return s.output
}

// Prompt prints the listing and returns the chosen slot.
func (s *SaveSelector) Prompt(in *bufio.Scanner, out io.Writer, prompt string) (string, error) {
	_, err := fmt.Fprintf(out, "%s\n", prompt)
	if err != nil {
		return "", err
	}

	for _, str := range s.output {
		_, err = fmt.Fprintf(out, "%s\n", str)
		if err != nil {
			return "", err
		}
	}

	selection, err := internal.Prompt(in, out, "Make your selection: ", internal.WithMaxTries(3), internal.WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || s.Select(i) == "" {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return "", err
	}

	return s.Select(i), nil
}

// Select maps a 1-based choice to a slot, or "" when out of range.
func (s *SaveSelector) Select(i int) string {
	if i < 1 || i > len(s.slots) {
		return ""
	}
	return s.slots[i-1]
}
