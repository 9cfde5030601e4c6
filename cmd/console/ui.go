package main

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-peril/internal/commands"
	"github.com/pixil98/go-peril/internal/display"
	"github.com/pixil98/go-peril/internal/lexicon"
	"github.com/pixil98/go-peril/internal/session"
	"github.com/rivo/tview"
)

type ui struct {
	ctx     context.Context
	session *session.Session

	app     *tview.Application
	output  *tview.TextView
	input   *tview.InputField
	recent  *tview.TextView
	buttons map[string]*tview.Button
}

func newUI(ctx context.Context, s *session.Session) *ui {
	u := &ui{
		ctx:     ctx,
		session: s,
		app:     tview.NewApplication(),
		buttons: map[string]*tview.Button{},
	}

	u.output = tview.NewTextView().
		SetDynamicColors(false).
		SetScrollable(true).
		SetWordWrap(true)
	u.output.SetBorder(true).SetTitle(" Peril ")

	u.recent = tview.NewTextView()
	u.recent.SetBorder(true).SetTitle(" Recent ")

	u.input = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	u.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := u.input.GetText()
		u.input.SetText("")
		u.submit(line)
	})

	moves := tview.NewFlex()
	for _, dir := range lexicon.Directions {
		b := tview.NewButton(display.Capitalize(dir)).SetSelectedFunc(func() {
			u.show(u.session.Move(u.ctx, dir))
		})
		u.buttons[dir] = b
		moves.AddItem(b, 0, 1, false).AddItem(nil, 1, 0, false)
	}

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.recent, 0, 1, false)

	body := tview.NewFlex().
		AddItem(u.output, 0, 3, false).
		AddItem(side, 30, 0, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, false).
		AddItem(moves, 1, 0, false).
		AddItem(u.input, 1, 0, true)

	u.app.SetRoot(root, true).EnableMouse(true)
	return u
}

func (u *ui) run(intro string) error {
	u.show(intro)
	return u.app.Run()
}

func (u *ui) submit(line string) {
	resp, quit := u.session.Submit(u.ctx, line)
	if quit {
		u.app.Stop()
		return
	}
	if strings.TrimSpace(line) != "" {
		u.echo(line)
	}
	u.show(resp)
}

func (u *ui) echo(line string) {
	_, _ = u.output.Write([]byte("> " + line + "\n"))
}

func (u *ui) show(resp string) {
	if resp != "" {
		_, _ = u.output.Write([]byte(display.Capitalize(resp) + "\n\n"))
		u.output.ScrollToEnd()
	}
	u.refresh()
}

// refresh updates the movement buttons and the recent command list.
func (u *ui) refresh() {
	for dir, open := range exitStates(u.session) {
		b := u.buttons[dir]
		if open {
			b.SetLabelColor(tcell.ColorWhite)
		} else {
			b.SetLabelColor(tcell.ColorGray)
		}
	}
	u.recent.SetText(strings.Join(u.session.Recent(), "\n"))
}

// exitStates reports, per direction, whether the player can go that way.
func exitStates(s *session.Session) map[string]bool {
	states := make(map[string]bool, len(lexicon.Directions))
	for _, dir := range lexicon.Directions {
		states[dir] = commands.CanMove(s.World(), dir)
	}
	return states
}
