package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/lexicon"
)

// CommandContext is what a verb works with: a private copy of the world and
// the instruction being executed.
type CommandContext struct {
	World       *game.WorldState
	Instruction Instruction
}

// VerbFunc executes one instruction. It may mutate cmdCtx.World freely; the
// changes are discarded if it returns an error.
type VerbFunc func(ctx context.Context, cmdCtx *CommandContext) (string, error)

// Handler is the command engine. It holds no world state of its own; every
// call takes a world and returns the next one.
type Handler struct {
	verbs    map[string]VerbFunc
	resolver *Resolver

	implicitContainerTake bool
	helpText              string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSimilarity replaces the fuzzy similarity function and threshold.
func WithSimilarity(sim Similarity, threshold float64) HandlerOption {
	return func(h *Handler) {
		h.resolver = NewResolver(sim, threshold)
	}
}

// WithImplicitContainerTake controls whether "take X" may reach into an open
// container the player has looked in. When off, "take X from Y" is required.
func WithImplicitContainerTake(allow bool) HandlerOption {
	return func(h *Handler) {
		h.implicitContainerTake = allow
	}
}

// WithHelpText replaces the help response. It may be a template over
// ResponseData.
func WithHelpText(text string) HandlerOption {
	return func(h *Handler) {
		h.helpText = text
	}
}

// NewHandler creates a Handler with every built-in verb registered.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		verbs:                 make(map[string]VerbFunc),
		resolver:              NewResolver(nil, DefaultFuzzyThreshold),
		implicitContainerTake: true,
		helpText:              defaultHelpText,
	}
	for _, opt := range opts {
		opt(h)
	}

	// Register built-in verbs
	builtins := map[string]VerbFunc{
		lexicon.VerbLook:      h.look,
		verbLookIn:            h.lookIn,
		lexicon.VerbExamine:   h.examine,
		lexicon.VerbTake:      h.take,
		lexicon.VerbDrop:      h.drop,
		lexicon.VerbPut:       h.put,
		lexicon.VerbOpen:      h.open,
		lexicon.VerbClose:     h.close,
		lexicon.VerbUse:       h.use,
		lexicon.VerbRead:      h.read,
		lexicon.VerbTalk:      h.talk,
		lexicon.VerbInventory: h.inventory,
		lexicon.VerbHelp:      h.help,
		lexicon.VerbGo:        h.move,
	}
	for name, fn := range builtins {
		h.verbs[name] = fn
	}
	return h
}

// RegisterVerb adds a verb. The name must be canonical (already resolved
// through the lexicon).
func (h *Handler) RegisterVerb(name string, fn VerbFunc) error {
	if name == "" {
		return fmt.Errorf("verb name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("verb func cannot be nil")
	}
	if _, exists := h.verbs[name]; exists {
		return fmt.Errorf("verb %q already registered", name)
	}
	h.verbs[name] = fn
	return nil
}

// Verbs returns the registered verb names in sorted order.
func (h *Handler) Verbs() []string {
	names := make([]string, 0, len(h.verbs))
	for name := range h.verbs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolver returns the item resolver in use.
func (h *Handler) Resolver() *Resolver {
	return h.resolver
}

// Evaluate runs free text against world. It never fails: every input yields
// a response and a consistent world, which is world itself when nothing
// changed. Blank input returns world and an empty response.
func (h *Handler) Evaluate(ctx context.Context, world *game.WorldState, raw string) (*game.WorldState, string) {
	if strings.TrimSpace(raw) == "" {
		return world, ""
	}

	if world.Mode.Armed() {
		return h.modal(ctx, world, raw)
	}

	var responses []string
	for _, in := range Parse(raw) {
		var resp string
		world, resp = h.apply(ctx, world, in)
		responses = append(responses, resp)
	}
	return world, strings.Join(responses, "\n")
}

// Move runs a direction command, bypassing the parser.
func (h *Handler) Move(ctx context.Context, world *game.WorldState, direction string) (*game.WorldState, string) {
	return h.apply(ctx, world, Instruction{Verb: lexicon.VerbGo, Noun: direction})
}

// apply executes one instruction on a copy of world and keeps the copy only
// if the verb succeeded.
func (h *Handler) apply(ctx context.Context, world *game.WorldState, in Instruction) (*game.WorldState, string) {
	fn, ok := h.verbs[in.Verb]
	if !ok {
		slog.DebugContext(ctx, "unknown verb", "verb", in.Verb)
		return world, msgNotUnderstood
	}

	next := world.Clone()
	resp, err := fn(ctx, &CommandContext{World: next, Instruction: in})
	if err != nil {
		var ue *UserError
		if errors.As(err, &ue) {
			return world, ue.Message
		}
		slog.WarnContext(ctx, "executing command", "verb", in.Verb, "error", err)
		return world, msgInternal
	}

	return next, resp
}

// find resolves a noun phrase, failing with the standard not-seen message.
func (h *Handler) find(w *game.WorldState, verb, phrase string) (*game.Item, error) {
	if phrase == "" {
		return nil, errNoNoun(verb)
	}
	it := h.resolver.FindItem(phrase, w)
	if it == nil {
		slog.Debug("no item matched", "phrase", phrase)
		return nil, errNotSeen(phrase)
	}
	return it, nil
}

// findVisible resolves a noun phrase to an item the player can see.
func (h *Handler) findVisible(w *game.WorldState, verb, phrase string) (*game.Item, error) {
	it, err := h.find(w, verb, phrase)
	if err != nil {
		return nil, err
	}
	if !visible(w, it) {
		return nil, errNotSeen(phrase)
	}
	return it, nil
}
