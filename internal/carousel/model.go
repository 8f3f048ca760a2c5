package carousel

import (
	"encoding/json"
	"fmt"
)

// MaxActions is the number of button slots a card offers.
const MaxActions = 2

// ActionKind selects the wire shape of a card button.
type ActionKind string

const (
	ActionURL        ActionKind = "URL"
	ActionQuickReply ActionKind = "QUICK_REPLY"
)

// normalize maps anything that is not a quick reply to a link, matching the
// form where URL is the default selection.
func (k ActionKind) normalize() ActionKind {
	if k == ActionQuickReply {
		return ActionQuickReply
	}
	return ActionURL
}

// Action is one button on a card. Target holds the URL for ActionURL and the
// reply identifier for ActionQuickReply.
type Action struct {
	Kind   ActionKind
	Title  string
	Target string
}

type actionWire struct {
	Type  ActionKind `json:"type"`
	Title string     `json:"title"`
	URL   *string    `json:"url,omitempty"`
	ID    *string    `json:"id,omitempty"`
}

// MarshalJSON emits {type, title, url} or {type, title, id}, never both.
func (a Action) MarshalJSON() ([]byte, error) {
	target := a.Target
	w := actionWire{Type: a.Kind.normalize(), Title: a.Title}
	if w.Type == ActionQuickReply {
		w.ID = &target
	} else {
		w.URL = &target
	}
	return MarshalUnescaped(w)
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var w actionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind := resolveKind(w.URL != nil, w.ID != nil, string(w.Type))
	a.Kind = kind
	a.Title = w.Title
	if kind == ActionQuickReply {
		a.Target = deref(w.ID)
	} else {
		a.Target = deref(w.URL)
	}
	return nil
}

// resolveKind recovers the kind of an imported action from which target
// field is present. The type field only breaks ties.
func resolveKind(hasURL, hasID bool, typ string) ActionKind {
	switch {
	case hasURL && !hasID:
		return ActionURL
	case hasID && !hasURL:
		return ActionQuickReply
	default:
		return ActionKind(typ).normalize()
	}
}

// Card is one carousel slide. Media and Title are nil when empty.
type Card struct {
	Body    string   `json:"body"`
	Media   *string  `json:"media"`
	Title   *string  `json:"title"`
	Actions []Action `json:"actions"`
}

// Template is a built carousel snapshot. Variables is derived by the
// collector and lists placeholder names in first-seen order.
type Template struct {
	FriendlyName string   `json:"friendly"`
	Body         string   `json:"body"`
	Cards        []Card   `json:"cards"`
	Variables    []string `json:"variables"`
}

// ActionInput is the raw content of one button slot.
type ActionInput struct {
	Kind  ActionKind `json:"type" binding:"omitempty,oneof=URL QUICK_REPLY"`
	Title string     `json:"title"`
	Value string     `json:"value"`
}

// CardInput is the raw content of one card block.
type CardInput struct {
	Body    string        `json:"body"`
	Media   string        `json:"media"`
	Title   string        `json:"title"`
	Actions []ActionInput `json:"actions" binding:"max=2,dive"`
}

// TemplateInput is the raw form state a template is collected from.
type TemplateInput struct {
	FriendlyName string      `json:"friendlyName"`
	Body         string      `json:"body"`
	Cards        []CardInput `json:"cards" binding:"dive"`
}

// Input converts a snapshot back into form input, the way a saved template
// is loaded into the editor.
func (t Template) Input() TemplateInput {
	in := TemplateInput{
		FriendlyName: t.FriendlyName,
		Body:         t.Body,
		Cards:        make([]CardInput, 0, len(t.Cards)),
	}
	for _, c := range t.Cards {
		ci := CardInput{
			Body:    c.Body,
			Media:   deref(c.Media),
			Title:   deref(c.Title),
			Actions: make([]ActionInput, 0, len(c.Actions)),
		}
		for _, a := range c.Actions {
			ci.Actions = append(ci.Actions, ActionInput{Kind: a.Kind, Title: a.Title, Value: a.Target})
		}
		in.Cards = append(in.Cards, ci)
	}
	return in
}

// CardLabel is the display label of the card at position i.
func CardLabel(i int) string {
	return fmt.Sprintf("Card #%d", i+1)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
