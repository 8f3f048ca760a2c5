package carousel

import "strings"

// Collect builds a Template snapshot from raw form input. Cards whose body is
// blank are dropped and contribute no variables. Only the first MaxActions
// action inputs of a card are read; empty actions are kept.
func Collect(in TemplateInput) Template {
	t := Template{
		FriendlyName: strings.TrimSpace(in.FriendlyName),
		Body:         strings.TrimSpace(in.Body),
		Cards:        make([]Card, 0, len(in.Cards)),
	}

	vars := NewRegistry()
	vars.Collect(t.Body)

	for _, ci := range in.Cards {
		body := strings.TrimSpace(ci.Body)
		if body == "" {
			continue
		}

		card := Card{
			Body:    body,
			Media:   nullable(strings.TrimSpace(ci.Media)),
			Title:   nullable(strings.TrimSpace(ci.Title)),
			Actions: make([]Action, 0, MaxActions),
		}

		inputs := ci.Actions
		if len(inputs) > MaxActions {
			inputs = inputs[:MaxActions]
		}
		for _, ai := range inputs {
			card.Actions = append(card.Actions, Action{
				Kind:   ai.Kind.normalize(),
				Title:  strings.TrimSpace(ai.Title),
				Target: strings.TrimSpace(ai.Value),
			})
		}

		vars.Collect(deref(card.Media), card.Body, deref(card.Title))
		for _, a := range card.Actions {
			vars.Collect(a.Target, a.Title)
		}

		t.Cards = append(t.Cards, card)
	}

	t.Variables = vars.Names()
	return t
}

// Rebuild recomputes a snapshot from its own fields. Stored snapshots go
// through it on load so Variables never comes from storage.
func Rebuild(t Template) Template {
	return Collect(t.Input())
}
