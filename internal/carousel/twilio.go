package carousel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

const (
	// TwilioSchemaKey is the content type key of a carousel under "types".
	TwilioSchemaKey = "twilio/carousel"
	TwilioLanguage  = "pt_BR"
)

// TwilioDocument is the Twilio Content API template (Format A).
type TwilioDocument struct {
	FriendlyName string        `json:"friendlyName,omitempty"`
	Language     string        `json:"language"`
	Types        TwilioTypes   `json:"types"`
	Variables    VariableIndex `json:"variables"`
}

type TwilioTypes struct {
	Carousel TwilioCarousel `json:"twilio/carousel"`
}

type TwilioCarousel struct {
	Body  string       `json:"body"`
	Cards []TwilioCard `json:"cards,omitempty"`
}

type TwilioCard struct {
	Media   *string  `json:"media"`
	Body    string   `json:"body"`
	Title   *string  `json:"title"`
	Actions []Action `json:"actions"`
}

// VariableIndex lists variable names by position. It is encoded as an object
// keyed by the 1-based index, in index order.
type VariableIndex []string

func (v VariableIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := MarshalUnescaped(name)
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(i + 1)))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *VariableIndex) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	keys := make([]int, 0, len(raw))
	for k := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("variable index %q: %w", k, err)
		}
		keys = append(keys, idx)
	}
	sort.Ints(keys)
	out := make(VariableIndex, 0, len(keys))
	for _, k := range keys {
		out = append(out, raw[strconv.Itoa(k)])
	}
	*v = out
	return nil
}

// Twilio serializes t as a Format A document. With numbered set every
// placeholder is rewritten to its position; the variables index is emitted
// either way.
func Twilio(t Template, numbered bool) TwilioDocument {
	n := Renumber(t)
	swap := func(s string) string {
		if numbered {
			return ApplyNumbering(s, n)
		}
		return s
	}
	swapPtr := func(s *string) *string {
		if numbered {
			return applyNumberingPtr(s, n)
		}
		return s
	}

	cards := make([]TwilioCard, 0, len(t.Cards))
	for _, c := range t.Cards {
		out := TwilioCard{
			Media:   swapPtr(c.Media),
			Body:    swap(c.Body),
			Title:   swapPtr(c.Title),
			Actions: make([]Action, 0, len(c.Actions)),
		}
		for _, a := range c.Actions {
			out.Actions = append(out.Actions, Action{
				Kind:   a.Kind,
				Title:  swap(a.Title),
				Target: swap(a.Target),
			})
		}
		cards = append(cards, out)
	}

	doc := TwilioDocument{
		FriendlyName: t.FriendlyName,
		Language:     TwilioLanguage,
		Types:        TwilioTypes{Carousel: TwilioCarousel{Body: swap(t.Body)}},
		Variables:    append(VariableIndex{}, t.Variables...),
	}
	if len(cards) > 0 {
		doc.Types.Carousel.Cards = cards
	}
	return doc
}

// ParseTwilio rebuilds a Template from a Format A document. Variables are
// recomputed from the text, so a numbered document yields numeric names.
func ParseTwilio(data []byte) (Template, error) {
	in, err := ParseTwilioInput(data)
	if err != nil {
		return Template{}, err
	}
	return Collect(in), nil
}

// ParseTwilioInput reads a Format A document into form input.
func ParseTwilioInput(data []byte) (TemplateInput, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		if json.Valid(data) {
			return TemplateInput{}, ErrMissingSchemaKey
		}
		return TemplateInput{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	types, _ := doc["types"].(map[string]interface{})
	car, ok := types[TwilioSchemaKey].(map[string]interface{})
	if !ok {
		return TemplateInput{}, ErrMissingSchemaKey
	}

	in := TemplateInput{
		FriendlyName: stringField(doc, "friendlyName"),
		Body:         stringField(car, "body"),
	}

	rawCards, _ := car["cards"].([]interface{})
	in.Cards = make([]CardInput, 0, len(rawCards))
	for _, item := range rawCards {
		cd, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		card := CardInput{
			Body:  stringField(cd, "body"),
			Media: stringField(cd, "media"),
			Title: stringField(cd, "title"),
		}
		rawActions, _ := cd["actions"].([]interface{})
		for _, ra := range rawActions {
			act, ok := ra.(map[string]interface{})
			if !ok {
				continue
			}
			_, hasURL := act["url"]
			_, hasID := act["id"]
			kind := resolveKind(hasURL, hasID, stringField(act, "type"))
			value := stringField(act, "url")
			if kind == ActionQuickReply {
				value = stringField(act, "id")
			}
			card.Actions = append(card.Actions, ActionInput{
				Kind:  kind,
				Title: stringField(act, "title"),
				Value: value,
			})
		}
		in.Cards = append(in.Cards, card)
	}

	return in, nil
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
