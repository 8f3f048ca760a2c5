package carousel

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoTemplate() Template {
	return Collect(TemplateInput{
		FriendlyName: "Promo",
		Body:         "Hi {{name}}",
		Cards: []CardInput{{
			Body:    "Card1",
			Media:   "http://x/img.png",
			Actions: []ActionInput{{Kind: ActionURL, Title: "Go", Value: "http://x"}},
		}},
	})
}

func decode(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestTwilioPromoExample(t *testing.T) {
	doc := decode(t, Twilio(promoTemplate(), false))

	assert.Equal(t, "Promo", doc["friendlyName"])
	assert.Equal(t, "pt_BR", doc["language"])
	assert.Equal(t, map[string]interface{}{"1": "name"}, doc["variables"])

	car := doc["types"].(map[string]interface{})[TwilioSchemaKey].(map[string]interface{})
	assert.Equal(t, "Hi {{name}}", car["body"])

	card := car["cards"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "http://x/img.png", card["media"])
	assert.Nil(t, card["title"])
	assert.Contains(t, card, "title")
	assert.Equal(t, map[string]interface{}{"type": "URL", "title": "Go", "url": "http://x"},
		card["actions"].([]interface{})[0])
}

func TestTwilioOmitsEmptyFields(t *testing.T) {
	doc := decode(t, Twilio(Collect(TemplateInput{Body: "plain"}), false))

	assert.NotContains(t, doc, "friendlyName")
	car := doc["types"].(map[string]interface{})[TwilioSchemaKey].(map[string]interface{})
	assert.NotContains(t, car, "cards")
	assert.Equal(t, map[string]interface{}{}, doc["variables"])
}

func TestTwilioNumbered(t *testing.T) {
	tpl := Collect(TemplateInput{
		Body: "Hi {{name}}, order {{order}}",
		Cards: []CardInput{{
			Media: "http://cdn/{{order}}.png",
			Body:  "{{name}} card",
			Title: "{{promo}}",
			Actions: []ActionInput{
				{Kind: ActionURL, Title: "See {{order}}", Value: "http://x/{{order}}"},
				{Kind: ActionQuickReply, Title: "Stop", Value: "stop-{{name}}"},
			},
		}},
	})

	doc := Twilio(tpl, true)
	car := doc.Types.Carousel
	assert.Equal(t, "Hi {{1}}, order {{2}}", car.Body)
	require.Len(t, car.Cards, 1)
	card := car.Cards[0]
	assert.Equal(t, "http://cdn/{{2}}.png", *card.Media)
	assert.Equal(t, "{{1}} card", card.Body)
	assert.Equal(t, "{{3}}", *card.Title)
	assert.Equal(t, Action{Kind: ActionURL, Title: "See {{2}}", Target: "http://x/{{2}}"}, card.Actions[0])
	assert.Equal(t, Action{Kind: ActionQuickReply, Title: "Stop", Target: "stop-{{1}}"}, card.Actions[1])
	assert.Equal(t, VariableIndex{"name", "order", "promo"}, doc.Variables)

	plain := Twilio(tpl, false)
	assert.Equal(t, "Hi {{name}}, order {{order}}", plain.Types.Carousel.Body)
	assert.Equal(t, doc.Variables, plain.Variables)
}

func TestTwilioNumberedLeavesSourceUntouched(t *testing.T) {
	tpl := promoTemplate()
	Twilio(tpl, true)
	assert.Equal(t, "Hi {{name}}", tpl.Body)
}

func TestTwilioActionFieldsMutuallyExclusive(t *testing.T) {
	tpl := Collect(TemplateInput{Cards: []CardInput{{
		Body: "b",
		Actions: []ActionInput{
			{Kind: ActionURL, Title: "link", Value: ""},
			{Kind: ActionQuickReply, Title: "reply", Value: ""},
		},
	}}})

	doc := decode(t, Twilio(tpl, false))
	car := doc["types"].(map[string]interface{})[TwilioSchemaKey].(map[string]interface{})
	actions := car["cards"].([]interface{})[0].(map[string]interface{})["actions"].([]interface{})

	link := actions[0].(map[string]interface{})
	assert.Contains(t, link, "url")
	assert.NotContains(t, link, "id")

	reply := actions[1].(map[string]interface{})
	assert.Contains(t, reply, "id")
	assert.NotContains(t, reply, "url")
}

func TestVariableIndexKeepsNumericOrder(t *testing.T) {
	names := make(VariableIndex, 11)
	for i := range names {
		names[i] = string(rune('a' + i))
	}

	data, err := json.Marshal(names)
	require.NoError(t, err)
	assert.Equal(t,
		`{"1":"a","2":"b","3":"c","4":"d","5":"e","6":"f","7":"g","8":"h","9":"i","10":"j","11":"k"}`,
		string(data))

	var back VariableIndex
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, names, back)
}

func TestTwilioDeterministic(t *testing.T) {
	tpl := Collect(TemplateInput{
		Body: "{{d}} {{c}} {{b}} {{a}}",
		Cards: []CardInput{
			{Body: "one {{e}}"}, {Body: "two {{f}}"}, {Body: "three {{g}}"},
		},
	})

	first, err := json.Marshal(Twilio(tpl, true))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := json.Marshal(Twilio(tpl, true))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestParseTwilioRoundTrip(t *testing.T) {
	templates := []Template{
		promoTemplate(),
		Collect(TemplateInput{Body: "no cards"}),
		Collect(TemplateInput{
			FriendlyName: "multi",
			Body:         "{{a}}",
			Cards: []CardInput{
				{Body: "{{b}} first", Title: "{{c}}", Actions: []ActionInput{
					{Kind: ActionQuickReply, Title: "{{d}}", Value: "id-{{e}}"},
					{Kind: ActionURL, Title: "", Value: ""},
				}},
				{Body: "second", Media: "{{f}}"},
				{Body: "third {{a}}", Actions: []ActionInput{{Kind: ActionURL, Title: "x", Value: "http://y"}}},
			},
		}),
	}

	for _, tpl := range templates {
		data, err := json.Marshal(Twilio(tpl, false))
		require.NoError(t, err)

		got, err := ParseTwilio(data)
		require.NoError(t, err)
		assert.Equal(t, tpl.FriendlyName, got.FriendlyName)
		assert.Equal(t, tpl.Body, got.Body)
		assert.Equal(t, tpl.Cards, got.Cards)
		assert.Equal(t, tpl.Variables, got.Variables)
	}
}

func TestParseTwilioNumberedKeepsNumericNames(t *testing.T) {
	data, err := json.Marshal(Twilio(promoTemplate(), true))
	require.NoError(t, err)

	got, err := ParseTwilio(data)
	require.NoError(t, err)
	assert.Equal(t, "Hi {{1}}", got.Body)
	assert.Equal(t, []string{"1"}, got.Variables)
}

func TestParseTwilioIgnoresVariablesBlock(t *testing.T) {
	got, err := ParseTwilio([]byte(`{
		"types": {"twilio/carousel": {"body": "{{real}}"}},
		"variables": {"1": "bogus", "2": "other"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"real"}, got.Variables)
}

func TestParseTwilioRecoversKindFromTargetField(t *testing.T) {
	got, err := ParseTwilio([]byte(`{"types": {"twilio/carousel": {"body": "", "cards": [{
		"body": "b",
		"actions": [
			{"type": "URL", "title": "r", "id": "reply-1"},
			{"title": "l", "url": "http://l"},
			{"type": "QUICK_REPLY", "title": "neither"},
			{"title": "bare"}
		]
	}]}}}`))
	require.NoError(t, err)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, []Action{
		{Kind: ActionQuickReply, Title: "r", Target: "reply-1"},
		{Kind: ActionURL, Title: "l", Target: "http://l"},
	}, got.Cards[0].Actions)

	in, err := ParseTwilioInput([]byte(`{"types": {"twilio/carousel": {"cards": [{"body": "b", "actions": [
		{"type": "QUICK_REPLY", "title": "neither"}, {"title": "bare"}
	]}]}}}`))
	require.NoError(t, err)
	assert.Equal(t, ActionQuickReply, in.Cards[0].Actions[0].Kind)
	assert.Equal(t, ActionURL, in.Cards[0].Actions[1].Kind)
}

func TestParseTwilioDefaults(t *testing.T) {
	got, err := ParseTwilio([]byte(`{"friendlyName": 5, "types": {"twilio/carousel": {"cards": [
		{"body": "  "}, "junk", {"body": "kept", "media": null, "title": 3}
	]}}}`))
	require.NoError(t, err)
	assert.Equal(t, "", got.FriendlyName)
	assert.Equal(t, "", got.Body)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, "kept", got.Cards[0].Body)
	assert.Nil(t, got.Cards[0].Media)
	assert.Nil(t, got.Cards[0].Title)
}

func TestParseTwilioErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not json", `{"types":`, ErrInvalidJSON},
		{"plain text", `hello`, ErrInvalidJSON},
		{"missing types", `{"foo": 1}`, ErrMissingSchemaKey},
		{"missing carousel", `{"types": {"twilio/text": {}}}`, ErrMissingSchemaKey},
		{"null carousel", `{"types": {"twilio/carousel": null}}`, ErrMissingSchemaKey},
		{"array document", `[1, 2]`, ErrMissingSchemaKey},
		{"null document", `null`, ErrMissingSchemaKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTwilio([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestActionJSON(t *testing.T) {
	data, err := json.Marshal([]Action{
		{Kind: ActionURL, Title: "a", Target: "http://a"},
		{Kind: ActionQuickReply, Title: "b", Target: "b-id"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"URL","title":"a","url":"http://a"},{"type":"QUICK_REPLY","title":"b","id":"b-id"}]`, string(data))

	var back []Action
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ActionQuickReply, back[1].Kind)
	assert.Equal(t, "b-id", back[1].Target)
}
