package carousel

const (
	JaiminhoLocale   = "pt-BR"
	JaiminhoCategory = "UTILITY"
	JaiminhoType     = "carrousel"

	ButtonCallToAction = "call_to_action"
	ButtonQuickReply   = "quick_reply"
)

// JaiminhoDocument is the locale-content template (Format B).
type JaiminhoDocument struct {
	Category     string              `json:"category"`
	Type         string              `json:"type"`
	Assets       JaiminhoAssets      `json:"pt-BR"`
	Samples      []map[string]string `json:"samples"`
	Contents     []JaiminhoContent   `json:"contents"`
	Cards        []JaiminhoCard      `json:"cards"`
	FriendlyName string              `json:"friendlyName,omitempty"`
}

// JaiminhoAssets holds the per-environment asset placeholders that the
// deploy pipeline fills in.
type JaiminhoAssets struct {
	Forno   string `json:"forno"`
	Staging string `json:"staging"`
	Prod    string `json:"prod"`
}

type JaiminhoContent struct {
	Locale  string `json:"locale"`
	Content string `json:"content"`
}

type JaiminhoCardContent struct {
	Locale string `json:"locale"`
	Body   string `json:"body"`
}

type JaiminhoLabel struct {
	Locale string `json:"locale"`
	Label  string `json:"label"`
}

type JaiminhoCard struct {
	MediaURL *string               `json:"mediaUrl"`
	Contents []JaiminhoCardContent `json:"contents"`
	Buttons  []JaiminhoButton      `json:"buttons"`
}

// JaiminhoButton carries URL for call_to_action buttons and Identifier for
// quick_reply buttons.
type JaiminhoButton struct {
	Type       string          `json:"type"`
	URL        *string         `json:"url,omitempty"`
	Identifier *string         `json:"identifier,omitempty"`
	Contents   []JaiminhoLabel `json:"contents"`
}

var defaultAssets = JaiminhoAssets{
	Forno:   "HX_FORNO_ASSET_SID",
	Staging: "HX_STAGING_ASSET_SID",
	Prod:    "HX_PROD_ASSET_SID",
}

// Jaiminho serializes t as a Format B document. Placeholders are kept in
// their {{name}} form.
func Jaiminho(t Template) JaiminhoDocument {
	samples := make([]map[string]string, 0, len(t.Variables))
	for _, v := range t.Variables {
		samples = append(samples, map[string]string{v: ""})
	}

	cards := make([]JaiminhoCard, 0, len(t.Cards))
	for _, c := range t.Cards {
		out := JaiminhoCard{
			MediaURL: c.Media,
			Contents: []JaiminhoCardContent{{Locale: JaiminhoLocale, Body: c.Body}},
			Buttons:  make([]JaiminhoButton, 0, len(c.Actions)),
		}
		for _, a := range c.Actions {
			target := a.Target
			btn := JaiminhoButton{
				Contents: []JaiminhoLabel{{Locale: JaiminhoLocale, Label: a.Title}},
			}
			if a.Kind == ActionQuickReply {
				btn.Type = ButtonQuickReply
				btn.Identifier = &target
			} else {
				btn.Type = ButtonCallToAction
				btn.URL = &target
			}
			out.Buttons = append(out.Buttons, btn)
		}
		cards = append(cards, out)
	}

	return JaiminhoDocument{
		Category:     JaiminhoCategory,
		Type:         JaiminhoType,
		Assets:       defaultAssets,
		Samples:      samples,
		Contents:     []JaiminhoContent{{Locale: JaiminhoLocale, Content: t.Body}},
		Cards:        cards,
		FriendlyName: t.FriendlyName,
	}
}
