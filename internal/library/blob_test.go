package library

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"carousel-builder/internal/carousel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const browserBlob = `{
	"promo": {
		"friendly": "Promo",
		"body": "Hi {{name}}",
		"cards": [{
			"body": "Card1",
			"media": "http://x/img.png",
			"title": null,
			"actions": [
				{"type": "URL", "title": "Go", "url": "http://x"},
				{"type": "QUICK_REPLY", "title": "Stop", "id": "stop-{{name}}"}
			]
		}],
		"variables": ["name"]
	},
	"  ": {"friendly": "", "body": "ignored", "cards": []}
}`

func TestParseBlobBareMap(t *testing.T) {
	blob, err := ParseBlob([]byte(browserBlob))
	require.NoError(t, err)
	require.Contains(t, blob.Templates, "promo")
	assert.Equal(t, []string{"promo", "  "}, blob.Names)

	promo := blob.Templates["promo"]
	assert.Equal(t, "Promo", promo.FriendlyName)
	require.Len(t, promo.Cards, 1)
	assert.Equal(t, "stop-{{name}}", promo.Cards[0].Actions[1].Target)
}

func TestParseBlobLocalStorageDump(t *testing.T) {
	inner, err := json.Marshal(browserBlob)
	require.NoError(t, err)
	dump := `{"` + LocalStorageKey + `": ` + string(inner) + `}`

	blob, err := ParseBlob([]byte(dump))
	require.NoError(t, err)
	assert.Contains(t, blob.Templates, "promo")
}

func TestParseBlobInvalid(t *testing.T) {
	_, err := ParseBlob([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseBlob([]byte(`{"promo": 5}`))
	assert.Error(t, err)
}

func TestImportExport(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	blob, err := ParseBlob([]byte(browserBlob))
	require.NoError(t, err)

	count, err := repo.Import(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out, err := repo.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "Hi {{name}}", out.Templates["promo"].Body)
	assert.Equal(t, []string{"name"}, out.Templates["promo"].Variables)
}

func TestImportKeepsDocumentOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	blob, err := ParseBlob([]byte(`{
		"zeta":  {"friendly": "", "body": "z", "cards": []},
		"alpha": {"friendly": "", "body": "a", "cards": []},
		"mid":   {"friendly": "", "body": "m", "cards": []}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, blob.Names)

	_, err = repo.Import(ctx, blob)
	require.NoError(t, err)

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)

	out, err := repo.Export(ctx)
	require.NoError(t, err)
	data, err := json.Marshal(out)
	require.NoError(t, err)
	text := string(data)
	assert.Less(t, strings.Index(text, `"zeta"`), strings.Index(text, `"alpha"`))
	assert.Less(t, strings.Index(text, `"alpha"`), strings.Index(text, `"mid"`))
}

func TestImportAppendsAfterExisting(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "promo", sampleTemplate("first")))

	blob := NewBlob()
	blob.Set("beta", sampleTemplate("b"))
	blob.Set("promo", sampleTemplate("second"))
	blob.Set("alpha", sampleTemplate("a"))
	_, err := repo.Import(ctx, blob)
	require.NoError(t, err)

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"promo", "beta", "alpha"}, names)

	got, err := repo.Get(ctx, "promo")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Body)
}

func TestBlobSetKeepsPosition(t *testing.T) {
	blob := NewBlob()
	blob.Set("a", carousel.Template{Body: "1"})
	blob.Set("b", carousel.Template{Body: "2"})
	blob.Set("a", carousel.Template{Body: "3"})

	assert.Equal(t, []string{"a", "b"}, blob.Names)
	assert.Equal(t, "3", blob.Templates["a"].Body)
	assert.Equal(t, 2, blob.Len())
}
