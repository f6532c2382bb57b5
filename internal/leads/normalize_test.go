package leads

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("biz-%d", n)
	}
}

func TestNormalizeKeepsOrderAndAssignsUniqueIDs(t *testing.T) {
	raw := `[
		{"name": "Alpha Plumbing", "website": "https://alpha.example"},
		{"name": "Beta Bakery"},
		{"name": "Gamma Gym", "id": "from-source"}
	]`

	got, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "Alpha Plumbing", got[0].Name)
	require.Equal(t, "Beta Bakery", got[1].Name)
	require.Equal(t, "Gamma Gym", got[2].Name)

	seen := map[string]bool{}
	for _, b := range got {
		require.NotEmpty(t, b.ID)
		require.NotEqual(t, "from-source", b.ID)
		require.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	n := Normalizer{NewID: sequentialIDs()}

	got, err := n.Normalize(`[{"phoneNumber": null, "website": "", "rating": 4.5, "socialMedia": null}]`)
	require.NoError(t, err)
	require.Equal(t, []Business{{
		ID:          "biz-1",
		Name:        DefaultName,
		Address:     DefaultAddress,
		Rating:      ptr(4.5),
		ReviewCount: 0,
		Category:    DefaultCategory,
	}}, got)
}

func TestNormalizeCoercesLooseTypes(t *testing.T) {
	n := Normalizer{NewID: sequentialIDs()}

	raw := `[{
		"name": "  Joe's Cafe ",
		"phoneNumber": 5551234,
		"rating": "4.2",
		"reviewCount": "1,204",
		"openStatus": "Open Now",
		"email": "hello@joes.example",
		"socialMedia": {"Instagram": "https://instagram.com/joes", "facebook": "", "twitter": null, "tiktok": "x"}
	}]`

	got, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)

	b := got[0]
	require.Equal(t, "  Joe's Cafe ", b.Name)
	require.Equal(t, "5551234", b.PhoneNumber)
	require.Equal(t, 4.2, *b.Rating)
	require.Equal(t, 1204, b.ReviewCount)
	require.Equal(t, "Open Now", b.OpenStatus)
	require.Equal(t, "hello@joes.example", b.Email)
	require.Equal(t, SocialMedia{Instagram: "https://instagram.com/joes"}, b.SocialMedia)
}

func TestNormalizeKeepsWhitespaceWebsite(t *testing.T) {
	got, err := Normalize(`[{"website": "  "}, {"website": ""}, {"website": null}]`)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, "  ", got[0].Website)
	require.True(t, HasWebsite(got[0]))
	require.False(t, HasWebsite(got[1]))
	require.False(t, HasWebsite(got[2]))
	require.Equal(t, 2, NoWebsiteCount(got))
	require.Equal(t, TabNoWebsite, AutoTab(got))
}

func TestNormalizeSocialMediaPrefersExactKey(t *testing.T) {
	raw := `[{"socialMedia": {"Instagram": "https://instagram.com/upper", "instagram": "https://instagram.com/lower", "FACEBOOK": "https://facebook.com/b", "Facebook": "https://facebook.com/a"}}]`

	for i := 0; i < 20; i++ {
		got, err := Normalize(raw)
		require.NoError(t, err)
		require.Equal(t, "https://instagram.com/lower", got[0].SocialMedia.Instagram)
		require.Equal(t, "https://facebook.com/b", got[0].SocialMedia.Facebook)
	}
}

func TestNormalizeZeroRatingIsAbsent(t *testing.T) {
	got, err := Normalize(`[{"rating": 0, "reviewCount": -3}]`)
	require.NoError(t, err)
	require.Nil(t, got[0].Rating)
	require.Zero(t, got[0].ReviewCount)
}

func TestNormalizeStripsCodeFences(t *testing.T) {
	raw := "```json\n[{\"name\": \"Fenced\"}]\n```"

	got, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Fenced", got[0].Name)
}

func TestNormalizeEmptyArray(t *testing.T) {
	got, err := Normalize("[]")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestNormalizeEmptyPayload(t *testing.T) {
	for _, raw := range []string{"", "   \n\t"} {
		got, err := Normalize(raw)
		require.ErrorIs(t, err, ErrEmptyResponse)
		require.Nil(t, got)
	}
}

func TestNormalizeMalformedPayload(t *testing.T) {
	cases := map[string]string{
		"not json":         "not json",
		"object":           `{"name": "Solo"}`,
		"null element":     `[{"name": "ok"}, null]`,
		"scalar element":   `[1, 2]`,
		"trailing garbage": `[{"name": "ok"}] trailing`,
		"truncated":        `[{"name": "ok"`,
		"only fences":      "```json\n```",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Normalize(raw)
			require.Nil(t, got)
			require.ErrorIs(t, err, ErrMalformedResponse)

			var malformed *MalformedResponseError
			require.True(t, errors.As(err, &malformed))
			require.Equal(t, raw, malformed.Raw)
		})
	}
}

func ptr(f float64) *float64 {
	return &f
}
