package leads

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	b := Business{Name: "Joe's Cafe", Address: "1 Elm St, Portland, USA", Category: "Cafe", PhoneNumber: "555-0100"}

	got := BuildPrompt(b)
	require.True(t, strings.HasPrefix(got, `Build a business website for "Joe's Cafe" located at "1 Elm St, Portland, USA".`))
	require.Contains(t, got, "Industry: Cafe.")
	require.Contains(t, got, "Their phone number is 555-0100.")
	require.Contains(t, got, "Include sections for Home, About, Services, and Contact.")
	require.Equal(t, got, BuildPrompt(b))
}

func TestBuildPromptDefaults(t *testing.T) {
	got := BuildPrompt(Business{Name: "Nameless", Address: "Somewhere"})
	require.Contains(t, got, "Industry: General Business.")
	require.Contains(t, got, "Their phone number is Not listed.")
}

func TestOutreachMessageRatingPraise(t *testing.T) {
	b := Business{Name: "Top Dental", Address: "9 Oak Ave, Seattle, USA", Rating: ptr(4.8), Category: "Dentist"}

	got := OutreachMessage(b)
	require.True(t, strings.HasPrefix(got, "Subject: Quick question about Top Dental\n\nHi Top Dental team,"))
	require.Contains(t, got, "I noticed you have a fantastic 4.8-star rating on Google, but I was surprised")
	require.Contains(t, got, "I help local Dentist businesses like yours")
	require.Contains(t, got, "97% of consumers")
	require.Contains(t, got, "how we can get Top Dental online?")
	require.NotContains(t, got, "Seattle")
	require.Equal(t, got, OutreachMessage(b))
}

func TestOutreachMessageLocation(t *testing.T) {
	b := Business{Name: "Corner Shop", Address: "123 Main St, Springfield, USA"}

	got := OutreachMessage(b)
	require.Contains(t, got, "I found your business listed in  Springfield, but")
	require.Contains(t, got, "I help local business businesses")
}

func TestOutreachMessageRatingAtThreshold(t *testing.T) {
	got := OutreachMessage(Business{Name: "Fair", Address: "1 A St, Dayton", Rating: ptr(4.0)})
	require.Contains(t, got, "listed in  Dayton")
	require.NotContains(t, got, "star rating")
}

func TestOutreachMessageAreaFallback(t *testing.T) {
	for _, address := range []string{"No commas here", "Trailing,", ""} {
		got := OutreachMessage(Business{Name: "X", Address: address})
		require.Contains(t, got, "I found your business listed in the area,")
	}
}

func TestFormatRating(t *testing.T) {
	require.Equal(t, "5", FormatRating(5))
	require.Equal(t, "4.75", FormatRating(4.75))
}
