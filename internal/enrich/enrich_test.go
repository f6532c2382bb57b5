package enrich

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amityadav/sitefinder/internal/leads"
	"github.com/stretchr/testify/require"
)

const homepage = `<html><body>
<header><a href="mailto:Hello@Bakery.test?subject=Hi">Email us</a></header>
<p>Orders: orders@bakery.test or call us.</p>
<img src="logo@2x.png">
<footer>
  <a href="https://www.instagram.com/bakery">Instagram</a>
  <a href="https://facebook.com/sharer/sharer.php?u=x">Share</a>
  <a href="https://www.facebook.com/bakerypage">Facebook</a>
  <a href="https://x.com/bakery">X</a>
  <a href="https://www.linkedin.com/company/bakery">LinkedIn</a>
  <a href="/about">About</a>
</footer>
</body></html>`

func TestEnrichFillsMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, homepage)
	}))
	defer srv.Close()

	e := newEnricher(nil, true)
	b := leads.Business{ID: "1", Name: "Bakery", Website: srv.URL}

	got, err := e.Enrich(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, "hello@bakery.test", got.Email)
	require.Equal(t, "https://www.instagram.com/bakery", got.SocialMedia.Instagram)
	require.Equal(t, "https://www.facebook.com/bakerypage", got.SocialMedia.Facebook)
	require.Equal(t, "https://x.com/bakery", got.SocialMedia.Twitter)
	require.Equal(t, "https://www.linkedin.com/company/bakery", got.SocialMedia.LinkedIn)
	require.Equal(t, srv.URL, got.Website)
	require.Equal(t, "1", got.ID)
}

func TestEnrichKeepsExistingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, homepage)
	}))
	defer srv.Close()

	b := leads.Business{
		ID:          "1",
		Website:     srv.URL,
		Email:       "owner@bakery.test",
		SocialMedia: leads.SocialMedia{Instagram: "https://instagram.com/owner"},
	}

	got, err := newEnricher(nil, true).Enrich(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, "owner@bakery.test", got.Email)
	require.Equal(t, "https://instagram.com/owner", got.SocialMedia.Instagram)
	require.NotEmpty(t, got.SocialMedia.Facebook)
}

func TestEnrichWithoutWebsite(t *testing.T) {
	b := leads.Business{ID: "1"}
	got, err := newEnricher(nil, true).Enrich(context.Background(), b)
	require.ErrorIs(t, err, ErrNoWebsite)
	require.Equal(t, b, got)
}

func TestEnrichHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newEnricher(nil, true).Enrich(context.Background(), leads.Business{Website: srv.URL})
	require.ErrorContains(t, err, "status code error: 403")
}

func TestSiteURL(t *testing.T) {
	require.Equal(t, "https://bakery.test", siteURL(" bakery.test "))
	require.Equal(t, "http://bakery.test", siteURL("http://bakery.test"))
}

func TestValidEmailRejectsAssets(t *testing.T) {
	_, err := validEmail("logo@2x.png")
	require.Error(t, err)

	_, err = validEmail("someone@example.com")
	require.Error(t, err)

	got, err := validEmail(" Team@Shop.test ")
	require.NoError(t, err)
	require.Equal(t, "team@shop.test", got)
}

func TestEnrichRefusesPrivateAddresses(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		fmt.Fprint(w, homepage)
	}))
	defer srv.Close()

	b := leads.Business{ID: "1", Website: srv.URL}
	got, err := NewEnricher(nil).Enrich(context.Background(), b)
	require.ErrorIs(t, err, ErrPrivateAddress)
	require.Equal(t, b, got)
	require.Zero(t, hits)
}

func TestIsPublic(t *testing.T) {
	tests := []struct {
		ip     string
		public bool
	}{
		{"127.0.0.1", false},
		{"::1", false},
		{"10.1.2.3", false},
		{"172.16.0.9", false},
		{"192.168.1.1", false},
		{"169.254.169.254", false},
		{"fe80::1", false},
		{"fd00::1", false},
		{"0.0.0.0", false},
		{"93.184.216.34", true},
		{"2606:4700:4700::1111", true},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			require.Equal(t, tt.public, isPublic(net.ParseIP(tt.ip)))
		})
	}
}

func TestPublicOnly(t *testing.T) {
	require.ErrorIs(t, publicOnly("tcp", "127.0.0.1:80", nil), ErrPrivateAddress)
	require.ErrorIs(t, publicOnly("tcp", "[::1]:443", nil), ErrPrivateAddress)
	require.NoError(t, publicOnly("tcp", "93.184.216.34:443", nil))
}
