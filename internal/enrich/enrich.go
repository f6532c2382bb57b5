package enrich

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/amityadav/sitefinder/internal/leads"
	"github.com/mcnijman/go-emailaddress"
	"go.uber.org/zap"
)

var (
	// ErrNoWebsite is returned for records without a website to read
	ErrNoWebsite = errors.New("business has no website")
	// ErrPrivateAddress is returned when a website resolves to a non-public address
	ErrPrivateAddress = errors.New("refusing to fetch a non-public address")
)

const maxPageBytes = 2 << 20

// Asset names that look like addresses in page text
var excludedSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}

var excludedDomains = []string{"example.com", "sentry.io", "wixpress.com", "domain.com"}

// Enricher reads a business homepage for contact details
type Enricher struct {
	client *http.Client
	logger *zap.Logger
}

// NewEnricher creates an Enricher that only connects to public addresses
func NewEnricher(logger *zap.Logger) *Enricher {
	return newEnricher(logger, false)
}

func newEnricher(logger *zap.Logger, allowPrivate bool) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	if !allowPrivate {
		// Checked on the resolved address, so redirects and DNS tricks are covered too.
		dialer.Control = publicOnly
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &Enricher{
		client: &http.Client{Timeout: 20 * time.Second, Transport: transport},
		logger: logger.Named("enrich"),
	}
}

func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, address)
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, host)
	}
	return nil
}

func isPublic(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified())
}

// Enrich fetches the record's website and fills in email and social links
// that are still missing. Website itself is never changed.
func (e *Enricher) Enrich(ctx context.Context, b leads.Business) (leads.Business, error) {
	if !leads.HasWebsite(b) {
		return b, ErrNoWebsite
	}

	target := siteURL(b.Website)
	body, err := e.fetch(ctx, target)
	if err != nil {
		return b, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return b, fmt.Errorf("failed to parse html: %w", err)
	}

	emails := mailtoEmails(doc)
	for _, em := range textEmails(body) {
		if !contains(emails, em) {
			emails = append(emails, em)
		}
	}
	social := socialLinks(doc)

	if b.Email == "" && len(emails) > 0 {
		b.Email = emails[0]
	}
	if b.SocialMedia.Instagram == "" {
		b.SocialMedia.Instagram = social.Instagram
	}
	if b.SocialMedia.Facebook == "" {
		b.SocialMedia.Facebook = social.Facebook
	}
	if b.SocialMedia.Twitter == "" {
		b.SocialMedia.Twitter = social.Twitter
	}
	if b.SocialMedia.LinkedIn == "" {
		b.SocialMedia.LinkedIn = social.LinkedIn
	}

	e.logger.Debug("enriched business",
		zap.String("id", b.ID),
		zap.String("url", target),
		zap.Int("emails_found", len(emails)))
	return b, nil
}

func (e *Enricher) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

func siteURL(website string) string {
	website = strings.TrimSpace(website)
	if !strings.Contains(website, "://") {
		return "https://" + website
	}
	return website
}

func mailtoEmails(doc *goquery.Document) []string {
	var emails []string
	doc.Find("a[href^='mailto:']").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		value := strings.TrimPrefix(href, "mailto:")
		if i := strings.Index(value, "?"); i >= 0 {
			value = value[:i]
		}
		email, err := validEmail(value)
		if err != nil || contains(emails, email) {
			return
		}
		emails = append(emails, email)
	})
	return emails
}

func textEmails(body []byte) []string {
	var emails []string
	for _, addr := range emailaddress.Find(body, false) {
		email, err := validEmail(addr.String())
		if err != nil || contains(emails, email) {
			continue
		}
		emails = append(emails, email)
	}
	return emails
}

func validEmail(s string) (string, error) {
	addr, err := emailaddress.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	email := strings.ToLower(addr.String())
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(email, suffix) {
			return "", errors.New("email looks like an asset name")
		}
	}
	for _, domain := range excludedDomains {
		if strings.HasSuffix(email, "@"+domain) {
			return "", errors.New("email contains excluded domain")
		}
	}
	return email, nil
}

func socialLinks(doc *goquery.Document) leads.SocialMedia {
	var social leads.SocialMedia
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(strings.TrimSpace(href))
		if err != nil || u.Host == "" || isShareLink(u.Path) {
			return
		}
		host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
		link := u.String()
		switch {
		case host == "instagram.com":
			setOnce(&social.Instagram, link)
		case host == "facebook.com" || host == "fb.com" || host == "m.facebook.com":
			setOnce(&social.Facebook, link)
		case host == "twitter.com" || host == "x.com":
			setOnce(&social.Twitter, link)
		case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
			setOnce(&social.LinkedIn, link)
		}
	})
	return social
}

func isShareLink(path string) bool {
	p := strings.ToLower(path)
	return strings.HasPrefix(p, "/sharer") || strings.HasPrefix(p, "/intent/") || strings.HasPrefix(p, "/share")
}

func setOnce(field *string, v string) {
	if *field == "" {
		*field = v
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
