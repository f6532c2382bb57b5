package leads

// Placeholders used when the source omits a field
const (
	DefaultName     = "Unknown Business"
	DefaultAddress  = "No address provided"
	DefaultCategory = "General"
)

// SocialMedia holds profile URLs per platform. Missing platforms are left empty.
type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// IsEmpty reports whether no platform is set
func (s SocialMedia) IsEmpty() bool {
	return s == SocialMedia{}
}

// Business is the normalized record produced for every search result.
// Optional string fields use "" for absent; they are omitted from JSON.
type Business struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Website     string      `json:"website,omitempty"`
	Rating      *float64    `json:"rating,omitempty"`
	ReviewCount int         `json:"reviewCount"`
	Category    string      `json:"category"`
	OpenStatus  string      `json:"openStatus,omitempty"`
	Email       string      `json:"email,omitempty"`
	SocialMedia SocialMedia `json:"socialMedia"`
}

// HasWebsite is the only website predicate. Filtering, counting and tab
// selection all go through it; the result is never stored on the record.
// Any non-empty value counts, whitespace included.
func HasWebsite(b Business) bool {
	return b.Website != ""
}
