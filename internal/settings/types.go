package settings

// SearchTuning controls how many businesses are requested and how creative
// the model may be when listing them
type SearchTuning struct {
	Temperature float32 `json:"temperature"`
	MinResults  int     `json:"min_results"`
	MaxResults  int     `json:"max_results"`
}

// Valid reports whether the tuning can be sent to a provider
func (t SearchTuning) Valid() bool {
	return t.Temperature >= 0 && t.Temperature <= 2 &&
		t.MinResults > 0 && t.MaxResults >= t.MinResults
}
