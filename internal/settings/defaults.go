package settings

// DefaultSearchTuning mirrors the values the search prompt was written for
var DefaultSearchTuning = SearchTuning{
	Temperature: 0.4,
	MinResults:  10,
	MaxResults:  15,
}

// DefaultHistoryLimit is the default number of remembered queries
const DefaultHistoryLimit = 10

// GetDefault returns the default value for a setting key
func GetDefault(key SettingKey) interface{} {
	switch key {
	case KeyHistoryLimit:
		return DefaultHistoryLimit
	case KeySearchTuning:
		return DefaultSearchTuning
	default:
		return nil
	}
}
