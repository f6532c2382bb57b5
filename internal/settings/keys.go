package settings

// SettingKey represents a valid setting key
type SettingKey string

const (
	// KeyHistoryLimit stores how many past queries are kept
	KeyHistoryLimit SettingKey = "history_limit"

	// KeySearchTuning stores the generation parameters for business searches
	KeySearchTuning SettingKey = "search_tuning"
)

// AllKeys returns all valid setting keys (for validation/seeding)
func AllKeys() []SettingKey {
	return []SettingKey{
		KeyHistoryLimit,
		KeySearchTuning,
	}
}

// KeyDescription returns a human-readable description for a setting key
func KeyDescription(key SettingKey) string {
	switch key {
	case KeyHistoryLimit:
		return "Number of recent search queries kept in history"
	case KeySearchTuning:
		return "Temperature and requested result count for business searches"
	default:
		return ""
	}
}
