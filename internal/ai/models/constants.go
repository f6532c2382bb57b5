package models

const (
	// === Gemini Models ===
	ModelGemini2_5Flash = "gemini-2.5-flash"
	ModelGemini2_5Pro   = "gemini-2.5-pro"

	// === Groq Models ===
	ModelGroqLlama3_3_70b = "llama-3.3-70b-versatile"
	ModelGroqGptOss120b   = "openai/gpt-oss-120b"
	ModelGroqGptOss20b    = "openai/gpt-oss-20b"

	// === Cerebras Models ===
	ModelCerebrasGptOss120b   = "gpt-oss-120b"
	ModelCerebrasLlama3_3_70b = "llama-3.3-70b"
)

const (
	// === Task-Specific Default Models ===

	// TaskBusinessSearchModel needs Google Maps grounding.
	TaskBusinessSearchModel = ModelGemini2_5Flash

	// TaskFallbackSearchModel answers from model knowledge only, no grounding.
	TaskFallbackSearchModel = ModelGroqGptOss120b
)
