package model

// ================ Config ================

// ClassifierConfig tunes intent classification. The supplier-query minimum
// and the search-trigger minimum (SearchConfig.MinQueryLen) are deliberately
// independent knobs even though both default to 2.
type ClassifierConfig struct {
	SupplierQueryMinLen int `envconfig:"CLASSIFIER_SUPPLIER_QUERY_MIN_LEN" default:"2"`
}

// SearchConfig configures the unified-search client.
type SearchConfig struct {
	BaseURL     string `envconfig:"SEARCH_BASE_URL" required:"true"`
	Timeout     int    `envconfig:"SEARCH_TIMEOUT" default:"10"`
	MinQueryLen int    `envconfig:"SEARCH_MIN_QUERY_LEN" default:"2"`
}

// ReplyConfig configures the conversational-reply model and its
// connectivity prober.
type ReplyConfig struct {
	Model         string  `envconfig:"REPLY_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens     int     `envconfig:"REPLY_MAX_TOKENS" default:"1000"`
	Temperature   float32 `envconfig:"REPLY_TEMPERATURE" default:"0.4"`
	ProbeInterval string  `envconfig:"REPLY_PROBE_INTERVAL" default:"5s"`
}

// SessionConfig configures session state handling.
type SessionConfig struct {
	TTL         string `envconfig:"SESSION_TTL" default:"30m"`
	ActivityCap int    `envconfig:"SESSION_ACTIVITY_CAP" default:"12"`
	Greeting    string `envconfig:"SESSION_GREETING" default:"Hi! I can open dashboards, suppliers, and purchase orders for you. What do you need?"`
}
