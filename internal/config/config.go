package config

import (
	"time"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyJikanBaseURL   = "jikan.baseurl"
	KeyJikanTimeout   = "jikan.timeout"
	KeyJikanDelay     = "jikan.delay"
	KeySearchDebounce = "search.debounce"
	KeySearchPageSize = "search.pagesize"
	KeyCuratedLimit   = "curated.limit"
	KeyOverwrite      = "OverwriteFiles"
)

// Global configuration variables
var (
	// JikanBaseURL is the root of the Jikan v4 REST API
	JikanBaseURL string
	// JikanTimeout bounds a single upstream HTTP call
	JikanTimeout time.Duration
	// JikanDelay is the minimum spacing between upstream calls
	JikanDelay time.Duration
	// SearchDebounce is the quiet period before a typed query is searched
	SearchDebounce time.Duration
	// PageSize is the number of items on one application page
	PageSize int
	// CuratedLimit is the number of items in each curated section
	CuratedLimit int
	// OverwriteFiles controls whether existing export files are replaced
	OverwriteFiles bool
)

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault(KeyJikanBaseURL, "https://api.jikan.moe/v4")
	viper.SetDefault(KeyJikanTimeout, "10s")
	viper.SetDefault(KeyJikanDelay, "350ms")
	viper.SetDefault(KeySearchDebounce, "500ms")
	viper.SetDefault(KeySearchPageSize, 50)
	viper.SetDefault(KeyCuratedLimit, 10)
	viper.SetDefault(KeyOverwrite, false)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	JikanBaseURL = viper.GetString(KeyJikanBaseURL)
	JikanTimeout = viper.GetDuration(KeyJikanTimeout)
	JikanDelay = viper.GetDuration(KeyJikanDelay)
	SearchDebounce = viper.GetDuration(KeySearchDebounce)
	PageSize = viper.GetInt(KeySearchPageSize)
	CuratedLimit = viper.GetInt(KeyCuratedLimit)
	OverwriteFiles = viper.GetBool(KeyOverwrite)
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
