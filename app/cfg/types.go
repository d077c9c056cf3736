package cfg

type Cfg struct {
	// Application configuration
	Port         string
	BiasDataFile string
	FeedsFile    string

	// Upstream provider credentials (empty disables the provider)
	CurrentsAPIKey    string
	TheNewsAPIKey     string
	NewsAPIKey        string
	OpenWeatherAPIKey string

	// Fetch behavior
	FetchTimeout int // seconds, per network call
	UserAgent    string

	// Cache TTLs in minutes
	NewsCacheTTL      int
	MarketsCacheTTL   int
	ScoresCacheTTL    int
	WeatherCacheTTL   int
	LocalNewsCacheTTL int

	// Background refresh
	WorkerCount     int
	RefreshInterval int // minutes between cache pre-warm rounds

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
