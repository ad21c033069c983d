package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Directory.TimeoutSeconds == 0 {
		cfg.Directory.TimeoutSeconds = 30
	}
	if cfg.Directory.MaxRetries == 0 {
		cfg.Directory.MaxRetries = 2
	}
	if cfg.Directory.RetryDelayMillis == 0 {
		cfg.Directory.RetryDelayMillis = 1000
	}
	if cfg.Directory.RateLimitPerSec == 0 {
		cfg.Directory.RateLimitPerSec = 5
	}
	if cfg.Directory.RateBurst == 0 {
		cfg.Directory.RateBurst = 10
	}
	if cfg.Directory.CacheTTLSeconds == 0 {
		cfg.Directory.CacheTTLSeconds = 60
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 1000
	}

	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 50
	}
	if cfg.Search.MaxAvailabilityChecks == 0 {
		cfg.Search.MaxAvailabilityChecks = 10
	}

	cfg.Ranking.ApplyDefaults()
}
