// Package config defines service configuration structures and loading.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file. Empty selects the in-memory
	// store, which loses data on restart.
	DBPath string `koanf:"db_path"`

	// QueueSize bounds the in-memory refresh job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of refresh workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the in-flight request tracker.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// Composite scoring weights: (bills*BillWeight + debates*DebateWeight
	// + questions*QuestionWeight) / CompositeDivisor.
	BillWeight       float64 `koanf:"bill_weight"`
	DebateWeight     float64 `koanf:"debate_weight"`
	QuestionWeight   float64 `koanf:"question_weight"`
	CompositeDivisor float64 `koanf:"composite_divisor"`

	// Overall blend shares for attendance, composite and rating.
	AttendanceShare float64 `koanf:"attendance_share"`
	CompositeShare  float64 `koanf:"composite_share"`
	RatingShare     float64 `koanf:"rating_share"`

	// AIAPIKey authenticates against the generative backend. Empty
	// disables collaborator features.
	AIAPIKey string `koanf:"ai_api_key"`

	// AIModel overrides the default generative model.
	AIModel string `koanf:"ai_model"`

	// AITimeoutSeconds bounds each collaborator call.
	AITimeoutSeconds int `koanf:"ai_timeout_seconds"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		DBPath:              "civicrank.db",
		QueueSize:           1024,
		WorkerCount:         2,
		DedupeSize:          10_000,
		MaxLeaderboardLimit: 100,
		AITimeoutSeconds:    30,
	}
}
