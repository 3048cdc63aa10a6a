package workqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups all tunables. Values are taken from environment variables
// with the prefix "STYLEAI_WQ_". Example: STYLEAI_WQ_QUEUE_SIZE=256 .
type Config struct {
	Lanes          int           `envconfig:"LANES"           default:"2"`
	QueueSize      int           `envconfig:"QUEUE_SIZE"      default:"64"`
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT" default:"100ms"`

	// ErrorHandler is called synchronously after a Job exhausts its retries
	// with a non-nil error. Leave nil if you do not care.
	ErrorHandler func(error) `envconfig:"-"`

	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF" default:"100ms"`
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL" default:"10s"`
}

// LoadConfig populates Config from environment variables (prefix STYLEAI_WQ).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("STYLEAI_WQ", &c)
}
