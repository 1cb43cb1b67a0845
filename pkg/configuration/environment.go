package configuration

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

// AssistantOptions configures the streaming completion collaborator.
type AssistantOptions struct {
	BaseURL     string  `env:"ASSISTANT_BASE_URL"`
	AccessToken string  `env:"ASSISTANT_ACCESS_TOKEN"`
	Model       string  `env:"ASSISTANT_MODEL" envDefault:"gpt-4o-mini"`
	MaxTokens   int     `env:"ASSISTANT_MAX_TOKENS" envDefault:"1024"`
	Temperature float64 `env:"ASSISTANT_TEMPERATURE" envDefault:"0.7"`
}

type AssistantCacheOptions struct {
	Enabled  bool          `env:"ASSISTANT_CACHE_ENABLED" envDefault:"false"`
	Backend  string        `env:"ASSISTANT_CACHE_BACKEND" envDefault:"memory"` // memory or redis
	RedisURL string        `env:"ASSISTANT_CACHE_REDIS_URL" envDefault:"localhost:6379"`
	Prefix   string        `env:"ASSISTANT_CACHE_PREFIX" envDefault:"assistant"`
	TTL      time.Duration `env:"ASSISTANT_CACHE_TTL" envDefault:"15m"`
}

func (o *AssistantCacheOptions) Validate() error {
	if o.Backend != "memory" && o.Backend != "redis" {
		return fmt.Errorf("assistant cache Backend must be 'memory' or 'redis', got '%s'", o.Backend)
	}
	if o.Backend == "redis" && o.RedisURL == "" {
		return fmt.Errorf("assistant cache RedisURL is required when Backend is 'redis'")
	}
	return nil
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type Configuration struct {
	Assistant      AssistantOptions
	AssistantCache AssistantCacheOptions
	Prometheus     PrometheusOptions

	ServerPort       int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string `env:"-"`
	Domain           string `env:"DOMAIN" envDefault:"localhost"`
	Origin           string `env:"ORIGIN" envDefault:"http://localhost:3200"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	LogPath          string `env:"LOG_PATH" envDefault:""`
	// The server will look for this header in the request; if it's not present, it will generate a random uuidv4
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// The server will look for this header in the request; if it's not present, it will use request.RemoteAddr
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`
	// The acting user is resolved from this header (mock identity directory, no auth server).
	ActorIDHeader string `env:"ACTOR_ID_HEADER" envDefault:"X-Actor-ID"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.AssistantCache.Validate(); err != nil {
		return fmt.Errorf("assistant cache configuration error: %w", err)
	}

	if err := c.buildLogger(); err != nil {
		return err
	}

	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	if os.Getenv("ORIGIN") == "" {
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}

	return nil
}

func (c *Configuration) buildLogger() error {
	logger := logrus.New()
	logger.SetLevel(c.LogrusLogLevel())
	logger.SetFormatter(&logrus.JSONFormatter{})

	var out io.Writer = os.Stdout
	if c.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		c.logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}
	logger.SetOutput(out)
	c.logger = logger
	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
