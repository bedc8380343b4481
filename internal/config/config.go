package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Store struct {
		URL        string        `yaml:"url" default:"redis://localhost:6379"`
		Password   string        `yaml:"password"`
		DB         int           `yaml:"db" default:"0"`
		Timeout    time.Duration `yaml:"timeout" default:"5s"`
		Collection string        `yaml:"collection" default:"jobs"`
	} `yaml:"store"`

	Auth struct {
		ProviderURL   string        `yaml:"provider_url" default:"http://localhost:9099"`
		APIKey        string        `yaml:"api_key"`
		Timeout       time.Duration `yaml:"timeout" default:"10s"`
		SessionSecret string        `yaml:"session_secret"`
		SessionTTL    time.Duration `yaml:"session_ttl" default:"24h"`
		AdminEmails   []string      `yaml:"admin_emails"`
	} `yaml:"auth"`

	Submissions struct {
		RateLimit int           `yaml:"rate_limit" default:"6"` // submissions per minute per client
		Burst     int           `yaml:"burst" default:"2"`
		MaxBody   int64         `yaml:"max_body" default:"1048576"`
		Timeout   time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"submissions"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Store.URL = "redis://localhost:6379"
	config.Store.DB = 0
	config.Store.Timeout = 5 * time.Second
	config.Store.Collection = "jobs"

	config.Auth.ProviderURL = "http://localhost:9099"
	config.Auth.Timeout = 10 * time.Second
	config.Auth.SessionTTL = 24 * time.Hour

	config.Submissions.RateLimit = 6
	config.Submissions.Burst = 2
	config.Submissions.MaxBody = 1024 * 1024
	config.Submissions.Timeout = 15 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if storeURL := os.Getenv("STORE_URL"); storeURL != "" {
		c.Store.URL = storeURL
	}

	// Also support REDIS_URL for compatibility with hosted offerings
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Store.URL = redisURL
	}

	if storePassword := os.Getenv("STORE_PASSWORD"); storePassword != "" {
		c.Store.Password = storePassword
	}

	if storeDB := os.Getenv("STORE_DB"); storeDB != "" {
		if db, err := strconv.Atoi(storeDB); err == nil {
			c.Store.DB = db
		}
	}

	if storeTimeout := os.Getenv("STORE_TIMEOUT"); storeTimeout != "" {
		if timeout, err := time.ParseDuration(storeTimeout); err == nil {
			c.Store.Timeout = timeout
		}
	}

	if collection := os.Getenv("STORE_COLLECTION"); collection != "" {
		c.Store.Collection = collection
	}

	if providerURL := os.Getenv("AUTH_PROVIDER_URL"); providerURL != "" {
		c.Auth.ProviderURL = providerURL
	}

	if apiKey := os.Getenv("AUTH_API_KEY"); apiKey != "" {
		c.Auth.APIKey = apiKey
	}

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		c.Auth.SessionSecret = secret
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Auth.SessionTTL = d
		}
	}

	// Comma-separated list of moderator identities
	if admins := os.Getenv("ADMIN_EMAILS"); admins != "" {
		var emails []string
		for _, e := range strings.Split(admins, ",") {
			if trimmed := strings.TrimSpace(e); trimmed != "" {
				emails = append(emails, trimmed)
			}
		}
		c.Auth.AdminEmails = emails
	}

	if rateLimit := os.Getenv("SUBMISSION_RATE_LIMIT"); rateLimit != "" {
		if limit, err := strconv.Atoi(rateLimit); err == nil {
			c.Submissions.RateLimit = limit
		}
	}

	if burst := os.Getenv("SUBMISSION_BURST"); burst != "" {
		if b, err := strconv.Atoi(burst); err == nil {
			c.Submissions.Burst = b
		}
	}
}
