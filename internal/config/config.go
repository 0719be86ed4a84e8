package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const envFile = ".env"

type Config struct {
	DBPath        string
	HTTPPort      string
	LogLevel      string
	OperatorQueue int
	PreviewTTL    time.Duration
	MaxUpload     int64
	AMQPURL       string
	AMQPExchange  string
}

// Default returns the configuration used when no environment overrides are set.
func Default() *Config {
	return &Config{
		DBPath:        "./data/budget.db",
		HTTPPort:      "9446",
		LogLevel:      "info",
		OperatorQueue: 1000,
		PreviewTTL:    15 * time.Minute,
		MaxUpload:     64 << 20,
		AMQPExchange:  "budget.changes",
	}
}

// ProcessEnvironmentVariables loads an optional .env file, applies
// environment overrides to the defaults and validates the result.
func ProcessEnvironmentVariables() (*Config, error) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	env := Default()
	var parseErrs []string

	if v := os.Getenv("BUDGET_DB_PATH"); len(v) != 0 {
		env.DBPath = v
	}

	if v := os.Getenv("BUDGET_HTTP_PORT"); len(v) != 0 {
		env.HTTPPort = v
	}

	if v := os.Getenv("BUDGET_LOG_LEVEL"); len(v) != 0 {
		env.LogLevel = v
	}

	if v := os.Getenv("BUDGET_OPERATOR_QUEUE"); len(v) != 0 {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("BUDGET_OPERATOR_QUEUE %q is not a number", v))
		} else {
			env.OperatorQueue = n
		}
	}

	if v := os.Getenv("BUDGET_PREVIEW_TTL"); len(v) != 0 {
		d, err := time.ParseDuration(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("BUDGET_PREVIEW_TTL %q is not a duration", v))
		} else {
			env.PreviewTTL = d
		}
	}

	if v := os.Getenv("BUDGET_MAX_UPLOAD"); len(v) != 0 {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("BUDGET_MAX_UPLOAD %q is not a number of bytes", v))
		} else {
			env.MaxUpload = n
		}
	}

	if v := os.Getenv("BUDGET_AMQP_URL"); len(v) != 0 {
		env.AMQPURL = v
	}

	if v := os.Getenv("BUDGET_AMQP_EXCHANGE"); len(v) != 0 {
		env.AMQPExchange = v
	}

	if len(parseErrs) > 0 {
		return nil, errors.New("configuration parse failed:\n- " + strings.Join(parseErrs, "\n- "))
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}

	if port, err := strconv.Atoi(c.HTTPPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if c.OperatorQueue < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator queue size %d: must be at least 1", c.OperatorQueue))
	}

	if c.PreviewTTL < time.Second {
		problems = append(problems, fmt.Sprintf("invalid preview ttl %v: must be at least 1 second", c.PreviewTTL))
	}

	if c.MaxUpload < 1 {
		problems = append(problems, fmt.Sprintf("invalid max upload %d: must be at least 1 byte", c.MaxUpload))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
