package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/retromat/retromat-backend/pkg/logging"
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

// LoadEnv loads the given env files from the working directory or, when none
// exist there, from the nearest parent directory holding a go.mod.
func LoadEnv(envFiles []string) (int, error) {
	existing := existingFiles(".", envFiles)
	if len(existing) == 0 {
		if root, ok := moduleRoot(); ok {
			existing = existingFiles(root, envFiles)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func existingFiles(dir string, envFiles []string) []string {
	out := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		path := filepath.Join(dir, file)
		if fs.FileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

func moduleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"retromat"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type RedisOptions struct {
	Enabled bool          `env:"CACHE_ENABLED" envDefault:"false"`
	URL     string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	Prefix  string        `env:"CACHE_PREFIX" envDefault:"retromat"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

type MailerOptions struct {
	Host        string `env:"SMTP_HOST"`
	Port        int    `env:"SMTP_PORT" envDefault:"587"`
	Username    string `env:"SMTP_USERNAME"`
	Password    string `env:"SMTP_PASSWORD"`
	From        string `env:"MAIL_FROM" envDefault:"retromat-backend@localhost"`
	TeamAddress string `env:"MAIL_TEAM_ADDRESS" envDefault:"retromat-backend@localhost"`
}

type ImporterOptions struct {
	SourceDir    string `env:"ACTIVITY_SOURCE_DIR" envDefault:"data/activities"`
	SourceFormat string `env:"ACTIVITY_SOURCE_FORMAT" envDefault:"yaml"`
	Workbook     string `env:"ACTIVITY_SOURCE_WORKBOOK" envDefault:"activities.xlsx"`
	Locales      string `env:"ACTIVITY_LOCALES" envDefault:"de,es,fr,nl"`
}

// Validate checks the importer configuration for errors
func (i *ImporterOptions) Validate() error {
	format := strings.ToLower(strings.TrimSpace(i.SourceFormat))
	switch format {
	case "yaml", "xlsx":
	default:
		return fmt.Errorf("invalid ACTIVITY_SOURCE_FORMAT=%q (expected yaml|xlsx)", i.SourceFormat)
	}
	i.SourceFormat = format
	return nil
}

func (i *ImporterOptions) LocaleList() []string {
	return SplitList(i.Locales)
}

type PlanOptions struct {
	TitlesPath string `env:"PLAN_TITLES_PATH" envDefault:"config/plan_titles.yml"`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"retromat-backend"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"20"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"`
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL" envDefault:"localhost:6379"`
}

type Configuration struct {
	Database      DatabaseOptions
	Redis         RedisOptions
	RateLimit     RateLimitOptions
	Mailer        MailerOptions
	Importer      ImporterOptions
	Plan          PlanOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions

	MigrationsDir      string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	ServerPort         int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment   string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress      string `env:"-"`
	Origin             string `env:"ORIGIN" envDefault:"http://localhost:3200"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"error"`
	LogPath            string `env:"LOG_PATH" envDefault:"./logs/app.log"`
	SupportedLanguages string `env:"SUPPORTED_LANGUAGES" envDefault:""`
	CorsOrigins        string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3200"`
	// Header carrying the request id; a uuid is generated when absent.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Header carrying the client address; request.RemoteAddr is used when absent.
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

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

func (c *Configuration) SupportedLanguageCodes() []string {
	return SplitList(c.SupportedLanguages)
}

func (c *Configuration) CorsOriginList() []string {
	return SplitList(c.CorsOrigins)
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
	if err := c.parse(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger
	return nil
}

func (c *Configuration) parse() error {
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.Importer.Validate(); err != nil {
		return fmt.Errorf("importer configuration error: %w", err)
	}

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}
	if os.Getenv("ORIGIN") == "" && c.GoAppEnvironment != Production {
		c.Origin = fmt.Sprintf("http://localhost:%d", c.ServerPort)
	}
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

// SplitList splits a comma or whitespace separated list, dropping empty items.
func SplitList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
