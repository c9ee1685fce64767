// Package admin parses admin console flags and launches the HTTP server.
package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/goalinstitute/admin-console/internal/platform/cmd"
	"github.com/goalinstitute/admin-console/internal/services/admin"
)

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr            string        `env:"GOAL_ADMIN_HTTP_ADDR" envDefault:":8082"`
	APIBaseURL          string        `env:"GOAL_ADMIN_API_BASE_URL" envDefault:"http://localhost:5000/api"`
	SessionSecret       string        `env:"GOAL_ADMIN_SESSION_SECRET"`
	SessionStore        string        `env:"GOAL_ADMIN_SESSION_STORE" envDefault:"cookie"`
	DBPath              string        `env:"GOAL_ADMIN_DB_PATH" envDefault:"data/admin.db"`
	SessionTTL          time.Duration `env:"GOAL_ADMIN_SESSION_TTL" envDefault:"168h"`
	CookieSecure        bool          `env:"GOAL_ADMIN_COOKIE_SECURE"`
	TrustForwardedProto bool          `env:"GOAL_ADMIN_TRUST_FORWARDED_PROTO"`
	CDNCloudName        string        `env:"GOAL_ADMIN_CDN_CLOUD_NAME"`
	CDNUploadPreset     string        `env:"GOAL_ADMIN_CDN_UPLOAD_PRESET"`
	CDNFolder           string        `env:"GOAL_ADMIN_CDN_FOLDER" envDefault:"goal-institute"`
	ChatbotURL          string        `env:"GOAL_ADMIN_CHATBOT_ANALYTICS_URL"`
	DemoEmail           string        `env:"GOAL_ADMIN_DEMO_EMAIL"`
	DemoPassword        string        `env:"GOAL_ADMIN_DEMO_PASSWORD"`
	SearchDebounce      time.Duration `env:"GOAL_ADMIN_SEARCH_DEBOUNCE" envDefault:"300ms"`
	LoginInterval       time.Duration `env:"GOAL_ADMIN_LOGIN_RATE" envDefault:"2s"`
	LoginBurst          int           `env:"GOAL_ADMIN_LOGIN_BURST" envDefault:"5"`
	PageSize            int           `env:"GOAL_ADMIN_PAGE_SIZE" envDefault:"20"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Backend REST API base URL")
	fs.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "Session storage: cookie, sqlite, or memory")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite session database path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "How long an idle stored session is kept")
	fs.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "Mark cookies Secure")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto for origin checks")
	fs.StringVar(&cfg.ChatbotURL, "chatbot-url", cfg.ChatbotURL, "Chatbot analytics link shown to super admins")
	fs.DurationVar(&cfg.SearchDebounce, "search-debounce", cfg.SearchDebounce, "Live search quiet period")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Submissions per list page")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return Config{}, errors.New("GOAL_ADMIN_SESSION_SECRET is required")
	}
	return cfg, nil
}

// Run starts the admin console server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, func(ctx context.Context) error {
		server, err := admin.NewServer(ctx, admin.Config{
			HTTPAddr:            cfg.HTTPAddr,
			APIBaseURL:          cfg.APIBaseURL,
			SessionSecret:       cfg.SessionSecret,
			SessionStore:        cfg.SessionStore,
			DBPath:              cfg.DBPath,
			SessionTTL:          cfg.SessionTTL,
			CookieSecure:        cfg.CookieSecure,
			TrustForwardedProto: cfg.TrustForwardedProto,
			CDNCloudName:        cfg.CDNCloudName,
			CDNUploadPreset:     cfg.CDNUploadPreset,
			CDNFolder:           cfg.CDNFolder,
			ChatbotURL:          cfg.ChatbotURL,
			DemoEmail:           cfg.DemoEmail,
			DemoPassword:        cfg.DemoPassword,
			SearchDebounce:      cfg.SearchDebounce,
			LoginInterval:       cfg.LoginInterval,
			LoginBurst:          cfg.LoginBurst,
			PageSize:            cfg.PageSize,
		})
		if err != nil {
			return fmt.Errorf("init admin server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})
}
