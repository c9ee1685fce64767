package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goalinstitute/admin-console/internal/platform/assets/cdnupload"
	"github.com/goalinstitute/admin-console/internal/platform/assets/imagecdn"
	"github.com/goalinstitute/admin-console/internal/platform/requestmeta"
	"github.com/goalinstitute/admin-console/internal/platform/timeouts"
	"github.com/goalinstitute/admin-console/internal/services/admin/apiclient"
	adminstorage "github.com/goalinstitute/admin-console/internal/services/admin/integration/storage"
	"github.com/goalinstitute/admin-console/internal/services/admin/session"
	"github.com/goalinstitute/admin-console/internal/services/admin/static"
	adminsqlite "github.com/goalinstitute/admin-console/internal/services/admin/storage/sqlite"
)

// defaultSessionTTL bounds how long an idle stored session is kept.
const defaultSessionTTL = 7 * 24 * time.Hour

// sessionPurgeInterval is how often expired sqlite sessions are removed.
const sessionPurgeInterval = time.Hour

// Config defines the inputs for the admin console process.
type Config struct {
	HTTPAddr   string
	APIBaseURL string
	// SessionSecret verifies the HS256 tokens issued by the backend.
	SessionSecret string
	// SessionStore selects cookie, sqlite, or memory session storage.
	SessionStore string
	DBPath       string
	SessionTTL   time.Duration

	CookieSecure        bool
	TrustForwardedProto bool

	CDNCloudName    string
	CDNUploadPreset string
	CDNFolder       string

	ChatbotURL     string
	DemoEmail      string
	DemoPassword   string
	SearchDebounce time.Duration
	LoginInterval  time.Duration
	LoginBurst     int
	PageSize       int
}

// Server hosts the admin console.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	handler    *Handler
	// store is set only for the sqlite session medium.
	store      *adminsqlite.Store
	sessionTTL time.Duration
}

// NewServer wires the backend client, session storage, and HTTP handler.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	backend, err := apiclient.New(config.APIBaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	verifier, err := session.NewVerifier([]byte(config.SessionSecret), time.Now)
	if err != nil {
		return nil, fmt.Errorf("session verifier: %w", err)
	}
	ttl := config.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	var (
		namespaces session.Namespaces
		store      *adminsqlite.Store
	)
	switch strings.TrimSpace(config.SessionStore) {
	case SessionStoreSQLite:
		store, err = adminstorage.OpenStore(ctx, config.DBPath)
		if err != nil {
			return nil, err
		}
		namespaces = store
	case SessionStoreMemory:
		namespaces = session.NewMemoryNamespaces()
	}

	sessions, err := newSessionFactory(config.SessionStore, namespaces, verifier, backend, session.CookieOptions{
		Secure: config.CookieSecure,
		MaxAge: sessionMaxAge(ttl),
	})
	if err != nil {
		closeStore(store)
		return nil, err
	}

	handlerConfig := HandlerConfig{
		Backend:        backend,
		Sessions:       sessions.Manager,
		StaticFS:       static.FS,
		PageSize:       config.PageSize,
		SearchDebounce: config.SearchDebounce,
		LoginInterval:  config.LoginInterval,
		LoginBurst:     config.LoginBurst,
		CookieSecure:   config.CookieSecure,
		SchemePolicy:   requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto},
		DemoEmail:      config.DemoEmail,
		DemoPassword:   config.DemoPassword,
		ChatbotURL:     config.ChatbotURL,
	}
	if strings.TrimSpace(config.CDNUploadPreset) != "" {
		uploader, err := cdnupload.NewUploader(cdnupload.Config{
			CloudName:    config.CDNCloudName,
			UploadPreset: config.CDNUploadPreset,
			Folder:       config.CDNFolder,
		}, nil)
		if err != nil {
			closeStore(store)
			return nil, fmt.Errorf("cdn uploader: %w", err)
		}
		preview := imagecdn.ForCloud(config.CDNCloudName)
		handlerConfig.Uploader = uploader
		handlerConfig.PreviewCDN = &preview
	}

	handler := NewHandler(handlerConfig)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		handler:    handler,
		store:      store,
		sessionTTL: ttl,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if s.store != nil {
		s.purgeSessions(ctx)
		go s.purgeLoop(ctx)
	}

	serveErr := make(chan error, 1)
	log.Printf("admin listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops pending work and releases the session store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.handler.Close()
	closeStore(s.store)
}

func (s *Server) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purgeSessions(ctx)
		}
	}
}

// purgeSessions removes sqlite sessions idle for longer than the TTL.
func (s *Server) purgeSessions(ctx context.Context) {
	removed, err := s.store.PurgeBefore(ctx, time.Now().Add(-s.sessionTTL))
	if err != nil {
		log.Printf("admin purge sessions: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("admin purged %d idle sessions", removed)
	}
}

func closeStore(store *adminsqlite.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.Printf("close admin store: %v", err)
	}
}
