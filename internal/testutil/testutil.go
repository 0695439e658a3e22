package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/freshtrack/freshtrack/internal/api"
	"github.com/freshtrack/freshtrack/internal/config"
	"github.com/freshtrack/freshtrack/internal/domain"
	"github.com/freshtrack/freshtrack/internal/repository"
	repoPostgres "github.com/freshtrack/freshtrack/internal/repository/postgres"
	"github.com/freshtrack/freshtrack/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_freshtrack"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate container: %v", err)
		}
	})

	return testDB
}

// Truncate clears all tables between tests
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"products",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
		ResetTokenTTL:      10 * time.Minute,
		AppBaseURL:         "http://localhost:8080",
	}
}

// SentMail is one message captured by FakeMailer
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer captures outbound mail instead of delivering it
type FakeMailer struct {
	mu   sync.Mutex
	sent []SentMail
}

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{}
}

func (m *FakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns a copy of all captured messages
func (m *FakeMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.sent...)
}

// Reset discards captured messages
func (m *FakeMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Mailer   *FakeMailer
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(testDB.DB)
	fakeMailer := NewFakeMailer()
	services := service.NewServices(repos, fakeMailer, cfg)
	router := api.NewRouter(services)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Mailer:   fakeMailer,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
