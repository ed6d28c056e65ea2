package testserver

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/brookfield/admissions/internal/domain/booking"
	"github.com/brookfield/admissions/internal/domain/slot"
	"github.com/brookfield/admissions/internal/sqlite"
	"github.com/brookfield/admissions/internal/transport"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SentNotification records one dispatcher invocation.
type SentNotification struct {
	ApplicationID string
	Status        application.Status
}

// RecordingNotifier captures dispatches for assertions.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []SentNotification
}

func (n *RecordingNotifier) Send(_ context.Context, app *application.Application, newStatus application.Status) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, SentNotification{ApplicationID: app.ID, Status: newStatus})
	return nil
}

// Sent returns a copy of the captured dispatches.
func (n *RecordingNotifier) Sent() []SentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SentNotification(nil), n.sent...)
}

// CountFor counts dispatches for one application and status.
func (n *RecordingNotifier) CountFor(applicationID string, status application.Status) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, s := range n.sent {
		if s.ApplicationID == applicationID && s.Status == status {
			count++
		}
	}
	return count
}

// TestServer runs the full stack over a temporary database.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Notifier *RecordingNotifier
}

// New builds a test server backed by a file database so concurrent requests
// share state across connections.
func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "admissions.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	accountRepo := sqlite.NewAccountRepository(db)
	applicationRepo := sqlite.NewApplicationRepository(db)
	slotRepo := sqlite.NewSlotRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	notifier := &RecordingNotifier{}

	auditSvc := audit.NewService(auditRepo, nil)
	applicationSvc := application.NewService(applicationRepo, notifier, auditSvc, nil)
	slotSvc := slot.NewService(slotRepo, applicationRepo, applicationSvc, auditSvc, nil)
	bookingSvc := booking.NewService(slotRepo, applicationRepo, applicationSvc, auditSvc, nil)

	gate := transport.NewAccountGate(accountRepo)
	router := transport.NewServer(
		applicationSvc,
		slotSvc,
		bookingSvc,
		auditSvc,
		transport.AuthMiddleware(gate),
		nil,
	)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Notifier: notifier,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddAccount provisions an account for the given bearer token and returns
// its id.
func (ts *TestServer) AddAccount(t *testing.T, token, email string, admin bool) string {
	t.Helper()

	repo := sqlite.NewAccountRepository(ts.DB)
	id := uuid.NewString()
	err := repo.Create(context.Background(), transport.HashToken(token), &auth.Account{
		ID:    id,
		Email: email,
		Admin: admin,
	})
	require.NoError(t, err)
	return id
}
