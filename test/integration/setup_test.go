package integration

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/clinicrecords/clinic/internal/domain/billing"
	"github.com/clinicrecords/clinic/internal/domain/chart"
	"github.com/clinicrecords/clinic/internal/domain/diagnostics"
	"github.com/clinicrecords/clinic/internal/domain/identity"
	"github.com/clinicrecords/clinic/internal/domain/scheduling"
	"github.com/clinicrecords/clinic/internal/platform/db"
	"github.com/clinicrecords/clinic/internal/platform/web"
	"github.com/clinicrecords/clinic/migrations"
)

// testDB holds the shared database infrastructure for integration tests.
type testDB struct {
	Pool    *pgxpool.Pool
	ConnStr string
}

// globalDB is initialized once in TestMain and shared by every test.
var globalDB *testDB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(0)
	}

	ctx := context.Background()
	tdb, cleanup, err := setupPostgresContainer(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup postgres container: %v\n", err)
		os.Exit(1)
	}

	globalDB = tdb
	code := m.Run()
	cleanup()
	os.Exit(code)
}

// setupPostgresContainer starts postgres:16-alpine, connects a pool and
// applies the compiled-in migrations.
func setupPostgresContainer(ctx context.Context) (*testDB, func(), error) {
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("clinictest"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("start container: %w", err)
	}
	terminate := func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate container: %v\n", err)
		}
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("connection string: %w", err)
	}

	pool, err := db.NewPool(ctx, connStr, 5, 1)
	if err != nil {
		terminate()
		return nil, nil, err
	}

	if _, err := db.NewMigrator(pool, migrations.FS, zerolog.Nop()).Up(ctx); err != nil {
		pool.Close()
		terminate()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return &testDB{Pool: pool, ConnStr: connStr}, func() {
		pool.Close()
		terminate()
	}, nil
}

// app is the clinic wired against the test database.
type app struct {
	echo        *echo.Echo
	identity    *identity.Service
	scheduling  *scheduling.Service
	diagnostics *diagnostics.Service
	billing     *billing.Service
}

func newApp(pool *pgxpool.Pool) *app {
	e := echo.New()
	e.HTTPErrorHandler = web.ErrorHandler(zerolog.Nop())

	identitySvc := identity.NewService(identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool))
	schedulingSvc := scheduling.NewService(scheduling.NewAppointmentRepoPG(pool), identitySvc)
	diagnosticsSvc := diagnostics.NewService(diagnostics.NewLabResultRepoPG(pool), identitySvc)
	billingSvc := billing.NewService(
		billing.NewBillRepoPG(pool),
		billing.NewBillItemRepoPG(pool),
		db.NewTxRunner(pool),
		identitySvc,
		schedulingSvc,
	)

	g := e.Group("")
	identity.NewHandler(identitySvc).RegisterRoutes(g)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(g)
	diagnostics.NewHandler(diagnosticsSvc).RegisterRoutes(g)
	billing.NewHandler(billingSvc).RegisterRoutes(g)
	chart.NewHandler(chart.NewService(identitySvc, schedulingSvc, diagnosticsSvc, billingSvc)).RegisterRoutes(g)

	return &app{
		echo:        e,
		identity:    identitySvc,
		scheduling:  schedulingSvc,
		diagnostics: diagnosticsSvc,
		billing:     billingSvc,
	}
}

func (a *app) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (a *app) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func createTestPatient(t *testing.T, ctx context.Context, a *app, name string) *identity.Patient {
	t.Helper()
	p := &identity.Patient{Name: name}
	if err := a.identity.CreatePatient(ctx, p); err != nil {
		t.Fatalf("create test patient: %v", err)
	}
	return p
}

func createTestDoctor(t *testing.T, ctx context.Context, a *app, name string) *identity.Doctor {
	t.Helper()
	d := &identity.Doctor{Name: name}
	if err := a.identity.CreateDoctor(ctx, d); err != nil {
		t.Fatalf("create test doctor: %v", err)
	}
	return d
}

func countRows(t *testing.T, ctx context.Context, query string, args ...any) int {
	t.Helper()
	var n int
	if err := globalDB.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func ptrStr(s string) *string { return &s }
