package ports

import "context"

//go:generate mockgen -source=health.go -destination=mocks/health_mock.go -package=mocks

// HealthChecker reports on one external dependency for GET /health.
type HealthChecker interface {
	// Ping returns nil when the dependency answers.
	Ping(ctx context.Context) error
	// Name is the dependency's label in the health report.
	Name() string
}
