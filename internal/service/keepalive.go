package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"hourline.app/server/internal/observability"
	"hourline.app/server/internal/store"
)

const keepalivePingTimeout = 5 * time.Second

// Pinger is a dependency that can be checked for liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger adapts a go-redis client to Pinger.
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

type DependencyStatus struct {
	OK        bool   `json:"ok"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type KeepaliveReport struct {
	Database DependencyStatus `json:"database"`
	Cache    DependencyStatus `json:"cache"`
}

func (r KeepaliveReport) Healthy() bool {
	return r.Database.OK && r.Cache.OK
}

type CleanupReport struct {
	ExpiredSessionsDeleted bool `json:"expired_sessions_deleted"`
	InvitationsExpired     bool `json:"invitations_expired"`
}

type KeepaliveService interface {
	// Ping touches the database and the cache so neither is suspended for inactivity.
	Ping(ctx context.Context) KeepaliveReport
	// Cleanup deletes expired sessions and marks stale invitations expired.
	Cleanup(ctx context.Context) (CleanupReport, error)
}

type keepaliveService struct {
	database     Pinger
	cache        Pinger
	sessionStore store.SessionStore
	invitations  InvitationService
}

func NewKeepaliveService(database, cache Pinger, sessionStore store.SessionStore, invitations InvitationService) KeepaliveService {
	return &keepaliveService{
		database:     database,
		cache:        cache,
		sessionStore: sessionStore,
		invitations:  invitations,
	}
}

func (s *keepaliveService) Ping(ctx context.Context) KeepaliveReport {
	report := KeepaliveReport{
		Database: ping(ctx, "database", s.database),
		Cache:    ping(ctx, "cache", s.cache),
	}
	if !report.Healthy() {
		slog.WarnContext(ctx, "keepalive found unhealthy dependency",
			"database_ok", report.Database.OK,
			"cache_ok", report.Cache.OK,
		)
	}
	return report
}

func ping(ctx context.Context, name string, p Pinger) DependencyStatus {
	if p == nil {
		observability.RecordKeepalive(name, false)
		return DependencyStatus{Error: "not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, keepalivePingTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	status := DependencyStatus{
		OK:        err == nil,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		status.Error = err.Error()
		slog.ErrorContext(ctx, "keepalive ping failed", "dependency", name, "error", err)
	}
	observability.RecordKeepalive(name, status.OK)
	return status
}

func (s *keepaliveService) Cleanup(ctx context.Context) (CleanupReport, error) {
	var report CleanupReport
	if err := s.sessionStore.DeleteExpired(ctx); err != nil {
		return report, fmt.Errorf("deleting expired sessions: %w", err)
	}
	report.ExpiredSessionsDeleted = true

	if err := s.invitations.ExpireOld(ctx); err != nil {
		return report, err
	}
	report.InvitationsExpired = true

	slog.InfoContext(ctx, "cleanup finished")
	return report, nil
}
