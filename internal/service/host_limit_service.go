//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	"castmind/backend/pkg/logger"
)

var hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// IsValidHost reports whether host is a bare hostname or IP address, without scheme, port or path.
func IsValidHost(host string) bool {
	if host == "" || len(host) > 253 {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	return hostnamePattern.MatchString(host)
}

type HostLimitDTO struct {
	ID              string `json:"id"`
	Host            string `json:"host"`
	IntervalSeconds int    `json:"intervalSeconds"`
}

// HostLimitService manages the minimum spacing between two requests to the same host.
// The fetcher reads it through GetIntervalDuration before every attempt.
type HostLimitService interface {
	SetInterval(ctx context.Context, host string, intervalSeconds int) error
	GetInterval(ctx context.Context, host string) int
	GetIntervalDuration(ctx context.Context, host string) time.Duration
	DeleteInterval(ctx context.Context, host string) error
	List(ctx context.Context) ([]HostLimitDTO, error)
}

type hostLimitService struct {
	repo repository.HostLimitRepository
}

func NewHostLimitService(repo repository.HostLimitRepository) HostLimitService {
	return &hostLimitService{repo: repo}
}

func normalizeHost(host string) string {
	return strings.ToLower(strings.TrimSpace(host))
}

func (s *hostLimitService) SetInterval(ctx context.Context, host string, intervalSeconds int) error {
	host = normalizeHost(host)
	if !IsValidHost(host) {
		return fmt.Errorf("%w: host %q", ErrInvalid, host)
	}
	if intervalSeconds < 0 {
		intervalSeconds = 0
	}

	existing, err := s.repo.GetByHost(ctx, host)
	if err != nil {
		return err
	}
	if existing == nil {
		if _, err := s.repo.Create(ctx, host, intervalSeconds); err != nil {
			return err
		}
	} else if err := s.repo.Update(ctx, host, intervalSeconds); err != nil {
		return err
	}

	logger.Info("host limit set", "module", "service", "action", "update", "resource", "host_limit", "result", "ok", "host", host, "interval_seconds", intervalSeconds)
	return nil
}

// GetInterval returns 0 when the host has no limit or the lookup fails.
func (s *hostLimitService) GetInterval(ctx context.Context, host string) int {
	limit, err := s.repo.GetByHost(ctx, normalizeHost(host))
	if err != nil {
		logger.Warn("host limit lookup failed", "module", "service", "action", "get", "resource", "host_limit", "result", "failed", "host", host, "error", err)
		return 0
	}
	if limit == nil {
		return 0
	}
	return limit.IntervalSeconds
}

func (s *hostLimitService) GetIntervalDuration(ctx context.Context, host string) time.Duration {
	return time.Duration(s.GetInterval(ctx, host)) * time.Second
}

func (s *hostLimitService) DeleteInterval(ctx context.Context, host string) error {
	if err := s.repo.Delete(ctx, normalizeHost(host)); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *hostLimitService) List(ctx context.Context) ([]HostLimitDTO, error) {
	limits, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]HostLimitDTO, 0, len(limits))
	for _, l := range limits {
		dtos = append(dtos, toHostLimitDTO(l))
	}
	return dtos, nil
}

func toHostLimitDTO(l model.HostLimit) HostLimitDTO {
	return HostLimitDTO{
		ID:              strconv.FormatInt(l.ID, 10),
		Host:            l.Host,
		IntervalSeconds: l.IntervalSeconds,
	}
}
