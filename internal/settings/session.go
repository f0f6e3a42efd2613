package settings

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// StartSession records the session start and rewrites lastAccessTime.
// Calling it during an active session restarts the session.
func (s *Store) StartSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if err := s.kv.SetInt64(keyLastOpenTime, now.UnixMilli()); err != nil {
		return errors.Wrap(err, "failed to store session start")
	}

	if err := s.kv.SetString(keyLastAccess, now.Format(LastAccessLayout)); err != nil {
		return errors.Wrap(err, "failed to store last access time")
	}

	s.sessionStart = now
	s.active = true

	log.Debug().Time("start", now).Msg("session started")

	return nil
}

// EndSession adds the time since StartSession to totalUsageTime.
// Without a StartSession in the lifetime of this Store nothing is added.
func (s *Store) EndSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		log.Warn().Msg("session ended without being started, usage time unchanged")

		return nil
	}

	elapsed := s.now().Sub(s.sessionStart).Milliseconds()
	if elapsed < 0 {
		log.Warn().Int64("elapsedMs", elapsed).Msg("clock went backwards during session, counting zero")

		elapsed = 0
	}

	total, err := s.kv.GetInt64(keyTotalUsageTime, DefaultTotalUsageTime)
	if err != nil {
		return errors.Wrap(err, "failed to read total usage time")
	}

	if err = s.kv.SetInt64(keyTotalUsageTime, total+elapsed); err != nil {
		return errors.Wrap(err, "failed to store total usage time")
	}

	s.active = false

	sessionDuration.Observe(float64(elapsed) / 1000) //nolint:mnd
	log.Debug().Int64("elapsedMs", elapsed).Int64("totalMs", total+elapsed).Msg("session ended")

	return nil
}

// SessionActive reports whether StartSession was called without a matching EndSession.
func (s *Store) SessionActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}
