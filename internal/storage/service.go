package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/skytrips/search-core/internal/domain"
)

// MaxRecentSearches caps the recency list.
const MaxRecentSearches = 6

// airportsRecord is the persisted shape of the last committed
// origin/destination pair, used to prefill the fields on reload.
type airportsRecord struct {
	Origin      domain.Location `json:"origin"`
	Destination domain.Location `json:"destination"`
}

// Service exposes typed accessors over the flat KV store. Read failures
// and corrupt payloads degrade to defaults; they are logged, never
// surfaced, so a damaged store can never break form initialization.
type Service struct {
	kv  KV
	log *slog.Logger
}

// NewService wraps the given KV. A nil logger falls back to slog.Default.
func NewService(kv KV, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{kv: kv, log: log}
}

// RecentSearches returns the persisted recency list, most recent first,
// collapsed on the dedupe tuple and truncated to MaxRecentSearches.
// Corrupt or missing data yields an empty list.
func (s *Service) RecentSearches() []domain.RecentSearch {
	raw, ok, err := s.kv.Get(KeyRecentSearches)
	if err != nil {
		s.log.Warn("recent searches read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var list []domain.RecentSearch
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.log.Warn("recent searches payload corrupt, discarding", "error", err)
		return nil
	}
	return dedupe(list)
}

// SaveRecentSearch prepends a record for the accepted request, collapses
// duplicates on the identity tuple, truncates to MaxRecentSearches, and
// writes the list back.
func (s *Service) SaveRecentSearch(rec domain.RecentSearch) error {
	list := append([]domain.RecentSearch{rec}, s.RecentSearches()...)
	list = dedupe(list)

	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("storage.Service.SaveRecentSearch: marshal: %w", err)
	}
	if err := s.kv.Set(KeyRecentSearches, string(raw)); err != nil {
		return fmt.Errorf("storage.Service.SaveRecentSearch: %w", err)
	}
	return nil
}

// dedupe keeps the first (most recent) entry per identity tuple and
// truncates to the cap.
func dedupe(list []domain.RecentSearch) []domain.RecentSearch {
	seen := make(map[string]bool, len(list))
	out := list[:0:0]
	for _, rec := range list {
		key := rec.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
		if len(out) == MaxRecentSearches {
			break
		}
	}
	return out
}

// Currency returns the persisted currency, or fallback when absent or
// unreadable.
func (s *Service) Currency(fallback string) string {
	v, ok, err := s.kv.Get(KeyCurrency)
	if err != nil {
		s.log.Warn("currency read failed", "error", err)
		return fallback
	}
	if !ok || v == "" {
		return fallback
	}
	return v
}

// SetCurrency persists the selected currency.
func (s *Service) SetCurrency(code string) error {
	if err := s.kv.Set(KeyCurrency, code); err != nil {
		return fmt.Errorf("storage.Service.SetCurrency: %w", err)
	}
	return nil
}

// Airports returns the last committed origin/destination pair. Either
// side may be the zero Location.
func (s *Service) Airports() (origin, destination domain.Location) {
	raw, ok, err := s.kv.Get(KeyAirports)
	if err != nil {
		s.log.Warn("airports read failed", "error", err)
		return domain.Location{}, domain.Location{}
	}
	if !ok {
		return domain.Location{}, domain.Location{}
	}

	var rec airportsRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn("airports payload corrupt, discarding", "error", err)
		return domain.Location{}, domain.Location{}
	}
	return rec.Origin, rec.Destination
}

// SetAirports persists the committed origin/destination pair for prefill.
func (s *Service) SetAirports(origin, destination domain.Location) error {
	raw, err := json.Marshal(airportsRecord{Origin: origin, Destination: destination})
	if err != nil {
		return fmt.Errorf("storage.Service.SetAirports: marshal: %w", err)
	}
	if err := s.kv.Set(KeyAirports, string(raw)); err != nil {
		return fmt.Errorf("storage.Service.SetAirports: %w", err)
	}
	return nil
}
