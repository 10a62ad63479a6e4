package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/crateloop/steamshelf/internal/model"
	"github.com/crateloop/steamshelf/internal/steam"
)

const (
	// StalenessThreshold is the minimum age of a record's last sync before it
	// is eligible for another fetch. Quota protection, not correctness.
	StalenessThreshold = 10 * time.Second

	// MaxBatchSize mirrors the authority's per-call identifier ceiling.
	MaxBatchSize = steam.MaxBatchSize
)

// Fetcher is the slice of the remote authority the synchroniser needs.
type Fetcher interface {
	GetPlayerSummaries(ctx context.Context, ids []model.SteamID) ([]steam.PlayerSummary, error)
	GetPlayerBans(ctx context.Context, ids []model.SteamID) ([]steam.PlayerBans, error)
}

// Database persists one applied record at a time. The apply loop is the only
// writer; last write wins.
type Database interface {
	UpdateAccountSync(account *model.Account) error
}

type service struct {
	fetcher Fetcher
	db      Database
	now     func() time.Time
}

func New(fetcher Fetcher, db Database) *service {
	return &service{fetcher: fetcher, db: db, now: time.Now}
}

// RefreshOne re-fetches one account's profile and ban data and applies it.
// The returned bool reports whether the account still exists remotely; false
// means the caller should treat the record as orphaned (it is not deleted).
func (s *service) RefreshOne(ctx context.Context, account *model.Account) (bool, error) {
	ids := []model.SteamID{account.SteamID}

	summaries, bans, err := s.fetchAll(ctx, [][]model.SteamID{ids})
	if err != nil {
		return false, err
	}

	byID := map[model.SteamID]*model.Account{account.SteamID: account}
	if err := s.applySummaries(byID, summaries); err != nil {
		return false, err
	}
	if err := s.applyBans(byID, bans); err != nil {
		return false, err
	}

	return len(summaries[0]) > 0 && len(bans[0]) > 0, nil
}

// RefreshMany refreshes every stale account in the given collection. Fetches
// for all batches and both payload types run concurrently; results are applied
// afterwards by a single writer, summaries first, then bans. Entries whose
// record vanished between filter and apply are skipped.
func (s *service) RefreshMany(ctx context.Context, accounts []*model.Account) error {
	stale := s.filterStale(accounts)
	if len(stale) == 0 {
		return nil
	}

	ids := make([]model.SteamID, len(stale))
	byID := make(map[model.SteamID]*model.Account, len(stale))
	for i, account := range stale {
		ids[i] = account.SteamID
		byID[account.SteamID] = account
	}

	batches := batchIDs(ids, MaxBatchSize)

	summaries, bans, err := s.fetchAll(ctx, batches)
	if err != nil {
		return err
	}

	if err := s.applySummaries(byID, summaries); err != nil {
		return err
	}
	return s.applyBans(byID, bans)
}

func (s *service) filterStale(accounts []*model.Account) []*model.Account {
	cutoff := s.now().Add(-StalenessThreshold)
	stale := make([]*model.Account, 0, len(accounts))
	for _, account := range accounts {
		if account.LastSyncAt == nil || account.LastSyncAt.Before(cutoff) {
			stale = append(stale, account)
		}
	}
	return stale
}

// fetchAll launches one summaries fetch and one bans fetch per batch, all
// concurrent, and joins them before returning. The first error wins; no apply
// happens on a failed fetch round.
func (s *service) fetchAll(ctx context.Context, batches [][]model.SteamID) ([][]steam.PlayerSummary, [][]steam.PlayerBans, error) {
	summaries := make([][]steam.PlayerSummary, len(batches))
	bans := make([][]steam.PlayerBans, len(batches))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i, batch := range batches {
		wg.Add(2)
		go func(i int, batch []model.SteamID) {
			defer wg.Done()
			result, err := s.fetcher.GetPlayerSummaries(ctx, batch)
			if err != nil {
				fail(fmt.Errorf("fetching summaries batch %d: %w", i, err))
				return
			}
			summaries[i] = result
		}(i, batch)
		go func(i int, batch []model.SteamID) {
			defer wg.Done()
			result, err := s.fetcher.GetPlayerBans(ctx, batch)
			if err != nil {
				fail(fmt.Errorf("fetching bans batch %d: %w", i, err))
				return
			}
			bans[i] = result
		}(i, batch)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, nil, firstErr
	}
	return summaries, bans, nil
}

func (s *service) applySummaries(byID map[model.SteamID]*model.Account, batches [][]steam.PlayerSummary) error {
	for _, batch := range batches {
		for i := range batch {
			entry := &batch[i]
			id, err := model.ParseSteamID(entry.SteamID)
			if err != nil {
				return fmt.Errorf("parsing summary identifier %q: %w", entry.SteamID, err)
			}
			account, ok := byID[id]
			if !ok {
				continue
			}
			if err := applySummary(account, entry, s.now()); err != nil {
				return err
			}
			if err := s.db.UpdateAccountSync(account); err != nil {
				return fmt.Errorf("persisting account %s: %w", account.ID, err)
			}
		}
	}
	return nil
}

func (s *service) applyBans(byID map[model.SteamID]*model.Account, batches [][]steam.PlayerBans) error {
	for _, batch := range batches {
		for i := range batch {
			entry := &batch[i]
			id, err := model.ParseSteamID(entry.SteamID)
			if err != nil {
				return fmt.Errorf("parsing ban identifier %q: %w", entry.SteamID, err)
			}
			account, ok := byID[id]
			if !ok {
				continue
			}
			if err := applyBan(account, entry, s.now()); err != nil {
				return err
			}
			if err := s.db.UpdateAccountSync(account); err != nil {
				return fmt.Errorf("persisting account %s: %w", account.ID, err)
			}
		}
	}
	return nil
}

// batchIDs partitions ids into ordered groups of at most size.
func batchIDs(ids []model.SteamID, size int) [][]model.SteamID {
	batches := make([][]model.SteamID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
