package cache

import (
	"context"
	"strconv"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/history"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/result"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/team"
	"github.com/wolfpack-fantasy/leaguehub/internal/domain/writeup"
	basecache "github.com/wolfpack-fantasy/leaguehub/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "standings:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "standings:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	if err := r.next.Upsert(ctx, t); err != nil {
		return err
	}
	r.cache.Delete(ctx, "standings:list")
	r.cache.Delete(ctx, "standings:id:"+t.ID)
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type ResultRepository struct {
	next  result.Repository
	cache *basecache.Store
}

func NewResultRepository(next result.Repository, cache *basecache.Store) *ResultRepository {
	return &ResultRepository{next: next, cache: cache}
}

func (r *ResultRepository) List(ctx context.Context) ([]result.Result, error) {
	v, err := r.cache.GetOrLoad(ctx, "results:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]result.Result(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]result.Result)
	return append([]result.Result(nil), items...), nil
}

func (r *ResultRepository) ListByTeam(ctx context.Context, teamID string) ([]result.Result, error) {
	key := "results:team:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]result.Result(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]result.Result)
	return append([]result.Result(nil), items...), nil
}

func (r *ResultRepository) ListByWeek(ctx context.Context, week int) ([]result.Result, error) {
	key := "results:week:" + strconv.Itoa(week)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByWeek(ctx, week)
		if err != nil {
			return nil, err
		}
		return append([]result.Result(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]result.Result)
	return append([]result.Result(nil), items...), nil
}

func (r *ResultRepository) Replace(ctx context.Context, res result.Result) error {
	if err := r.next.Replace(ctx, res); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "results:")
	return nil
}

func (r *ResultRepository) SetTopPoints(ctx context.Context, week int, teamIDs []string) error {
	if err := r.next.SetTopPoints(ctx, week, teamIDs); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "results:")
	return nil
}

func (r *ResultRepository) Weeks(ctx context.Context) ([]int, error) {
	v, err := r.cache.GetOrLoad(ctx, "results:weeks", func(ctx context.Context) (any, error) {
		weeks, err := r.next.Weeks(ctx)
		if err != nil {
			return nil, err
		}
		return append([]int(nil), weeks...), nil
	})
	if err != nil {
		return nil, err
	}

	weeks, _ := v.([]int)
	return append([]int(nil), weeks...), nil
}

type WriteupRepository struct {
	next  writeup.Repository
	cache *basecache.Store
}

func NewWriteupRepository(next writeup.Repository, cache *basecache.Store) *WriteupRepository {
	return &WriteupRepository{next: next, cache: cache}
}

func (r *WriteupRepository) List(ctx context.Context) ([]writeup.Writeup, error) {
	v, err := r.cache.GetOrLoad(ctx, "writeups:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]writeup.Writeup(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]writeup.Writeup)
	return append([]writeup.Writeup(nil), items...), nil
}

func (r *WriteupRepository) Latest(ctx context.Context) (writeup.Writeup, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "writeups:latest", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Latest(ctx)
		if err != nil {
			return nil, err
		}
		return cachedLatestWriteup{value: item, exists: exists}, nil
	})
	if err != nil {
		return writeup.Writeup{}, false, err
	}

	cached, _ := v.(cachedLatestWriteup)
	return cached.value, cached.exists, nil
}

func (r *WriteupRepository) Create(ctx context.Context, w writeup.Writeup) (writeup.Writeup, error) {
	created, err := r.next.Create(ctx, w)
	if err != nil {
		return writeup.Writeup{}, err
	}
	r.cache.DeletePrefix(ctx, "writeups:")
	return created, nil
}

type cachedLatestWriteup struct {
	value  writeup.Writeup
	exists bool
}

type HistoryRepository struct {
	next  history.Repository
	cache *basecache.Store
}

func NewHistoryRepository(next history.Repository, cache *basecache.Store) *HistoryRepository {
	return &HistoryRepository{next: next, cache: cache}
}

func (r *HistoryRepository) List(ctx context.Context) ([]history.Record, error) {
	v, err := r.cache.GetOrLoad(ctx, "history:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]history.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]history.Record)
	return append([]history.Record(nil), items...), nil
}

func (r *HistoryRepository) Upsert(ctx context.Context, rec history.Record) error {
	if err := r.next.Upsert(ctx, rec); err != nil {
		return err
	}
	r.cache.Delete(ctx, "history:list")
	return nil
}
