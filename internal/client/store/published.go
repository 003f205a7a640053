package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/repositories/records"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

const PublishedKey = "local_published_blueprints"

// LocalRecord is a blueprint published while the backend was unreachable.
// Entry never carries attachments. Structure holds the authored steps so the
// blueprint can be synced and shown in the calendar later.
type LocalRecord struct {
	Entry       models.CatalogEntry
	Structure   *models.ProjectBlueprint
	PublishedAt time.Time
}

// storedEntry is the string-safe form of a catalog entry: principal, price
// and timestamp are kept as strings.
type storedEntry struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Creator     string       `json:"creator"`
	Price       string       `json:"price"`
	IsFree      bool         `json:"isFree"`
	CreatedAt   string       `json:"createdAt"`
	Theme       models.Theme `json:"theme"`
	Tags        []string     `json:"tags"`
}

type storedRecord struct {
	Blueprint   storedEntry              `json:"blueprint"`
	Structure   *models.ProjectBlueprint `json:"structure,omitempty"`
	PublishedAt int64                    `json:"publishedAt"`
}

func toStored(r LocalRecord) storedRecord {
	e := r.Entry
	tags := slices.Clone(e.Tags)
	if tags == nil {
		tags = []string{}
	}
	return storedRecord{
		Blueprint: storedEntry{
			ID:          e.ID,
			Description: e.Description,
			Creator:     e.Creator.String(),
			Price:       strconv.FormatUint(e.Price, 10),
			IsFree:      e.IsFree,
			CreatedAt:   strconv.FormatInt(e.CreatedAt.UnixNano(), 10),
			Theme:       e.Theme,
			Tags:        tags,
		},
		Structure:   r.Structure,
		PublishedAt: r.PublishedAt.UnixMilli(),
	}
}

func fromStored(s storedRecord) (LocalRecord, error) {
	b := s.Blueprint
	if b.ID == "" {
		return LocalRecord{}, fmt.Errorf("record without id")
	}

	creator, err := models.ParsePrincipal(b.Creator)
	if err != nil {
		return LocalRecord{}, fmt.Errorf("record %s: %w", b.ID, err)
	}
	price, err := strconv.ParseUint(b.Price, 10, 64)
	if err != nil {
		return LocalRecord{}, fmt.Errorf("record %s: price: %w", b.ID, err)
	}
	createdAt, err := strconv.ParseInt(b.CreatedAt, 10, 64)
	if err != nil {
		return LocalRecord{}, fmt.Errorf("record %s: createdAt: %w", b.ID, err)
	}

	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}

	return LocalRecord{
		Entry: models.CatalogEntry{
			ID:          b.ID,
			Description: b.Description,
			Creator:     creator,
			Price:       price,
			IsFree:      b.IsFree,
			CreatedAt:   time.Unix(0, createdAt),
			Theme:       b.Theme,
			Tags:        tags,
		},
		Structure:   s.Structure,
		PublishedAt: time.UnixMilli(s.PublishedAt),
	}, nil
}

// PublishedStore is the list of offline-published blueprints.
type PublishedStore struct {
	mu     sync.Mutex
	repo   records.Repository
	logger logging.Logger
}

func NewPublishedStore(repo records.Repository, logger logging.Logger) *PublishedStore {
	return &PublishedStore{repo: repo, logger: logger}
}

// Save stores rec with its attachments dropped. A record with the same id is
// replaced in place; otherwise rec is appended.
func (s *PublishedStore) Save(ctx context.Context, rec LocalRecord) error {
	rec.Entry.Image = nil
	rec.Entry.BannerImage = nil

	return s.rewrite(ctx, func(list []storedRecord) []storedRecord {
		stored := toStored(rec)
		i := slices.IndexFunc(list, func(r storedRecord) bool { return r.Blueprint.ID == rec.Entry.ID })
		if i >= 0 {
			list[i] = stored
			return list
		}
		return append(list, stored)
	})
}

// Remove drops the records with the given ids.
func (s *PublishedStore) Remove(ctx context.Context, ids ...string) error {
	return s.rewrite(ctx, func(list []storedRecord) []storedRecord {
		return slices.DeleteFunc(list, func(r storedRecord) bool { return slices.Contains(ids, r.Blueprint.ID) })
	})
}

func (s *PublishedStore) List(ctx context.Context) ([]LocalRecord, error) {
	raw, found, err := s.repo.Get(ctx, PublishedKey)
	if err != nil {
		return nil, wrap("read", PublishedKey, err)
	}
	if !found {
		return []LocalRecord{}, nil
	}

	stored := s.decode(ctx, raw)
	out := make([]LocalRecord, 0, len(stored))
	for _, st := range stored {
		rec, err := fromStored(st)
		if err != nil {
			s.logger.Warn(ctx, "skipping unreadable local blueprint", "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *PublishedStore) Get(ctx context.Context, id string) (LocalRecord, bool, error) {
	list, err := s.List(ctx)
	if err != nil {
		return LocalRecord{}, false, err
	}
	for _, r := range list {
		if r.Entry.ID == id {
			return r, true, nil
		}
	}
	return LocalRecord{}, false, nil
}

func (s *PublishedStore) IDs(ctx context.Context) ([]string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.Entry.ID)
	}
	return ids, nil
}

func (s *PublishedStore) Contains(ctx context.Context, id string) (bool, error) {
	_, found, err := s.Get(ctx, id)
	return found, err
}

func (s *PublishedStore) rewrite(ctx context.Context, fn func([]storedRecord) []storedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Update(ctx, PublishedKey, func(current string, found bool) (string, error) {
		list := []storedRecord{}
		if found {
			list = s.decode(ctx, current)
		}
		list = fn(list)
		if list == nil {
			list = []storedRecord{}
		}

		b, err := json.Marshal(list)
		return string(b), err
	})
	return wrap("write", PublishedKey, err)
}

// decode parses the stored list. Elements that are not valid records are
// skipped; an unparsable list reads as empty.
func (s *PublishedStore) decode(ctx context.Context, raw string) []storedRecord {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn(ctx, "corrupt local blueprint list, using empty", "key", PublishedKey, "error", err)
		return []storedRecord{}
	}

	out := make([]storedRecord, 0, len(items))
	for _, item := range items {
		var rec storedRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			s.logger.Warn(ctx, "skipping corrupt local blueprint", "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}
