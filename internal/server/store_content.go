package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rehletna/trivia/internal/trivia"
)

// Content overrides are stored one row per category in content_overrides,
// keyed by the category name, holding the full replacement list as JSON.
// A category without a row serves its compiled-in defaults.

// effectiveList returns the list served for a category: the override when
// one exists and parses, otherwise the defaults. A row that fails to
// unmarshal is treated as absent rather than breaking the category.
func effectiveList[T trivia.Item](ctx context.Context, s *DocStore, cat trivia.Category, defaults []T) ([]T, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM content_overrides WHERE id = ?`, string(cat),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return defaults, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []T
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return defaults, false, nil
	}
	return items, true, nil
}

// saveOverride persists items as the override list for a category.
func saveOverride[T trivia.Item](ctx context.Context, s *DocStore, cat trivia.Category, items []T) error {
	if items == nil {
		items = []T{}
	}
	return s.put(ctx, "content_overrides", string(cat), items)
}

// ClearOverride removes a category's override, restoring the defaults.
// Clearing a category that was never overridden is a no-op.
func (s *DocStore) ClearOverride(ctx context.Context, cat trivia.Category) error {
	err := s.del(ctx, "content_overrides", string(cat))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Typed accessors, one per editable category.

func (s *DocStore) Riddles(ctx context.Context) ([]trivia.Riddle, bool, error) {
	return effectiveList(ctx, s, trivia.Riddles, trivia.DefaultRiddles)
}

func (s *DocStore) Verses(ctx context.Context) ([]trivia.VerseChallenge, bool, error) {
	return effectiveList(ctx, s, trivia.Verses, trivia.DefaultVerses)
}

func (s *DocStore) LinksList(ctx context.Context) ([]trivia.LinkChallenge, bool, error) {
	return effectiveList(ctx, s, trivia.Links, trivia.DefaultLinks)
}

func (s *DocStore) QuotesList(ctx context.Context) ([]trivia.QuoteChallenge, bool, error) {
	return effectiveList(ctx, s, trivia.Quotes, trivia.DefaultQuotes)
}

func (s *DocStore) MathList(ctx context.Context) ([]trivia.MathQuestion, bool, error) {
	return effectiveList(ctx, s, trivia.Math, trivia.DefaultMath)
}

func (s *DocStore) PhotoList(ctx context.Context) ([]trivia.PhotoTask, bool, error) {
	return effectiveList(ctx, s, trivia.Photos, trivia.DefaultPhotoTasks)
}

// versesForLevel filters the effective verse list down to one level,
// preserving order.
func versesForLevel(all []trivia.VerseChallenge, level int) []trivia.VerseChallenge {
	var out []trivia.VerseChallenge
	for _, v := range all {
		if v.Level == level {
			out = append(out, v)
		}
	}
	return out
}
