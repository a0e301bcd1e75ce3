package checkout

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenStore persists checkout tokens. MarkCompleted and MarkFailed are
// conditional transitions: they report whether this call actually moved the
// row out of pending, which is what guards the one-time notification.
type TokenStore interface {
	Save(ctx context.Context, tok *CheckoutToken) error
	FindByToken(ctx context.Context, token string) (*CheckoutToken, error)
	MarkCompleted(ctx context.Context, token string, raw []byte) (bool, error)
	MarkFailed(ctx context.Context, token string, raw []byte) (bool, error)
	RecordConfirmEvent(ctx context.Context, ev *ConfirmEvent) error
}

type GormTokenStore struct {
	db *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore { return &GormTokenStore{db: db} }

// Save upserts on the token primary key: the latest checkout for a reference
// supersedes any prior one, including a still-pending token.
func (s *GormTokenStore) Save(ctx context.Context, tok *CheckoutToken) error {
	now := time.Now()
	if tok.CreatedAt.IsZero() {
		tok.CreatedAt = now
	}
	tok.UpdatedAt = now
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(tok).Error
}

func (s *GormTokenStore) FindByToken(ctx context.Context, token string) (*CheckoutToken, error) {
	var tok CheckoutToken
	err := s.db.WithContext(ctx).First(&tok, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownToken
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// MarkCompleted is a compare-and-set: only a pending row transitions, and only
// one concurrent caller observes true. Completed is terminal.
func (s *GormTokenStore) MarkCompleted(ctx context.Context, token string, raw []byte) (bool, error) {
	return s.transition(ctx, token, StatusCompleted, raw)
}

// MarkFailed transitions pending -> failed; an already-failed or completed row
// is left untouched.
func (s *GormTokenStore) MarkFailed(ctx context.Context, token string, raw []byte) (bool, error) {
	return s.transition(ctx, token, StatusFailed, raw)
}

func (s *GormTokenStore) transition(ctx context.Context, token, to string, raw []byte) (bool, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": time.Now(),
	}
	if len(raw) > 0 {
		updates["raw_output"] = datatypes.JSON(raw)
	}
	res := s.db.WithContext(ctx).Model(&CheckoutToken{}).
		Where("token = ? AND status = ?", token, StatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormTokenStore) RecordConfirmEvent(ctx context.Context, ev *ConfirmEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(ev).Error
}
