package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"app/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeActivityRepo struct {
	entries []*model.ActivityLog
	err     error
}

func (f *fakeActivityRepo) InsertActivity(_ context.Context, entry *model.ActivityLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func TestActivityServiceRecord(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	svc.Record(context.Background(), ActivityEvent{
		UserID:      "user-1",
		Action:      "credits_used",
		Category:    "credits",
		Description: "Contract analysis",
		Metadata:    map[string]any{"amount": 10},
		IPAddress:   "203.0.113.9",
		UserAgent:   "test-agent",
	})

	if assert.Len(t, repo.entries, 1) {
		entry := repo.entries[0]
		assert.Equal(t, "user-1", entry.UserID)
		assert.Equal(t, "credits_used", entry.Action)
		assert.Equal(t, "credits", entry.Category)
		if assert.NotNil(t, entry.Description) {
			assert.Equal(t, "Contract analysis", *entry.Description)
		}
		if assert.NotNil(t, entry.IPAddress) {
			assert.Equal(t, "203.0.113.9", *entry.IPAddress)
		}

		var meta map[string]any
		assert.NoError(t, json.Unmarshal(entry.Metadata, &meta))
		assert.Equal(t, float64(10), meta["amount"])
	}
}

func TestActivityServiceRecordEmptyOptionalFields(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	svc.Record(context.Background(), ActivityEvent{UserID: "user-1", Action: "login", Category: "auth"})

	if assert.Len(t, repo.entries, 1) {
		entry := repo.entries[0]
		assert.Nil(t, entry.Description)
		assert.Nil(t, entry.IPAddress)
		assert.Nil(t, entry.UserAgent)
		assert.Nil(t, entry.Metadata)
	}
}

// A failed audit write must never surface to the caller.
func TestActivityServiceRecordSwallowsErrors(t *testing.T) {
	repo := &fakeActivityRepo{err: errors.New("connection refused")}
	svc := NewActivityService(repo, zerolog.Nop())

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), ActivityEvent{UserID: "user-1", Action: "login", Category: "auth"})
	})
	assert.Empty(t, repo.entries)
}
