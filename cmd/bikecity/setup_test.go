package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/bike-city/internal/backend"
)

func openTestSource(t *testing.T) *source {
	t.Helper()

	old := flagDBPath
	flagDBPath = filepath.Join(t.TempDir(), "bikecity.db")
	t.Cleanup(func() { flagDBPath = old })

	src, err := openSource(context.Background(), "")
	if err != nil {
		t.Fatalf("openSource() error = %v", err)
	}
	t.Cleanup(src.Close)
	return src
}

func TestRiderCreatesThenReuses(t *testing.T) {
	src := openTestSource(t)
	ctx := context.Background()

	first, err := src.rider(ctx, "", "alice")
	if err != nil {
		t.Fatalf("rider() error = %v", err)
	}
	if first.Name != "alice" || first.Money != backend.StartMoney {
		t.Errorf("new rider = %+v, expected alice with starting money", first)
	}

	again, err := src.rider(ctx, "", "alice")
	if err != nil {
		t.Fatalf("rider() error = %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("rider() ID = %s, expected the existing %s", again.ID, first.ID)
	}

	byID, err := src.rider(ctx, first.ID, "ignored")
	if err != nil || byID.Name != "alice" {
		t.Errorf("rider(id) = %+v, %v, expected alice", byID, err)
	}
}

func TestRiderUnknownID(t *testing.T) {
	src := openTestSource(t)

	_, err := src.rider(context.Background(), "no-such-id", "")
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("rider() error = %v, expected ErrNotFound", err)
	}
}

func TestRiderRejectsBadName(t *testing.T) {
	src := openTestSource(t)

	_, err := src.rider(context.Background(), "", "   ")
	if !errors.Is(err, backend.ErrInvalidName) {
		t.Errorf("rider() error = %v, expected ErrInvalidName", err)
	}
}

func TestNewLoggerDiscardsWithoutPath(t *testing.T) {
	logger, closeLog, err := newLogger("")
	if err != nil || logger == nil {
		t.Fatalf("newLogger(\"\") = %v, %v", logger, err)
	}
	closeLog()

	path := filepath.Join(t.TempDir(), "ride.log")
	logger, closeLog, err = newLogger(path)
	if err != nil {
		t.Fatalf("newLogger(%q) error = %v", path, err)
	}
	logger.Info("hello")
	closeLog()
}
