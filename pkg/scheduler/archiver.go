package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/cardvault/internal/logging"
	"github.com/fadedpez/cardvault/internal/types"
	"github.com/fadedpez/cardvault/pkg/entities"
	"github.com/fadedpez/cardvault/pkg/ledger"
	"github.com/fadedpez/cardvault/pkg/repositories/showdown"
)

// ShowdownRevealer evaluates the showdown of a finished game
type ShowdownRevealer interface {
	RevealShowdown(ctx context.Context, gameID uint64) (*entities.ShowdownRecord, error)
}

// ShowdownArchiver records the off-chain evaluation of every game that
// finishes in the watched rooms
type ShowdownArchiver struct {
	scheduler *Scheduler
	ledger    ledger.Client
	revealer  ShowdownRevealer
	repo      showdown.Repository
	rooms     []string
	interval  time.Duration
	logger    *logging.Logger
}

// NewShowdownArchiver creates an archiver polling rooms every interval
func NewShowdownArchiver(ledgerClient ledger.Client, revealer ShowdownRevealer, repo showdown.Repository, rooms []string, interval time.Duration) *ShowdownArchiver {
	a := &ShowdownArchiver{
		scheduler: NewScheduler(),
		ledger:    ledgerClient,
		revealer:  revealer,
		repo:      repo,
		rooms:     rooms,
		interval:  interval,
		logger:    logging.Default,
	}
	a.scheduler.AddTask("showdown_archive", interval, a.ArchiveRooms)
	return a
}

// Start begins polling
func (a *ShowdownArchiver) Start(ctx context.Context) {
	a.scheduler.Start(ctx)
	a.logger.Info("Showdown archiver watching %d rooms every %s", len(a.rooms), a.interval)
}

// Stop stops polling
func (a *ShowdownArchiver) Stop() {
	a.scheduler.Stop()
}

// ArchiveRooms archives the current game of each room if it has closed.
// A failing room does not stop the others.
func (a *ShowdownArchiver) ArchiveRooms(ctx context.Context) error {
	var errs []error
	for _, room := range a.rooms {
		if err := a.archiveRoom(ctx, room); err != nil {
			errs = append(errs, fmt.Errorf("room %s: %w", room, err))
		}
	}
	return errors.Join(errs...)
}

func (a *ShowdownArchiver) archiveRoom(ctx context.Context, room string) error {
	game, err := a.ledger.GetCurrentGame(ctx, room)
	if err != nil {
		if errors.Is(err, ledger.ErrGameNotFound) {
			return nil
		}
		return err
	}

	if game.Status != entities.GameClosed {
		return nil
	}

	if _, err := a.repo.GetShowdown(ctx, game.ID); err == nil {
		return nil // Already archived
	} else if !errors.Is(err, showdown.ErrShowdownNotFound) {
		return err
	}

	record, err := a.revealer.RevealShowdown(ctx, game.ID)
	if err != nil {
		if types.Is(err, types.ErrGameMappingNotFound) {
			// Nobody revealed a card in this game, so there is nothing to evaluate
			a.logger.Debug("Game %d in room %s closed without a card mapping", game.ID, room)
			return nil
		}
		return err
	}

	if err := a.repo.SaveShowdown(ctx, record); err != nil {
		return err
	}

	if record.Disagrees() {
		a.logger.Warn("Archived game %d: computed winners %v, ledger winners %v", game.ID, record.Winners, record.LedgerWinners)
	} else {
		a.logger.Info("Archived showdown of game %d in room %s", game.ID, room)
	}
	return nil
}
