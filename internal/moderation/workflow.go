package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"ismaalAdmin/internal/models"
)

// Moderator performs the remote side of a moderation decision.
type Moderator interface {
	ModerateSubmission(ctx context.Context, key models.SubmissionKey, decision models.SubmissionStatus, notes string) error
	DeleteSubmission(ctx context.Context, key models.SubmissionKey) error
}

// Workflow applies approve, reject and delete decisions to a Board. The board
// only changes after the remote call has succeeded.
type Workflow struct {
	moderator Moderator
	logger    *slog.Logger
}

func NewWorkflow(moderator Moderator, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{moderator: moderator, logger: logger}
}

func (w *Workflow) Approve(ctx context.Context, b *Board, key models.SubmissionKey, notes string) (models.Submission, error) {
	return w.decide(ctx, b, key, models.StatusApproved, notes)
}

func (w *Workflow) Reject(ctx context.Context, b *Board, key models.SubmissionKey, notes string) (models.Submission, error) {
	return w.decide(ctx, b, key, models.StatusRejected, notes)
}

func (w *Workflow) decide(ctx context.Context, b *Board, key models.SubmissionKey, target models.SubmissionStatus, notes string) (models.Submission, error) {
	if !key.Type.Valid() {
		return models.Submission{}, fmt.Errorf("%w: %q", models.ErrUnknownSubmissionType, string(key.Type))
	}
	current, err := b.Begin(key, target)
	if err != nil {
		return models.Submission{}, err
	}
	defer b.Finish(key)

	if err := w.moderator.ModerateSubmission(ctx, key, target, notes); err != nil {
		w.logger.Warn("moderation call failed", "key", key.String(), "target", string(target), "err", err)
		return models.Submission{}, err
	}

	updated, ok := b.SetStatus(key, target, notes)
	if !ok {
		// refreshed while the call ran and no longer held
		updated = current.WithStatus(target)
	}
	w.logger.Info("submission moderated", "key", key.String(), "status", string(target))
	return updated, nil
}

// Delete removes a submission remotely and then from the board.
func (w *Workflow) Delete(ctx context.Context, b *Board, key models.SubmissionKey) error {
	if !key.Type.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownSubmissionType, string(key.Type))
	}
	if _, err := b.BeginDelete(key); err != nil {
		return err
	}
	defer b.Finish(key)

	if err := w.moderator.DeleteSubmission(ctx, key); err != nil {
		w.logger.Warn("delete call failed", "key", key.String(), "err", err)
		return err
	}
	b.Remove(key)
	w.logger.Info("submission deleted", "key", key.String())
	return nil
}
