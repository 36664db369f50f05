package handler

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/session"
	"go-ferre-inventory/internal/view"
	"go-ferre-inventory/pkg/logger"
)

// FailureReporter tells a session that a confirmed action failed.
type FailureReporter interface {
	ActionFailed(sessionID, confirmationID string, err error)
}

type nopReporter struct{}

func (nopReporter) ActionFailed(string, string, error) {}

// Confirmer opens a confirmation on a session and runs the follow-up action
// in the background once the user answers yes. The HTTP request returns as
// soon as the question is open.
type Confirmer struct {
	base     context.Context
	timeout  time.Duration
	reporter FailureReporter
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewConfirmer ties pending confirmations to base: cancelling it answers
// every open question with no. Failures of confirmed actions go to reporter.
func NewConfirmer(base context.Context, timeout time.Duration, reporter FailureReporter, l *zap.Logger) *Confirmer {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Confirmer{base: base, timeout: timeout, reporter: reporter, logger: logger.OrNop(l)}
}

// Ask responds 202 with the open request. It fails without asking when the
// session is not on screen or already has a question open.
func (cf *Confirmer) Ask(c *fiber.Ctx, r responder, sess *session.Session, screen view.Screen, message string, then func(ctx context.Context) error) error {
	if err := sess.Machine.Expect(screen); err != nil {
		return r.fail(c, err)
	}
	pending, err := sess.Gate.Request(c.UserContext(), message)
	if err != nil {
		return r.fail(c, err)
	}

	cf.wg.Add(1)
	go func() {
		defer cf.wg.Done()

		ctx, cancel := context.WithTimeout(cf.base, cf.timeout)
		defer cancel()

		if !pending.Wait(ctx) {
			cf.logger.Debug("confirmation declined", zap.String("session_id", sess.ID), zap.String("confirmation_id", pending.ID))
			return
		}
		if err := then(cf.base); err != nil {
			cf.logger.Warn("confirmed action failed",
				zap.String("session_id", sess.ID),
				zap.String("confirmation_id", pending.ID),
				zap.Error(err))
			cf.reporter.ActionFailed(sess.ID, pending.ID, err)
		}
	}()

	return c.Status(202).JSON(fiber.Map{"confirmation": pending.Request})
}

// Wait blocks until every background follow-up has finished.
func (cf *Confirmer) Wait() {
	cf.wg.Wait()
}
