package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/metrics"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// WriterSource opens a storage.Writer bound to a new database transaction.
type WriterSource interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	source WriterSource
	totals cache.TotalsCache
	queue  chan ActionItem
	logger *logrus.Logger
}

func NewOperator(source WriterSource, totals cache.TotalsCache, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		source: source,
		totals: totals,
		queue:  queue,
		logger: logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	start := time.Now()
	err := o.perform(item)
	metrics.ObserveAction(item.action.Name(), err != nil, time.Since(start))

	if err != nil && apperror.KindOf(err) == 0 {
		o.logger.WithError(err).WithField("action", item.action.Name()).Error("Operator.processItem")
	}
	item.response <- ActionItemResponse{err: err}
}

func (o *Operator) perform(item ActionItem) error {
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.source.Write(item.ctx)
	if err != nil {
		return err
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback(item.ctx)
		return err
	}

	if err := writer.Commit(item.ctx); err != nil {
		return err
	}
	o.invalidateTotals(item)
	return nil
}

// invalidateTotals runs on the worker after commit, so it happens even when
// the caller stopped waiting for the response.
func (o *Operator) invalidateTotals(item ActionItem) {
	changer, ok := item.action.(actions.TotalsChanger)
	if !ok {
		return
	}
	if userID, changed := changer.TotalsOwner(); changed {
		o.totals.Invalidate(context.WithoutCancel(item.ctx), userID)
	}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
