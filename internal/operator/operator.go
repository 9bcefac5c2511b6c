package operator

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

// processItem runs one action inside its own storage transaction.
func (o *Operator) processItem(item ActionItem) error {
	// The caller gave up while the item was queued; nothing has been written yet.
	if err := item.ctx.Err(); err != nil {
		return err
	}

	logData := logging.GetLogData(item.ctx)
	defer logData.AddToExistingTiming("operator")()
	actionName := fmt.Sprintf("%T", item.action)

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		o.logger.WithError(err).WithField("action", actionName).Error("Operator.Write")
		return err
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.logger.WithError(rbErr).WithField("action", actionName).Error("Operator.Rollback")
		}
		o.logger.WithError(err).WithField("action", actionName).Info("Operator.Perform.Failed")
		if o.logger.IsLevelEnabled(logrus.DebugLevel) {
			o.logger.WithField("action", actionName).Debug(spew.Sdump(item.action))
		}
		return err
	}

	if err = writer.Commit(); err != nil {
		o.logger.WithError(err).WithField("action", actionName).Error("Operator.Commit")
		return err
	}

	return nil
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
