package worker

import (
	"context"

	"github.com/sirupsen/logrus"

	"teamup/utils"
)

// NotifyWorker drains the dispatcher's job queue in the background so the
// request handlers never wait on mail transports.
type NotifyWorker struct {
	Dispatcher *utils.Dispatcher
	Logger     *logrus.Entry
}

func NewNotifyWorker(dispatcher *utils.Dispatcher, logger *logrus.Entry) *NotifyWorker {
	return &NotifyWorker{
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}

func (nw *NotifyWorker) Start(ctx context.Context) {
	nw.Logger.Info("notify worker started")

	for {
		select {
		case <-ctx.Done():
			nw.Logger.Info("notify worker shutting down...")
			return
		case job := <-nw.Dispatcher.Jobs():
			nw.Dispatcher.Deliver(ctx, job)
		}
	}
}
