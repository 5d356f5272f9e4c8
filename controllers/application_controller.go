package controller

import (
	"github.com/sirupsen/logrus"

	"teamup/repository"
	"teamup/utils"
)

// ApplicationController owns the application workflow: creation, the
// pending -> accepted/rejected/withdrawn state machine, and reads.
type ApplicationController struct {
	Needs      repository.NeedRepository
	Apps       repository.ApplicationRepository
	Dispatcher *utils.Dispatcher
	Logger     *logrus.Entry
}

func NewApplicationController(needs repository.NeedRepository, apps repository.ApplicationRepository, dispatcher *utils.Dispatcher, logger *logrus.Entry) *ApplicationController {
	return &ApplicationController{
		Needs:      needs,
		Apps:       apps,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}
