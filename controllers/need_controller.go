package controller

import (
	"github.com/sirupsen/logrus"

	"teamup/repository"
	"teamup/utils"
)

// NeedController owns the team-need lifecycle: creation, listing, updates,
// open/close, deletion, and the view counter.
type NeedController struct {
	Needs      repository.NeedRepository
	Apps       repository.ApplicationRepository
	Dispatcher *utils.Dispatcher
	Logger     *logrus.Entry
}

func NewNeedController(needs repository.NeedRepository, apps repository.ApplicationRepository, dispatcher *utils.Dispatcher, logger *logrus.Entry) *NeedController {
	return &NeedController{
		Needs:      needs,
		Apps:       apps,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}
