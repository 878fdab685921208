package handlers

import (
	"github.com/rogerio-castellano/hplussport-catalog/internal/events"
	"github.com/rogerio-castellano/hplussport-catalog/internal/repo"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/logger"
)

var (
	store     repo.Store
	publisher events.Publisher = events.NopPublisher{}
	appLog    logger.Logger    = logger.Discard()
)

func SetStore(s repo.Store) {
	store = s
}

func SetPublisher(p events.Publisher) {
	publisher = p
}

func SetLogger(l logger.Logger) {
	appLog = l
}
