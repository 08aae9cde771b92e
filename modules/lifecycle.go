package modules

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

// Controller issues start/stop commands against the bot. At most one
// command is in flight at any time; the views disable their controls while
// the guard is held, and the controller re-checks defensively instead of
// trusting the UI gate.
type Controller struct {
	panel  *Panel
	client *BotClient
	sync   *Synchronizer
	logger *logrus.Logger
}

func NewController(panel *Panel, client *BotClient, sync *Synchronizer, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.New()
	}
	return &Controller{
		panel:  panel,
		client: client,
		sync:   sync,
		logger: logger,
	}
}

// Start validates the configuration, submits it to the bot and logs the
// outcome. A missing credential fails locally with exactly one error entry
// and no network call. The panel only ever learns running=true from the
// next status poll, which Start schedules immediately on success.
func (c *Controller) Start() error {
	if c.panel.InFlight() {
		c.logger.Warn("start ignored: command already in flight")
		return ErrBusy
	}

	cfg := c.panel.Config()
	if !c.panel.IsSubmittable() {
		c.panel.AppendLog("start failed: API key and secret key are required", models.SeverityError)
		return ErrNotSubmittable
	}

	if !c.panel.BeginAction() {
		c.logger.Warn("start ignored: command already in flight")
		return ErrBusy
	}
	defer c.panel.EndAction()

	log := c.logger.WithFields(logrus.Fields{
		"cmd":    uuid.NewString()[:8],
		"symbol": cfg.Symbol,
	})
	log.Info("starting bot")

	err := c.client.Start(cfg)
	if err == nil {
		c.panel.AppendLog(fmt.Sprintf("bot started for pair %s", cfg.Symbol), models.SeveritySuccess)
		c.sync.Refresh()
		return nil
	}

	c.reportFailure(log, "start", err)
	return err
}

// Stop is symmetric to Start with no configuration precondition.
func (c *Controller) Stop() error {
	if !c.panel.BeginAction() {
		c.logger.Warn("stop ignored: command already in flight")
		return ErrBusy
	}
	defer c.panel.EndAction()

	log := c.logger.WithField("cmd", uuid.NewString()[:8])
	log.Info("stopping bot")

	err := c.client.Stop()
	if err == nil {
		c.panel.AppendLog("bot stopped", models.SeveritySuccess)
		c.sync.Refresh()
		return nil
	}

	c.reportFailure(log, "stop", err)
	return err
}

func (c *Controller) reportFailure(log *logrus.Entry, verb string, err error) {
	var rejection *RemoteRejection
	if errors.As(err, &rejection) {
		c.panel.AppendLog(fmt.Sprintf("%s failed: %s", verb, rejection.Detail), models.SeverityError)
		log.WithField("status", rejection.Status).Error(rejection.Detail)
		return
	}

	var transport *TransportError
	if errors.As(err, &transport) {
		c.panel.AppendLog(fmt.Sprintf("connection error: %v", transport.Err), models.SeverityError)
		log.WithError(transport.Err).Error("no response from bot")
		return
	}

	c.panel.AppendLog(fmt.Sprintf("%s failed: %v", verb, err), models.SeverityError)
	log.WithError(err).Error("command failed")
}
