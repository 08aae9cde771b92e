package modules

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// RunOneshot performs a single control-plane command for scripting use and
// returns a process exit code.
func RunOneshot(command string, controller *Controller, client *BotClient, logger *logrus.Logger) int {
	switch command {
	case "start":
		if err := controller.Start(); err != nil {
			logger.WithError(err).Error("start failed")
			return 1
		}
		logger.Info("bot start accepted")

	case "stop":
		if err := controller.Stop(); err != nil {
			logger.WithError(err).Error("stop failed")
			return 1
		}
		logger.Info("bot stopped")

	case "status":
		snapshot, err := client.Status()
		if err != nil {
			logger.WithError(err).Error("cannot fetch bot status")
			return 1
		}
		out, _ := json.MarshalIndent(snapshot, "", "  ")
		fmt.Println(string(out))

	case "health":
		health, err := client.Health()
		if err != nil {
			logger.WithError(err).Error("control API unreachable")
			return 1
		}
		logger.WithField("status", health.Status).Info(health.Message)

	default:
		logger.Errorf("unknown command %q (want start, stop, status or health)", command)
		return 2
	}

	return 0
}
