package modules

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type testRig struct {
	panel      *Panel
	client     *BotClient
	sync       *Synchronizer
	controller *Controller
	server     *httptest.Server
}

// newTestRig wires a full panel core against an httptest bot backend.
func newTestRig(t *testing.T, handler http.Handler) *testRig {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := quietLogger()
	client := NewBotClient(server.URL, logger, ratelimit.NewUnlimited())
	panel := NewPanel(logger)
	synchronizer := NewSynchronizer(panel, client, logger)
	controller := NewController(panel, client, synchronizer, logger)

	t.Cleanup(func() {
		synchronizer.Stop()
		panel.Close()
	})

	return &testRig{
		panel:      panel,
		client:     client,
		sync:       synchronizer,
		controller: controller,
		server:     server,
	}
}

func (r *testRig) setCredentials() {
	r.panel.UpdateConfig(FieldApiKey, "k1")
	r.panel.UpdateConfig(FieldSecretKey, "s1")
}
