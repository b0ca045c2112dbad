package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"backend/internal/app/config"
	"backend/internal/app/soc"

	"github.com/sirupsen/logrus"
)

// HTTPNotifier cumple las intenciones de notificación contra el servicio
// de correo. El envío es asíncrono y best-effort: una falla se registra
// en el log y jamás revierte la transición que originó el evento.
type HTTPNotifier struct {
	url    string
	client *http.Client
}

func NewHTTPNotifier(cfg config.NotifyConfig) *HTTPNotifier {
	return &HTTPNotifier{
		url: cfg.URL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (n *HTTPNotifier) Notificar(evento soc.Evento) {
	if n.url == "" {
		logrus.Debugf("notify disabled, dropping event %s for SOC %d", evento.Tipo, evento.SOCID)
		return
	}

	go func() {
		body, err := json.Marshal(evento)
		if err != nil {
			logrus.Warn("failed to marshal notify event: ", err)
			return
		}

		resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
		if err != nil {
			logrus.Warnf("notify %s for SOC %d failed: %v", evento.Tipo, evento.SOCID, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			logrus.Warnf("notify %s for SOC %d: service returned %d", evento.Tipo, evento.SOCID, resp.StatusCode)
			return
		}

		logrus.Infof("notify %s sent for SOC %d at %s", evento.Tipo, evento.SOCID, time.Now().Format(time.RFC3339))
	}()
}
