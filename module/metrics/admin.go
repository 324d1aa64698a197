package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/flight-surety/module"
)

type AdminCollector struct {
	handled *prometheus.CounterVec
}

var _ module.AdminMetrics = (*AdminCollector)(nil)

func NewAdminCollector(registerer prometheus.Registerer) *AdminCollector {
	return &AdminCollector{
		handled: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Name:      "commands_handled_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemAdmin,
			Help:      "number of admin commands handled",
		}, []string{LabelCommand, LabelSuccess}),
	}
}

func (ac *AdminCollector) AdminCommandHandled(command string, success bool) {
	ac.handled.WithLabelValues(command, strconv.FormatBool(success)).Inc()
}
