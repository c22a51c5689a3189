package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrNoRegistry is returned when metrics are dumped before Init.
var ErrNoRegistry = errors.New("metrics registry is not initialized")

// WriteTextfile dumps every metric gathered by reg to path in the Prometheus
// text exposition format. The file is replaced atomically, so it can be
// picked up by a node_exporter textfile collector.
func WriteTextfile(path string, reg *prometheus.Registry) error {
	if reg == nil {
		return ErrNoRegistry
	}

	err := prometheus.WriteToTextfile(path, reg)
	if err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}

	return nil
}
