package stats

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/phanxgames/cadence/stats"

// Meter returns the meter from the global OTel provider. It is a no-op
// meter unless the application installed a provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Export publishes every stat in the registry as one observable gauge,
// distinguished by "group" and "name" attributes. Unregister the returned
// registration on teardown.
func (r *Registry) Export(m metric.Meter) (metric.Registration, error) {
	gauge, err := m.Float64ObservableGauge(
		"cadence.stat",
		metric.WithDescription("Framework runtime statistic"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stat gauge: %w", err)
	}

	reg, err := m.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			r.observe(o, gauge)
			return nil
		},
		gauge,
	)
	if err != nil {
		return nil, fmt.Errorf("registering stat callback: %w", err)
	}
	return reg, nil
}

func (r *Registry) observe(o metric.Observer, gauge metric.Float64Observable) {
	for _, e := range r.Snapshot() {
		o.ObserveFloat64(gauge, e.Value, metric.WithAttributes(
			attribute.String("group", e.Group),
			attribute.String("name", e.Name),
		))
	}
}
