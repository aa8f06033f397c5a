package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Metrics carries the engine's counters.
type Metrics struct {
	LoansOriginated   metric.Int64Counter
	RepaymentsApplied metric.Int64Counter
	RepaymentsFailed  metric.Int64Counter
}

// InitMetrics initializes the Prometheus metrics exporter. Returns the
// MeterProvider, the engine counters, and an HTTP handler for the /metrics
// endpoint.
func InitMetrics(serviceName string) (*sdkmetric.MeterProvider, *Metrics, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	loans, err := meter.Int64Counter("loans_originated_total",
		metric.WithDescription("Number of loans originated"))
	if err != nil {
		return nil, nil, nil, err
	}
	applied, err := meter.Int64Counter("repayments_applied_total",
		metric.WithDescription("Number of repayments applied"))
	if err != nil {
		return nil, nil, nil, err
	}
	failed, err := meter.Int64Counter("repayments_failed_total",
		metric.WithDescription("Number of repayments rejected or failed"))
	if err != nil {
		return nil, nil, nil, err
	}

	m := &Metrics{
		LoansOriginated:   loans,
		RepaymentsApplied: applied,
		RepaymentsFailed:  failed,
	}

	return provider, m, promhttp.Handler(), nil
}
