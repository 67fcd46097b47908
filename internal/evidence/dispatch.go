package evidence

import (
	"context"
	"fmt"

	"github.com/linnemanlabs/go-core/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Notifier delivers an alert over an external channel. Failure is a reported
// outcome, not an exception: implementations return an error and never panic
// across the boundary.
type Notifier interface {
	Send(ctx context.Context, alert Alert) error
}

// Dispatcher renders the per-level alert message and requests delivery.
type Dispatcher struct {
	notifier Notifier
	logger   log.Logger
	metrics  *Metrics
}

// NewDispatcher creates a dispatcher. A nil notifier disables delivery;
// dispatch then always reports false.
func NewDispatcher(notifier Notifier, logger log.Logger, metrics *Metrics) *Dispatcher {
	if logger == nil {
		logger = log.Nop()
	}
	return &Dispatcher{
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// BuildAlert renders the message template for a severity level. The mapping
// is total: every level, including any future zero value, resolves to
// exactly one template.
func BuildAlert(level SeverityLevel, disasterType, location string) Alert {
	var body string
	switch level {
	case SeverityHigh:
		body = fmt.Sprintf("HIGH ALERT: Severe %s in %s. Move to safe zones immediately.", disasterType, location)
	case SeverityModerate:
		body = fmt.Sprintf("MODERATE ALERT: %s in %s. Stay indoors.", cases.Title(language.English).String(disasterType), location)
	default:
		body = fmt.Sprintf("LOW ALERT: Mild %s in %s. Stay informed.", disasterType, location)
	}
	return Alert{Level: level, Body: body}
}

// Dispatch sends the alert for the assessed severity and reports whether the
// channel accepted it. Delivery failure is recorded and never aborts the
// run or changes the assessment.
func (d *Dispatcher) Dispatch(ctx context.Context, severity Assessment, q Query) bool {
	alert := BuildAlert(severity.Level, q.DisasterType, q.Location)

	if d.notifier == nil {
		d.logger.Info(ctx, "no notifier configured, skipping dispatch", "level", string(alert.Level))
		d.metrics.Dispatches.WithLabelValues("skipped").Inc()
		return false
	}

	if err := d.notifier.Send(ctx, alert); err != nil {
		d.logger.Error(ctx, err, "alert dispatch failed", "level", string(alert.Level))
		d.metrics.Dispatches.WithLabelValues("error").Inc()
		return false
	}

	d.metrics.Dispatches.WithLabelValues("ok").Inc()
	return true
}
