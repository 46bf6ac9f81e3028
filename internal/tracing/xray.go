// Package tracing provides AWS X-Ray distributed tracing integration.
package tracing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-xray-sdk-go/strategy/ctxmissing"
	"github.com/aws/aws-xray-sdk-go/strategy/sampling"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/aws/aws-xray-sdk-go/xraylog"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-odds/internal/config"
)

// Logger adapter for X-Ray SDK.
type xrayLoggerAdapter struct {
	logger *logrus.Entry
}

func (l *xrayLoggerAdapter) Log(level xraylog.LogLevel, msg fmt.Stringer) {
	switch level {
	case xraylog.LogLevelDebug:
		l.logger.Debug(msg.String())
	case xraylog.LogLevelInfo:
		l.logger.Info(msg.String())
	case xraylog.LogLevelWarn:
		l.logger.Warn(msg.String())
	case xraylog.LogLevelError:
		l.logger.Error(msg.String())
	}
}

// samplingRules builds a localized sampling manifest with a single default rule.
func samplingRules(rate float64) []byte {
	return []byte(fmt.Sprintf(`{"version":2,"rules":[],"default":{"fixed_target":1,"rate":%g}}`, rate))
}

// Initialize configures the X-Ray recorder. It is a no-op when tracing is disabled.
func Initialize(cfg config.TracingConfig, serviceVersion string, logger *logrus.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	strategy, err := sampling.NewLocalizedStrategyFromJSONBytes(samplingRules(cfg.SamplingRate))
	if err != nil {
		return fmt.Errorf("failed to build sampling strategy: %w", err)
	}

	xray.SetLogger(&xrayLoggerAdapter{logger: logger.WithField("component", "xray")})

	if err := xray.Configure(xray.Config{
		DaemonAddr:             cfg.DaemonAddr,
		ServiceVersion:         serviceVersion,
		SamplingStrategy:       strategy,
		ContextMissingStrategy: ctxmissing.NewDefaultIgnoreErrorStrategy(),
	}); err != nil {
		return fmt.Errorf("failed to configure x-ray: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"daemon_addr":   cfg.DaemonAddr,
		"sampling_rate": cfg.SamplingRate,
	}).Info("AWS X-Ray initialized")

	return nil
}

// Middleware opens a segment named serviceName for every request
func Middleware(serviceName string) func(http.Handler) http.Handler {
	namer := xray.NewFixedSegmentNamer(serviceName)
	return func(next http.Handler) http.Handler {
		return xray.Handler(namer, next)
	}
}

// Trace runs fn inside a subsegment of the request segment carried by ctx. Without a
// segment fn runs untraced.
func Trace(ctx context.Context, name string, fn func(context.Context) error) error {
	if xray.GetSegment(ctx) == nil {
		return fn(ctx)
	}
	return xray.Capture(ctx, name, fn)
}

// AddAnnotation adds an annotation to the current segment.
func AddAnnotation(ctx context.Context, key string, value interface{}) {
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddAnnotation(key, value)
	}
}

// AddMetadata adds metadata to the current segment.
func AddMetadata(ctx context.Context, key string, value interface{}) {
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddMetadata(key, value)
	}
}
