package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"publisher.base_url":                        "http://localhost:8081/events",
		"publisher.timeout":                         "30s",
		"publisher.retry.max_attempts":              defaultRetryMaxAttempts,
		"publisher.retry.initial_interval":          "100ms",
		"publisher.retry.max_interval":              "10s",
		"publisher.retry.multiplier":                defaultRetryMultiplier,
		"publisher.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"publisher.circuit_breaker.timeout":         "30s",
		"publisher.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"publisher.rate_limit.requests_per_second":  0,
		"publisher.rate_limit.burst_size":           1,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
