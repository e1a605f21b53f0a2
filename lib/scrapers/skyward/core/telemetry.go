package core

import (
	"skyward-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("skyward.lib.scrapers.skyward.core")
var meter = telemetry.Meter("skyward.lib.scrapers.skyward.core")

var requestRetries, _ = meter.Int64Counter("skyward.request.retries")
var handshakeAttempts, _ = meter.Int64Counter("skyward.handshake.attempts")
