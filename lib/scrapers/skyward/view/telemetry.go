package view

import "skyward-backend/lib/telemetry"

var tracer = telemetry.Tracer("skyward.lib.scrapers.skyward.view")
