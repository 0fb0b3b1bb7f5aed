// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks sensitive values in production
// ============================================================================
// Pins and money amounts never reach the logs of a production deployment;
// in development everything is logged as-is.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
)

// IsProduction decides whether masking is applied.
var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production" ||
	os.Getenv("ENV") == "production"

var (
	// "pin": 1234, pin=1234, pin 1234
	pinRegex = regexp.MustCompile(`(?i)("?pin"?\s*[:=]?\s*)\d+`)

	// decimal numbers that look like amounts
	amountRegex = regexp.MustCompile(`\b\d{2,}([.,]\d{1,2})?\b`)
)

// MaskString masks pins and amounts in an arbitrary string.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}
	result := pinRegex.ReplaceAllString(input, "${1}****")
	result = amountRegex.ReplaceAllString(result, "***")
	return result
}

// MaskAmount masks a single money value.
func MaskAmount(amount float64) string {
	if IsProduction {
		return "***"
	}
	return fmt.Sprintf("%.2f", amount)
}

// SafeInfof logs with masking applied to the formatted message.
func SafeInfof(format string, args ...any) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

// SafeErrorf logs an error with masking applied.
func SafeErrorf(format string, args ...any) {
	log.Print("❌ " + MaskString(fmt.Sprintf(format, args...)))
}
