package earning

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DeriveIdempotencyKey fingerprints the identifying content of an earning.
// Every field is length-prefixed so no two distinct inputs share a canonical
// form. The amount is rendered without trailing zeros, the time in UTC with
// full nanosecond precision.
func DeriveIdempotencyKey(proxyKey string, eventTime time.Time, sourceName string, amount decimal.Decimal) string {
	fields := []string{
		proxyKey,
		eventTime.UTC().Format(time.RFC3339Nano),
		sourceName,
		amount.String(),
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
		b.WriteByte('|')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
