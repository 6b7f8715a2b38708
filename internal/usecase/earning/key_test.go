package earning

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var hexKey = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestDeriveIdempotencyKeyDeterministic(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 123456789, time.UTC)
	amount := decimal.RequireFromString("0.001")

	a := DeriveIdempotencyKey("1.2.3.4:8080", ts, "faucetX", amount)
	b := DeriveIdempotencyKey("1.2.3.4:8080", ts, "faucetX", decimal.RequireFromString("0.00100"))

	if a != b {
		t.Fatalf("keys differ for equal inputs: %s != %s", a, b)
	}
	if !hexKey.MatchString(a) {
		t.Fatalf("key is not 64 hex chars: %s", a)
	}
}

func TestDeriveIdempotencyKeyIgnoresZone(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	moscow := time.FixedZone("MSK", 3*60*60)
	amount := decimal.RequireFromString("1")

	if DeriveIdempotencyKey("h:1", ts, "f", amount) != DeriveIdempotencyKey("h:1", ts.In(moscow), "f", amount) {
		t.Fatalf("same instant in another zone must give the same key")
	}
}

func TestDeriveIdempotencyKeySensitivity(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("0.001")
	base := DeriveIdempotencyKey("1.2.3.4:8080", ts, "faucetX", amount)

	variants := map[string]string{
		"proxy":      DeriveIdempotencyKey("1.2.3.4:8081", ts, "faucetX", amount),
		"nanosecond": DeriveIdempotencyKey("1.2.3.4:8080", ts.Add(time.Nanosecond), "faucetX", amount),
		"source":     DeriveIdempotencyKey("1.2.3.4:8080", ts, "faucetY", amount),
		"amount":     DeriveIdempotencyKey("1.2.3.4:8080", ts, "faucetX", decimal.RequireFromString("0.0011")),
	}

	seen := map[string]string{base: "base"}
	for name, key := range variants {
		if prev, ok := seen[key]; ok {
			t.Fatalf("%s collides with %s", name, prev)
		}
		seen[key] = name
	}
}
