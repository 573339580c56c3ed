package render

import (
	"testing"
	"time"
)

func TestPrettyDuration(t *testing.T) {
	uu := map[string]struct {
		m int
		e string
	}{
		"now":        {m: 0, e: "just now"},
		"minute":     {m: 1, e: "a minute ago"},
		"minutes":    {m: 2, e: "about 2 minutes"},
		"45":         {m: 45, e: "about 45 minutes"},
		"59":         {m: 59, e: "about 59 minutes"},
		"hour":       {m: 60, e: "1 hour 0 minutes"},
		"61":         {m: 61, e: "1 hour 1 minutes"},
		"hours":      {m: 125, e: "2 hours 5 minutes"},
		"lastHour":   {m: 1439, e: "23 hours 59 minutes"},
		"day":        {m: 1440, e: "1 day 0 hours 0 minutes"},
		"1500":       {m: 1500, e: "1 day 1 hours 0 minutes"},
		"days":       {m: 2*1440 + 3*60 + 7, e: "2 days 3 hours 7 minutes"},
		"negative":   {m: -5, e: "just now"},
		"largeValue": {m: 400 * 1440, e: "400 days 0 hours 0 minutes"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			if got := PrettyDuration(u.m); got != u.e {
				t.Errorf("expected %q, got %q", u.e, got)
			}
		})
	}
}

func TestElapsedMinutes(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	uu := map[string]struct {
		t time.Time
		e int
	}{
		"same":      {t: now, e: 0},
		"truncates": {t: now.Add(-119 * time.Second), e: 1},
		"hours":     {t: now.Add(-3 * time.Hour), e: 180},
		"future":    {t: now.Add(5 * time.Minute), e: -5},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			if got := ElapsedMinutes(now, u.t); got != u.e {
				t.Errorf("expected %d, got %d", u.e, got)
			}
		})
	}
}

func TestFreshness(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := Freshness(now, now.Add(-25*time.Hour)); got != "1 day 1 hours 0 minutes" {
		t.Errorf("unexpected %q", got)
	}
	if got := Freshness(now, now.Add(time.Minute)); got != "just now" {
		t.Errorf("expected clock skew to clamp, got %q", got)
	}
	if got := Freshness(now, time.Time{}); got != UnknownValue {
		t.Errorf("expected %q, got %q", UnknownValue, got)
	}
}
