package panel

import (
	"context"
	"testing"
	"time"

	"teampanel/internal/faceit"
)

func TestRandomPresenceBounds(t *testing.T) {
	presence := NewRandomPresence(42)
	draws := 3000
	online := 0
	for i := 0; i < draws; i++ {
		result := presence.Presence(context.Background(), faceit.Member{Nickname: "player"})
		if !result.Online {
			if result.Since != 0 {
				t.Fatalf("offline member with time online %v", result.Since)
			}
			continue
		}
		online++
		if result.Since < MIN_MINUTES_ONLINE*time.Minute || result.Since > MAX_MINUTES_ONLINE*time.Minute {
			t.Fatalf("time online out of bounds: %v", result.Since)
		}
	}

	// One out of three, with plenty of margin
	ratio := float64(online) / float64(draws)
	if ratio < 0.28 || ratio > 0.39 {
		t.Errorf("unexpected ratio of members online: %.3f", ratio)
	}
}

func TestRandomPresenceIsDeterministicForASeed(t *testing.T) {
	first, second := NewRandomPresence(7), NewRandomPresence(7)
	for i := 0; i < 50; i++ {
		a := first.Presence(context.Background(), faceit.Member{})
		b := second.Presence(context.Background(), faceit.Member{})
		if a != b {
			t.Fatalf("draw %d differs: %+v vs %+v", i, a, b)
		}
	}
}
