package panel

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"teampanel/internal/faceit"
)

type Presence struct {
	Online bool
	Since  time.Duration
}

// Tells whether a member of a team is currently online
type PresenceProvider interface {
	Presence(ctx context.Context, member faceit.Member) Presence
}

// Bounds of the simulated time online, in minutes
const (
	MIN_MINUTES_ONLINE = 5
	MAX_MINUTES_ONLINE = 180
)

// RandomPresence simulates presence: FACEIT does not expose whether a player
// is online. One out of three draws is online, for 5 to 180 minutes
type RandomPresence struct {
	mutex sync.Mutex
	rng   *rand.Rand
}

func NewRandomPresence(seed uint64) *RandomPresence {
	return &RandomPresence{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (random *RandomPresence) Presence(ctx context.Context, member faceit.Member) Presence {

	random.mutex.Lock()
	defer random.mutex.Unlock()

	if random.rng.IntN(3) != 0 {
		return Presence{}
	}
	minutes := MIN_MINUTES_ONLINE + random.rng.IntN(MAX_MINUTES_ONLINE-MIN_MINUTES_ONLINE+1)
	return Presence{Online: true, Since: time.Duration(minutes) * time.Minute}
}
