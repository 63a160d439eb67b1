package game

import (
	"fmt"
	"hash/fnv"
	"math"
)

// ScoreDelta is the score for whacking a mole that had been hit hitsBefore
// times already.
func ScoreDelta(hitsBefore, base uint) uint {
	return hitsBefore + base
}

// IsExtra reports whether score falls in the celebration band just above a
// multiple of every. The band is approximate: any score whose remainder is
// below band counts.
func IsExtra(score, every, band uint) bool {
	if every == 0 {
		return false
	}
	return score%every < band
}

// ExtraText is the celebration callout for score, rounded to the nearest
// multiple of every.
func ExtraText(score, every uint) string {
	if every == 0 {
		return ""
	}
	n := uint(math.Round(float64(score)/float64(every))) * every
	return fmt.Sprintf("+%d!", n)
}

// MuteKey derives the storage key for the mute preference of the named game,
// so several games can share one store.
func MuteKey(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return fmt.Sprintf("%08x-muted", h.Sum32())
}

// LoadMuted reads the mute preference. Missing or unreadable values mean unmuted.
func LoadMuted(store Store, key string) bool {
	if store == nil {
		return false
	}
	v, ok := store.Get(key)
	return ok && v == "true"
}

// ToggleMuted flips the stored mute preference and returns the new value.
func ToggleMuted(store Store, key string) (bool, error) {
	muted := !LoadMuted(store, key)
	if store == nil {
		return muted, nil
	}
	value := "false"
	if muted {
		value = "true"
	}
	if err := store.Set(key, value); err != nil {
		return muted, fmt.Errorf("save mute preference: %w", err)
	}
	return muted, nil
}
