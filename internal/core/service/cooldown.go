package service

import (
	"eggbot/internal/core/domain"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Cooldowns interface {
	IsLocked(id string) bool
	Reserve(id string) bool
	Release(id string)
	Arm(id string, d time.Duration)
}

// CooldownStore is the set of invokers currently locked out. The lock is
// global per invoker, not per command.
type CooldownStore struct {
	locked map[string]struct{}
	mutex  *sync.Mutex
}

func NewCooldownStore() *CooldownStore {
	return &CooldownStore{
		locked: make(map[string]struct{}),
		mutex:  &sync.Mutex{},
	}
}

func (c *CooldownStore) IsLocked(id string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.locked[id]
	return ok
}

// Reserve locks id unless it is already locked and reports whether it did.
// The reservation has no expiry until Arm is called.
func (c *CooldownStore) Reserve(id string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.locked[id]; ok {
		return false
	}
	c.locked[id] = struct{}{}

	return true
}

// Release drops a reservation that will not be armed.
func (c *CooldownStore) Release(id string) {
	c.Expire(id)
}

// Arm locks id and schedules its removal after d. Arming an id again does not
// cancel the earlier timer.
func (c *CooldownStore) Arm(id string, d time.Duration) {
	c.mutex.Lock()
	c.locked[id] = struct{}{}
	c.mutex.Unlock()

	log.Debug().Str("invoker", id).Dur("cooldown", d).Msg("arming cooldown")

	time.AfterFunc(d, func() {
		c.Expire(id)
	})
}

// Expire removes id if present.
func (c *CooldownStore) Expire(id string) {
	c.mutex.Lock()
	delete(c.locked, id)
	c.mutex.Unlock()
}

func (c *CooldownStore) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.locked)
}

// EffectiveCooldown applies the premium discount to a base cooldown.
func EffectiveCooldown(base time.Duration, premium bool) time.Duration {
	if premium {
		return time.Duration(float64(base) * domain.PremiumCooldownFactor)
	}

	return base
}
