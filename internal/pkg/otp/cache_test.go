package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifyAndConsume(t *testing.T) {
	c := NewCache(5 * time.Minute)

	c.Set("user-1", "123456")

	assert.False(t, c.VerifyAndConsume("user-1", "000000"), "wrong code must not verify")
	assert.True(t, c.VerifyAndConsume("user-1", "123456"))
	assert.False(t, c.VerifyAndConsume("user-1", "123456"), "codes are single-use")
}

func TestUnknownKey(t *testing.T) {
	c := NewCache(5 * time.Minute)
	assert.False(t, c.VerifyAndConsume("nobody", "123456"))
}

func TestSetReplacesCode(t *testing.T) {
	c := NewCache(5 * time.Minute)

	c.Set("user-1", "111111")
	c.Set("user-1", "222222")

	assert.False(t, c.VerifyAndConsume("user-1", "111111"))
	assert.True(t, c.VerifyAndConsume("user-1", "222222"))
}

func TestExpiry(t *testing.T) {
	c := NewCache(5 * time.Minute)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("user-1", "123456")

	current = current.Add(5*time.Minute + time.Second)
	assert.False(t, c.VerifyAndConsume("user-1", "123456"), "expired code must not verify")
}

func TestSweep(t *testing.T) {
	c := NewCache(5 * time.Minute)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("stale", "111111")
	current = current.Add(3 * time.Minute)
	c.Set("fresh", "222222")

	current = current.Add(3 * time.Minute)
	assert.NoError(t, c.Sweep(context.Background()))

	assert.Len(t, c.entries, 1)
	assert.True(t, c.VerifyAndConsume("fresh", "222222"))
}
