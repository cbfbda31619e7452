package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestLocalLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, allowed, "request %d should pass", i+1)
	}
	allowed, _ := l.Allow(ctx, "1.2.3.4")
	require.False(t, allowed)

	allowed, _ = l.Allow(ctx, "5.6.7.8")
	require.True(t, allowed, "other keys keep their own bucket")
}

type RedisLimiterTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	limiter *RedisLimiter
	ctx     context.Context
}

func (s *RedisLimiterTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.ctx = context.Background()
	client, err := NewRedisClient(s.ctx, s.mr.Addr(), "")
	s.Require().NoError(err)
	s.T().Cleanup(func() { client.Close() })
	s.limiter = NewRedisLimiter(client, 2, time.Minute)
}

func TestRedisLimiterSuite(t *testing.T) {
	suite.Run(t, new(RedisLimiterTestSuite))
}

func (s *RedisLimiterTestSuite) TestFixedWindow() {
	for i := 0; i < 2; i++ {
		allowed, err := s.limiter.Allow(s.ctx, "login:1.2.3.4")
		s.Require().NoError(err)
		s.True(allowed)
	}
	allowed, err := s.limiter.Allow(s.ctx, "login:1.2.3.4")
	s.Require().NoError(err)
	s.False(allowed)

	s.mr.FastForward(time.Minute + time.Second)

	allowed, err = s.limiter.Allow(s.ctx, "login:1.2.3.4")
	s.Require().NoError(err)
	s.True(allowed, "window expired")
}

func (s *RedisLimiterTestSuite) TestCounterAlwaysExpires() {
	key := "storefront:ratelimit:login:5.6.7.8"

	_, err := s.limiter.Allow(s.ctx, "login:5.6.7.8")
	s.Require().NoError(err)
	s.Equal(time.Minute, s.mr.TTL(key))

	s.mr.FastForward(30 * time.Second)
	_, err = s.limiter.Allow(s.ctx, "login:5.6.7.8")
	s.Require().NoError(err)
	s.Equal(30*time.Second, s.mr.TTL(key), "window is not extended")

	stale := "storefront:ratelimit:login:9.9.9.9"
	s.Require().NoError(s.mr.Set(stale, "5"))
	s.Zero(s.mr.TTL(stale))
	allowed, err := s.limiter.Allow(s.ctx, "login:9.9.9.9")
	s.Require().NoError(err)
	s.False(allowed)
	s.Equal(time.Minute, s.mr.TTL(stale), "key without a ttl gets one")
}

func (s *RedisLimiterTestSuite) TestKeysAreIndependent() {
	for i := 0; i < 3; i++ {
		s.limiter.Allow(s.ctx, "a")
	}
	allowed, err := s.limiter.Allow(s.ctx, "b")
	s.Require().NoError(err)
	s.True(allowed)
}

func (s *RedisLimiterTestSuite) TestRedisDown() {
	s.mr.Close()
	_, err := s.limiter.Allow(s.ctx, "a")
	s.Error(err)
}

func TestNewRedisClientFailsOnBadAddress(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "127.0.0.1:1", "")
	require.Error(t, err)
}
