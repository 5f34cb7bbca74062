package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisCacheTestSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache *RedisCache
}

func (s *RedisCacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.cache = NewRedisCache(db, WithRedisPrefix("test:"))
}

func (s *RedisCacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *RedisCacheTestSuite) TestGetHit() {
	s.mock.ExpectGet("test:layout:abc").SetVal(`{"width":1600}`)

	data, ok, err := s.cache.Get(context.Background(), "layout:abc")

	require.NoError(s.T(), err)
	assert.True(s.T(), ok)
	assert.Equal(s.T(), `{"width":1600}`, string(data))
}

func (s *RedisCacheTestSuite) TestGetMiss() {
	s.mock.ExpectGet("test:layout:abc").RedisNil()

	data, ok, err := s.cache.Get(context.Background(), "layout:abc")

	require.NoError(s.T(), err)
	assert.False(s.T(), ok)
	assert.Nil(s.T(), data)
}

func (s *RedisCacheTestSuite) TestGetBackendError() {
	s.mock.ExpectGet("test:layout:abc").SetErr(errors.New("connection refused"))

	_, ok, err := s.cache.Get(context.Background(), "layout:abc")

	assert.Error(s.T(), err)
	assert.False(s.T(), ok)
	assert.Contains(s.T(), err.Error(), "connection refused")
}

func (s *RedisCacheTestSuite) TestSet() {
	s.mock.ExpectSet("test:artifact:1", []byte("<svg/>"), time.Hour).SetVal("OK")

	err := s.cache.Set(context.Background(), "artifact:1", []byte("<svg/>"), time.Hour)

	assert.NoError(s.T(), err)
}

func (s *RedisCacheTestSuite) TestSetError() {
	s.mock.ExpectSet("test:artifact:1", []byte("<svg/>"), time.Hour).SetErr(errors.New("OOM"))

	err := s.cache.Set(context.Background(), "artifact:1", []byte("<svg/>"), time.Hour)

	assert.Error(s.T(), err)
}

func (s *RedisCacheTestSuite) TestDelete() {
	s.mock.ExpectDel("test:dataset:x").SetVal(1)

	assert.NoError(s.T(), s.cache.Delete(context.Background(), "dataset:x"))
}

func (s *RedisCacheTestSuite) TestDeleteMissingKey() {
	s.mock.ExpectDel("test:dataset:x").SetVal(0)

	assert.NoError(s.T(), s.cache.Delete(context.Background(), "dataset:x"))
}

func TestRedisCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}

func TestRedisDefaultPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db)

	mock.ExpectGet(DefaultRedisPrefix + "k").RedisNil()
	_, ok, err := c.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
