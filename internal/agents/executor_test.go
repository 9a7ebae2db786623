package agents

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtable/internal/cache"
	"roundtable/internal/config"
	"roundtable/internal/inference"
	"roundtable/internal/retry"
	"roundtable/internal/types"
)

type mockClient struct {
	mu    sync.Mutex
	calls int
	last  inference.Request
	fn    func(int, inference.Request) (string, error)
}

func (m *mockClient) Complete(ctx context.Context, req inference.Request) (string, error) {
	m.mu.Lock()
	m.calls++
	n := m.calls
	m.last = req
	m.mu.Unlock()
	if m.fn != nil {
		return m.fn(n, req)
	}
	return "review text", nil
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testPolicy() *retry.Policy {
	p := retry.New(3, time.Second, time.Minute, nil)
	p.WithSleep(func(ctx context.Context, d time.Duration) error { return nil })
	return p
}

func testAgent() *types.AgentIdentity {
	return &types.AgentIdentity{
		Name:         "Methodology Expert",
		Slug:         SlugMethodology,
		Instructions: "review the methodology",
		BaseWeight:   0.9,
		Temperature:  0.7,
		Tier:         types.TierStandard,
	}
}

func newTestExecutor(client inference.Client, store cache.Store) *Executor {
	return NewExecutor(ExecutorConfig{
		Client:    client,
		Store:     store,
		Policy:    testPolicy(),
		Models:    config.Default().Models,
		MaxTokens: 4000,
		Timeout:   time.Minute,
	})
}

func TestRun_CacheHitSkipsClient(t *testing.T) {
	client := &mockClient{}
	store := cache.NewMemoryStore()
	exec := newTestExecutor(client, store)
	agent := testAgent()

	first := exec.Run(context.Background(), agent, "paper content")
	require.NoError(t, first.Err)
	assert.False(t, first.Cached)
	assert.Equal(t, "review text", first.Text)

	second := exec.Run(context.Background(), agent, "paper content")
	require.NoError(t, second.Err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)

	// Identical inputs with caching enabled reach the client exactly once.
	assert.Equal(t, 1, client.callCount())
	assert.Equal(t, 1, store.Len())
}

func TestRun_DisabledCacheCallsThroughEveryTime(t *testing.T) {
	client := &mockClient{}
	exec := newTestExecutor(client, nil)
	agent := testAgent()

	exec.Run(context.Background(), agent, "paper content")
	exec.Run(context.Background(), agent, "paper content")
	assert.Equal(t, 2, client.callCount())
}

func TestRun_RequestCarriesTierModelAndInstructions(t *testing.T) {
	client := &mockClient{}
	exec := newTestExecutor(client, nil)
	agent := testAgent()

	exec.Run(context.Background(), agent, "paper content")

	req := client.last
	assert.Equal(t, "gpt-4.1", req.Model)
	assert.Equal(t, agent.Instructions, req.System)
	assert.Equal(t, "paper content", req.User)
	assert.Equal(t, 0.7, req.Temperature)
	assert.Equal(t, 4000, req.MaxTokens)
	assert.Equal(t, time.Minute, req.Timeout)
}

func TestRun_DifferentTierMissesCache(t *testing.T) {
	client := &mockClient{}
	store := cache.NewMemoryStore()
	exec := newTestExecutor(client, store)

	agent := testAgent()
	exec.Run(context.Background(), agent, "paper content")

	promoted := *agent
	promoted.Tier = types.TierPowerful
	exec.Run(context.Background(), &promoted, "paper content")

	// The resolved model is part of the fingerprint, so a tier change is a
	// cache miss.
	assert.Equal(t, 2, client.callCount())
	assert.Equal(t, 2, store.Len())
}

func TestRun_PermanentFailureNotCached(t *testing.T) {
	client := &mockClient{fn: func(int, inference.Request) (string, error) {
		return "", inference.NewPermanent(400, "bad request")
	}}
	store := cache.NewMemoryStore()
	exec := newTestExecutor(client, store)

	outcome := exec.Run(context.Background(), testAgent(), "paper content")
	assert.False(t, outcome.Succeeded())
	require.Error(t, outcome.Err)
	assert.Equal(t, 1, client.callCount())
	assert.Zero(t, store.Len())
}

func TestRun_TransientFailureRetriesThenCaches(t *testing.T) {
	client := &mockClient{fn: func(n int, _ inference.Request) (string, error) {
		if n == 1 {
			return "", inference.NewTransient(429, "rate limited")
		}
		return "recovered review", nil
	}}
	store := cache.NewMemoryStore()
	exec := newTestExecutor(client, store)

	outcome := exec.Run(context.Background(), testAgent(), "paper content")
	require.NoError(t, outcome.Err)
	assert.Equal(t, "recovered review", outcome.Text)
	assert.Equal(t, 2, client.callCount())
	assert.Equal(t, 1, store.Len())
}

type brokenStore struct {
	puts int
}

func (b *brokenStore) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (b *brokenStore) Put(string, string) error         { b.puts++; return nil }
func (b *brokenStore) Close() error                     { return nil }

func TestRun_CacheReadErrorFallsThrough(t *testing.T) {
	client := &mockClient{}
	store := &brokenStore{}
	exec := newTestExecutor(client, store)

	outcome := exec.Run(context.Background(), testAgent(), "paper content")
	require.NoError(t, outcome.Err)
	assert.Equal(t, 1, client.callCount())
	assert.Equal(t, 1, store.puts)
}
