package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{
		id:       id,
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages := make([][]byte, len(m.messages))
	copy(messages, m.messages)
	return messages
}

// waitForMessages polls until the client received at least n messages.
// Hub sends are asynchronous so tests must wait.
func waitForMessages(t *testing.T, client *mockClient, n int) [][]byte {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		messages := client.GetMessages()
		if len(messages) >= n {
			return messages
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d messages, got %d", n, len(messages))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_RegisterAndCount(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ClientCount())

	client := newMockClient("client-1")
	hub.Register(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_UnregisterUnknownClient(t *testing.T) {
	hub := NewHub()
	hub.Unregister(newMockClient("ghost"))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	first := newMockClient("client-1")
	second := newMockClient("client-2")
	hub.Register(first)
	hub.Register(second)

	hub.Broadcast(AccountCreated(map[string]interface{}{"id": 1}))

	messages := waitForMessages(t, first, 1)
	assert.Contains(t, string(messages[0]), "account.created")
	waitForMessages(t, second, 1)
}

func TestHub_BroadcastSkipsNothingOnClosedClient(t *testing.T) {
	hub := NewHub()
	open := newMockClient("open")
	closed := newMockClient("closed")
	require.NoError(t, closed.Close())
	hub.Register(open)
	hub.Register(closed)

	hub.Broadcast(ExpenseDeleted(map[string]int64{"id": 7}))

	messages := waitForMessages(t, open, 1)
	assert.Contains(t, string(messages[0]), "expense.deleted")
	assert.Empty(t, closed.GetMessages())
}

func TestHub_BroadcastNoClients(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(StateReplaced(nil)) // must not panic
}
