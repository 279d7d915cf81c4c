package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_CombinedType(t *testing.T) {
	event := NewEvent(EventTypeCreated, EntityTypeExpense, map[string]int{"id": 1})

	assert.Equal(t, "expense.created", event.Type)
	assert.Equal(t, EntityTypeExpense, event.Entity)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEvent_ToJSON(t *testing.T) {
	event := CategoryUpdated(map[string]interface{}{"id": 3, "name": "Food"})

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "category.updated", decoded["type"])
	assert.Equal(t, "category", decoded["entity"])

	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Food", payload["name"])
}

func TestEventConstructors(t *testing.T) {
	cases := []struct {
		event Event
		want  string
	}{
		{AccountCreated(nil), "account.created"},
		{AccountUpdated(nil), "account.updated"},
		{AccountDeleted(nil), "account.deleted"},
		{CategoryCreated(nil), "category.created"},
		{CategoryDeleted(nil), "category.deleted"},
		{ExpenseCreated(nil), "expense.created"},
		{ExpenseUpdated(nil), "expense.updated"},
		{ExpenseDeleted(nil), "expense.deleted"},
		{MonthUpdated(nil), "month.updated"},
		{SettingsUpdated(nil), "settings.updated"},
		{StateReplaced(nil), "state.replaced"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.event.Type)
	}
}
