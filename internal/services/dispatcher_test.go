package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

func commandUpdate(userID int64, cmd string) string {
	return fmt.Sprintf(`{"update_id":1,"message":{"message_id":1,"date":1,
		"from":{"id":%d,"is_bot":false,"first_name":"U"},
		"chat":{"id":%d,"type":"private"},
		"text":"/%s","entities":[{"type":"bot_command","offset":0,"length":%d}]}}`,
		userID, userID, cmd, len(cmd)+1)
}

func textUpdate(userID int64, text string) string {
	return fmt.Sprintf(`{"update_id":2,"message":{"message_id":2,"date":1,
		"from":{"id":%d,"is_bot":false,"first_name":"U"},
		"chat":{"id":%d,"type":"private"},"text":%q}}`, userID, userID, text)
}

func photoUpdate(userID int64) string {
	return fmt.Sprintf(`{"update_id":3,"message":{"message_id":3,"date":1,
		"from":{"id":%d,"is_bot":false,"first_name":"U"},
		"chat":{"id":%d,"type":"private"},
		"photo":[
			{"file_id":"P-small","file_unique_id":"s","width":90,"height":67,"file_size":1000},
			{"file_id":"P-medium","file_unique_id":"m","width":320,"height":240,"file_size":9000},
			{"file_id":"P-large","file_unique_id":"l","width":1280,"height":960,"file_size":90000}
		]}}`, userID, userID)
}

func callbackUpdate(userID int64, data string) string {
	return fmt.Sprintf(`{"update_id":4,"callback_query":{"id":"cb-1",
		"from":{"id":%d,"is_bot":false,"first_name":"U"},
		"message":{"message_id":9,"date":1,"chat":{"id":%d,"type":"private"},"text":"pick"},
		"chat_instance":"ci","data":%q}}`, userID, userID, data)
}

func appDataUpdate(userID int64, data string) string {
	return fmt.Sprintf(`{"update_id":5,"message":{"message_id":5,"date":1,
		"from":{"id":%d,"is_bot":false,"first_name":"U"},
		"chat":{"id":%d,"type":"private"},
		"web_app_data":{"data":%q,"button_text":"Shop"}}}`, userID, userID, data)
}

func TestParseUpdate_Kinds(t *testing.T) {
	cases := []struct {
		name string
		body string
		kind models.EventKind
	}{
		{"command", commandUpdate(testAdminID, "add"), models.KindCommand},
		{"text", textUpdate(testAdminID, "Chair"), models.KindText},
		{"photo", photoUpdate(testAdminID), models.KindPhoto},
		{"callback", callbackUpdate(testAdminID, "del_1"), models.KindCallback},
		{"app data", appDataUpdate(testCustomerID, `{"action":"order"}`), models.KindAppData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok, err := ParseUpdate([]byte(tc.body))
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, tc.kind, ev.Kind())
		})
	}
}

func TestParseUpdate_Fields(t *testing.T) {
	ev, _, err := ParseUpdate([]byte(commandUpdate(testAdminID, "edit")))
	require.NoError(t, err)
	require.Equal(t, models.CommandEvent{Sender: admin(), Name: "edit"}, ev)

	ev, _, err = ParseUpdate([]byte(callbackUpdate(testAdminID, "edit_abc")))
	require.NoError(t, err)
	require.Equal(t, models.CallbackEvent{Sender: admin(), QueryID: "cb-1", Data: "edit_abc"}, ev)

	ev, _, err = ParseUpdate([]byte(photoUpdate(testAdminID)))
	require.NoError(t, err)
	photo := ev.(models.PhotoEvent)
	require.Len(t, photo.Variants, 3)
	best, _ := photo.Largest()
	require.Equal(t, "P-large", best.FileID)

	ev, _, err = ParseUpdate([]byte(appDataUpdate(testCustomerID, `{"action":"add_to_cart"}`)))
	require.NoError(t, err)
	require.Equal(t, `{"action":"add_to_cart"}`, ev.(models.AppDataEvent).Data)
}

func TestParseUpdate_Unhandled(t *testing.T) {
	ev, ok, err := ParseUpdate([]byte(`{"update_id":6,"edited_message":{"message_id":1,"date":1,"chat":{"id":1,"type":"private"},"text":"x"}}`))
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, ev)

	_, ok, err = ParseUpdate([]byte(`{"update_id":7,"message":{"message_id":1,"date":1,
		"from":{"id":1,"is_bot":false,"first_name":"U"},"chat":{"id":1,"type":"private"},
		"sticker":{"file_id":"s","file_unique_id":"s","width":1,"height":1,"is_animated":false}}}`))
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = ParseUpdate([]byte(`not json`))
	require.Error(t, err)
}

func dispatchRaw(t *testing.T, env *testEnv, body string) error {
	t.Helper()
	ev, ok, err := ParseUpdate([]byte(body))
	require.NoError(t, err)
	require.True(t, ok)
	return env.dispatcher.Dispatch(context.Background(), ev)
}

func TestDispatcher_AdminScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, dispatchRaw(t, env, commandUpdate(testAdminID, "add")))
	require.NoError(t, dispatchRaw(t, env, textUpdate(testAdminID, "Chair")))
	require.NoError(t, dispatchRaw(t, env, textUpdate(testAdminID, "Wooden chair")))
	require.NoError(t, dispatchRaw(t, env, photoUpdate(testAdminID)))

	products, err := env.store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Chair", products[0].Name)
	require.Equal(t, "Wooden chair", products[0].Description)
	require.Equal(t, "P-large", products[0].ImageID)
	require.Equal(t, 0, env.sessions.Len())

	require.NoError(t, dispatchRaw(t, env, callbackUpdate(testAdminID, "del_"+products[0].ID)))
	products, _ = env.store.ListProducts(ctx)
	require.Empty(t, products)
	require.Equal(t, []string{"cb-1"}, env.messenger.acks)
}

func TestDispatcher_CustomerScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := seedProduct(t, env, "A")
	b := seedProduct(t, env, "B")

	require.NoError(t, dispatchRaw(t, env, commandUpdate(testCustomerID, "start")))
	require.Equal(t, "keyboard", env.messenger.last().kind)

	require.NoError(t, dispatchRaw(t, env, appDataUpdate(testCustomerID,
		fmt.Sprintf(`{"action":"add_to_cart","productId":%q,"qty":2}`, a.ID))))
	require.NoError(t, dispatchRaw(t, env, appDataUpdate(testCustomerID,
		fmt.Sprintf(`{"action":"add_to_cart","productId":%q,"qty":1}`, b.ID))))
	require.NoError(t, dispatchRaw(t, env, appDataUpdate(testCustomerID,
		`{"action":"order","name":"Ali","address":"X","phone":"123"}`)))

	orders, err := env.store.GetOrdersByUser(ctx, testCustomerID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "A × 2\nB × 1", orders[0].Products)

	require.NoError(t, dispatchRaw(t, env, commandUpdate(testCustomerID, "orders")))
	require.Contains(t, env.messenger.last().text, "A × 2")
}

func TestDispatcher_Payloads(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, dispatchRaw(t, env, appDataUpdate(testCustomerID, `{"action":"wishlist"}`)))
	require.Equal(t, 0, env.messenger.count())

	err := dispatchRaw(t, env, appDataUpdate(testCustomerID, `{"action":"order","name":"Ali"}`))
	require.ErrorIs(t, err, e.ErrMalformedPayload)

	err = dispatchRaw(t, env, appDataUpdate(testCustomerID, `garbage`))
	require.ErrorIs(t, err, e.ErrMalformedPayload)
}

func TestDispatcher_CustomerCannotUseWizard(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, dispatchRaw(t, env, commandUpdate(testCustomerID, "add")))
	require.NoError(t, dispatchRaw(t, env, textUpdate(testCustomerID, "Chair")))
	require.NoError(t, dispatchRaw(t, env, photoUpdate(testCustomerID)))

	products, _ := env.store.ListProducts(ctx)
	require.Empty(t, products)
	require.Equal(t, 0, env.sessions.Len())
	require.Equal(t, 0, env.messenger.count())
}

func TestDispatcher_NilEvent(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.dispatcher.Dispatch(context.Background(), nil))
}
