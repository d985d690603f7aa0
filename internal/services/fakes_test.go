package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Ananth-NQI/storebot-backend/internal/logger"
	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/internal/storage"
)

const (
	testAdminID    int64 = 1000
	testCustomerID int64 = 2000
)

var errStoreDown = errors.New("store down")

type sentMessage struct {
	kind     string // text, keyboard, photo
	chatID   int64
	text     string
	rows     [][]models.InlineButton
	imageRef string
}

type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	acks    []string
	sendErr error
}

func (f *fakeMessenger) record(m sentMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMessenger) SendText(ctx context.Context, chatID int64, text string) error {
	return f.record(sentMessage{kind: "text", chatID: chatID, text: text})
}

func (f *fakeMessenger) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]models.InlineButton) error {
	return f.record(sentMessage{kind: "keyboard", chatID: chatID, text: text, rows: rows})
}

func (f *fakeMessenger) SendPhoto(ctx context.Context, chatID int64, caption, imageRef string) error {
	return f.record(sentMessage{kind: "photo", chatID: chatID, text: caption, imageRef: imageRef})
}

func (f *fakeMessenger) AnswerCallback(ctx context.Context, queryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks = append(f.acks, queryID)
	return nil
}

func (f *fakeMessenger) last() sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMessage{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeMessenger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeNotifier struct {
	texts []string
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

// failingStore lets a test break individual store operations
type failingStore struct {
	*storage.MemoryStore
	createProductErr error
	createOrderErr   error
	clearCartErr     error
	getCartErr       error
}

func (f *failingStore) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if f.createProductErr != nil {
		return nil, f.createProductErr
	}
	return f.MemoryStore.CreateProduct(ctx, p)
}

func (f *failingStore) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	if f.createOrderErr != nil {
		return nil, f.createOrderErr
	}
	return f.MemoryStore.CreateOrder(ctx, o)
}

func (f *failingStore) ClearCart(ctx context.Context, userID int64) error {
	if f.clearCartErr != nil {
		return f.clearCartErr
	}
	return f.MemoryStore.ClearCart(ctx, userID)
}

func (f *failingStore) GetCartLines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	if f.getCartErr != nil {
		return nil, f.getCartErr
	}
	return f.MemoryStore.GetCartLines(ctx, userID)
}

type testEnv struct {
	store      *failingStore
	sessions   *MemorySessionRegistry
	messenger  *fakeMessenger
	notifier   *fakeNotifier
	wizard     *AdminWizard
	ordering   *OrderingWorkflow
	dispatcher *Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     &failingStore{MemoryStore: storage.NewMemoryStore()},
		sessions:  NewMemorySessionRegistry(),
		messenger: &fakeMessenger{},
		notifier:  &fakeNotifier{},
	}
	log := logger.Nop()

	env.wizard = NewAdminWizard(testAdminID, env.sessions, env.store, env.messenger, log)
	env.ordering = NewOrderingWorkflow(OrderingDeps{
		Catalog:    env.store,
		Cart:       env.store,
		Orders:     env.store,
		Messenger:  env.messenger,
		Notifier:   env.notifier,
		MiniAppURL: "https://shop.example.com/app",
		Log:        log,
	})
	env.dispatcher = NewDispatcher(env.wizard, env.ordering, log)
	return env
}

func admin() models.Sender    { return models.Sender{UserID: testAdminID, ChatID: testAdminID} }
func customer() models.Sender { return models.Sender{UserID: testCustomerID, ChatID: testCustomerID} }

func photoOf(s models.Sender) models.PhotoEvent {
	return models.PhotoEvent{Sender: s, Variants: []models.PhotoVariant{
		{FileID: "P-small", Width: 90, Height: 67},
		{FileID: "P-medium", Width: 320, Height: 240},
		{FileID: "P-large", Width: 1280, Height: 960},
	}}
}
