package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ananth-NQI/storebot-backend/internal/metrics"
	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/internal/storage"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

// OrderingWorkflow handles the customer side: welcome, cart and orders
type OrderingWorkflow struct {
	catalog    storage.CatalogStore
	cart       storage.CartStore
	orders     storage.OrderStore
	messenger  Messenger
	notifier   Notifier
	miniAppURL string
	log        *zap.SugaredLogger
}

type OrderingDeps struct {
	Catalog    storage.CatalogStore
	Cart       storage.CartStore
	Orders     storage.OrderStore
	Messenger  Messenger
	Notifier   Notifier
	MiniAppURL string
	Log        *zap.SugaredLogger
}

func NewOrderingWorkflow(deps OrderingDeps) *OrderingWorkflow {
	return &OrderingWorkflow{
		catalog:    deps.Catalog,
		cart:       deps.Cart,
		orders:     deps.Orders,
		messenger:  deps.Messenger,
		notifier:   deps.Notifier,
		miniAppURL: deps.MiniAppURL,
		log:        deps.Log,
	}
}

// Welcome answers /start with a button that opens the web app
func (o *OrderingWorkflow) Welcome(ctx context.Context, s models.Sender) error {
	if o.miniAppURL == "" {
		return o.messenger.SendText(ctx, s.ChatID, msgWelcomeNoApp)
	}
	rows := [][]models.InlineButton{{models.WebAppButton(msgOpenCatalog, o.miniAppURL)}}
	return o.messenger.SendKeyboard(ctx, s.ChatID, msgWelcome, rows)
}

// OrderHistory answers /orders with the sender's past orders
func (o *OrderingWorkflow) OrderHistory(ctx context.Context, s models.Sender) error {
	orders, err := o.orders.GetOrdersByUser(ctx, s.UserID)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return o.messenger.SendText(ctx, s.ChatID, msgNoOrders)
	}
	return o.messenger.SendText(ctx, s.ChatID, formatOrderHistory(orders))
}

// Handle applies a decoded web app payload for the sender
func (o *OrderingWorkflow) Handle(ctx context.Context, s models.Sender, payload models.AppPayload) error {
	switch p := payload.(type) {
	case models.AddToCartPayload:
		return o.addToCart(ctx, s, p)
	case models.PlaceOrderPayload:
		_, err := o.placeOrder(ctx, s, p)
		return err
	}
	return nil
}

func (o *OrderingWorkflow) addToCart(ctx context.Context, s models.Sender, p models.AddToCartPayload) error {
	product, err := o.catalog.GetProduct(ctx, p.ProductID)
	if errors.Is(err, e.ErrProductNotFound) {
		return o.messenger.SendText(ctx, s.ChatID, msgProductUnavailable)
	}
	if err != nil {
		return fmt.Errorf("get product %s: %w", p.ProductID, err)
	}

	line := models.CartLine{UserID: s.UserID, ProductID: product.ID, Quantity: p.Quantity}
	if err := o.cart.UpsertCartLine(ctx, line); err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}

	return o.messenger.SendText(ctx, s.ChatID, fmt.Sprintf(msgAddedToCartFmt, product.Name, p.Quantity))
}

// resolveCart joins the sender's lines with the catalog. Lines whose product
// was deleted are skipped.
func (o *OrderingWorkflow) resolveCart(ctx context.Context, userID int64) ([]models.ResolvedLine, error) {
	lines, err := o.cart.GetCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart lines: %w", err)
	}

	resolved := make([]models.ResolvedLine, 0, len(lines))
	for _, l := range lines {
		product, err := o.catalog.GetProduct(ctx, l.ProductID)
		if errors.Is(err, e.ErrProductNotFound) {
			o.log.Warnf("Skipping cart line of user %d: product %s no longer exists", userID, l.ProductID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get product %s: %w", l.ProductID, err)
		}
		resolved = append(resolved, models.ResolvedLine{Product: product, Quantity: l.Quantity})
	}
	return resolved, nil
}

// placeOrder records the order before clearing the cart, so a failure in
// between leaves the cart in place instead of losing the order.
func (o *OrderingWorkflow) placeOrder(ctx context.Context, s models.Sender, p models.PlaceOrderPayload) (*models.Order, error) {
	lines, err := o.resolveCart(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, o.messenger.SendText(ctx, s.ChatID, msgCartEmpty)
	}

	order, err := o.orders.CreateOrder(ctx, &models.Order{
		UserID:   s.UserID,
		Name:     p.Name,
		Address:  p.Address,
		Phone:    p.Phone,
		Products: formatProducts(lines),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	metrics.OrdersTotal.Inc()
	o.log.Infof("📦 Order %s created for user %d", order.ID, s.UserID)

	if err := o.notifier.Notify(ctx, formatOrderNotification(order)); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		o.log.Errorf("Failed to notify admin about order %s: %v", order.ID, err)
	}

	if err := o.cart.ClearCart(ctx, s.UserID); err != nil {
		return order, fmt.Errorf("clear cart after order %s: %w", order.ID, err)
	}

	if err := o.messenger.SendText(ctx, s.ChatID, msgOrderAccepted); err != nil {
		return order, err
	}
	return order, nil
}
