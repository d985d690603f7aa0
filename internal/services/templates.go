package services

import (
	"fmt"
	"strings"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
)

// Reply texts
const (
	msgWelcome            = "👋 Welcome to our shop!"
	msgWelcomeNoApp       = "👋 Welcome to our shop! The catalog will open here soon."
	msgOpenCatalog        = "🛍 Products"
	msgAskName            = "Send the product name:"
	msgAskNewName         = "Send the new name:"
	msgAskDescription     = "Send the description:"
	msgAskPhoto           = "Send a photo:"
	msgPickToEdit         = "Choose a product to edit:"
	msgPickToDelete       = "Choose a product to delete:"
	msgNoProducts         = "There are no products yet. Use /add to create one."
	msgProductDeleted     = "🗑 Product deleted"
	msgProductAdded       = "✅ Product added"
	msgProductEdited      = "✏️ Product updated"
	msgCartEmpty          = "🛒 Your cart is empty!"
	msgOrderAccepted      = "✅ Your order has been received!"
	msgNoOrders           = "You have no orders yet."
	msgAddedToCartFmt     = "🛒 Added to cart: %s × %d"
	msgProductUnavailable = "❌ This product is no longer available."
)

// Callback tag prefixes
const (
	callbackEdit   = "edit_"
	callbackDelete = "del_"
)

// formatLine renders one order line as "<product name> × <quantity>"
func formatLine(name string, qty int) string {
	return fmt.Sprintf("%s × %d", name, qty)
}

// formatProducts renders the order summary, one line per product
func formatProducts(lines []models.ResolvedLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, formatLine(l.Product.Name, l.Quantity))
	}
	return strings.Join(parts, "\n")
}

// formatOrderNotification is the text the administrator receives
func formatOrderNotification(o *models.Order) string {
	return fmt.Sprintf("🆕 New order!\n\nName: %s\nAddress: %s\nPhone: %s\n\nProducts:\n%s",
		o.Name, o.Address, o.Phone, o.Products)
}

// formatOrderHistory lists a customer's orders, newest last
func formatOrderHistory(orders []*models.Order) string {
	var b strings.Builder
	b.WriteString("📦 Your orders:")
	for i, o := range orders {
		fmt.Fprintf(&b, "\n\n#%d (%s)\n%s", i+1, o.CreatedAt.Format("2006-01-02 15:04"), o.Products)
	}
	return b.String()
}

// productCaption is shown under the product photo after add/edit
func productCaption(header string, p *models.Product) string {
	return fmt.Sprintf("%s\n\n%s\n%s", header, p.Name, p.Description)
}

// productKeyboard builds one button per product tagged with prefix+id
func productKeyboard(products []*models.Product, prefix string) [][]models.InlineButton {
	rows := make([][]models.InlineButton, 0, len(products))
	for _, p := range products {
		rows = append(rows, []models.InlineButton{models.CallbackButton(p.Name, prefix+p.ID)})
	}
	return rows
}
