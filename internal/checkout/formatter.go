package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/southsteak/ordering-backend/internal/cart"
	"github.com/southsteak/ordering-backend/pkg/enums"
)

const preferredTimeLayout = "Monday, January 2, 2006 at 03:04 PM"

// BuildOrderText renders the plain-text order summary sent over Messenger.
// The layout mirrors what the kitchen staff reads on their phone, so keep
// the emoji markers stable.
func BuildOrderText(c *cart.Cart, input Input, paymentMethodName, currency string) string {
	var b strings.Builder

	b.WriteString("🥩 SOUTH STEAK ORDER\n\n")
	fmt.Fprintf(&b, "👤 Customer: %s\n", input.CustomerName)
	fmt.Fprintf(&b, "📞 Contact: %s\n", input.ContactNumber)
	fmt.Fprintf(&b, "📍 Service: %s\n", serviceLabel(input.ServiceType))

	switch input.ServiceType {
	case enums.ServiceTypeDelivery:
		if input.Delivery != nil {
			fmt.Fprintf(&b, "🏠 Address: %s\n", input.Delivery.Address)
			if input.Delivery.Landmark != "" {
				fmt.Fprintf(&b, "🗺️ Landmark: %s\n", input.Delivery.Landmark)
			}
		}
	case enums.ServiceTypePickup:
		if input.Pickup != nil {
			fmt.Fprintf(&b, "⏰ Pickup Time: %s\n", pickupTimeInfo(*input.Pickup))
		}
	case enums.ServiceTypeDineIn:
		if input.DineIn != nil {
			fmt.Fprintf(&b, "👥 Party Size: %d %s\n", input.DineIn.PartySize, pluralizePerson(input.DineIn.PartySize))
			fmt.Fprintf(&b, "🕐 Preferred Time: %s\n", input.DineIn.PreferredTime.Format(preferredTimeLayout))
		}
	}

	b.WriteString("\n📋 YOUR ORDER:\n")
	for _, line := range c.Lines {
		b.WriteString(formatLine(line, currency))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n💰 TOTAL AMOUNT: %s%s\n", currency, c.TotalPrice().StringFixed(2))
	if input.ServiceType == enums.ServiceTypeDelivery {
		b.WriteString("🛵 DELIVERY FEE: [To be confirmed]\n")
	}

	fmt.Fprintf(&b, "\n💳 PAYMENT METHOD: %s\n", paymentMethodName)
	b.WriteString("📸 VERIFICATION: [Please attach screenshot of payment]\n")

	if notes := strings.TrimSpace(input.Notes); notes != "" {
		fmt.Fprintf(&b, "\n📝 NOTES: %s\n", notes)
	}

	b.WriteString("\nThank you for choosing South Steak. Exceptionally grilled for you. 🥩")
	return b.String()
}

// MessengerURL builds the m.me deep link carrying the encoded order text.
func MessengerURL(pageID, orderText string) string {
	return fmt.Sprintf("https://m.me/%s?text=%s", pageID, url.QueryEscape(orderText))
}

func formatLine(line cart.Line, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "• %s", strings.ToUpper(line.Name))
	if line.VariationName != nil {
		fmt.Fprintf(&b, " [%s]", *line.VariationName)
	}
	if len(line.AddOns) > 0 {
		names := make([]string, len(line.AddOns))
		for i, addOn := range line.AddOns {
			if addOn.Qty > 1 {
				names[i] = fmt.Sprintf("%s (x%d)", addOn.Name, addOn.Qty)
			} else {
				names[i] = addOn.Name
			}
		}
		fmt.Fprintf(&b, " + %s", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, " x%d - %s%s", line.Quantity, currency, line.Subtotal().StringFixed(2))
	return b.String()
}

func serviceLabel(serviceType enums.ServiceType) string {
	value := serviceType.String()
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func pickupTimeInfo(details PickupDetails) string {
	if details.CustomTime != "" {
		return details.CustomTime
	}
	return details.Minutes + " minutes"
}

func pluralizePerson(count int) string {
	if count == 1 {
		return "person"
	}
	return "persons"
}
