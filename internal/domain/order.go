package domain

// OrderStatus is the fulfillment state of an order.
// New orders always start at pending; transitions happen only through
// explicit administrative actions.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks whether payment has been received for an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentMethod is how the customer pays. This core only records the
// selection and returns instructions; no payment processing happens here.
type PaymentMethod string

const (
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodCashOffice     PaymentMethod = "in_person_cash_office"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCashOnDelivery, PaymentMethodCashOffice:
		return true
	}
	return false
}

// ContactInfo identifies the person placing an order.
type ContactInfo struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
}

// Address is a shipping destination.
type Address struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
}

// PaymentInstructions tells the customer how to complete payment for the
// selected method.
type PaymentInstructions struct {
	Method PaymentMethod `json:"method"`
	Title  string        `json:"title"`
	Steps  []string      `json:"steps"`
}

// InstructionsFor returns the payment instructions for a method.
func InstructionsFor(method PaymentMethod) PaymentInstructions {
	switch method {
	case PaymentMethodCashOnDelivery:
		return PaymentInstructions{
			Method: method,
			Title:  "Cash on delivery",
			Steps: []string{
				"Have the exact order total ready when the courier arrives.",
				"A cash handling surcharge is already included in your total.",
			},
		}
	case PaymentMethodCashOffice:
		return PaymentInstructions{
			Method: method,
			Title:  "Pay at our cash office",
			Steps: []string{
				"Visit the cash office within 5 business days.",
				"Quote your order number at the counter.",
			},
		}
	default:
		return PaymentInstructions{
			Method: PaymentMethodBankTransfer,
			Title:  "Bank transfer",
			Steps: []string{
				"Transfer the order total to the account listed on your confirmation email.",
				"Use your order number as the payment reference.",
				"Orders are confirmed once the transfer clears.",
			},
		}
	}
}
