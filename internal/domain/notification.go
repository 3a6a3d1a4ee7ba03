package domain

// NotificationRecord is what the storefront reports after a captured payment.
// Every field is optional.
type NotificationRecord struct {
	Name      Text               `json:"name"`
	Email     Text               `json:"email"`
	Phone     Text               `json:"phone"`
	Address   Text               `json:"address"`
	Delivery  Text               `json:"delivery"`
	PaymentID Text               `json:"payment_id"`
	Items     []NotificationItem `json:"items"`
}

type NotificationItem struct {
	Name     Text `json:"name"`
	Quantity Text `json:"quantity"`
	Price    Text `json:"price"`
}
