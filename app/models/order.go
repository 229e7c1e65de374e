package models

// OrderStatus is the lifecycle state of a distributor order.
type OrderStatus string

const (
	// OrderPending awaits sufficient stock; the only non-terminal state.
	OrderPending OrderStatus = "pending"
	// OrderFulfilled means stock was decremented and shipped. Terminal.
	OrderFulfilled OrderStatus = "fulfilled"
	// OrderCancelled means the order was withdrawn before fulfillment.
	// Terminal; never touches stock.
	OrderCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool { return s != OrderPending }

// DistributorOrder is a purchase order placed by a distributor against one
// blanket model. BlanketModelName is copied from the blanket at creation
// time and never re-synced, so the order stays meaningful after the
// blanket is deleted. FulfillmentDate is non-nil iff Status is fulfilled.
type DistributorOrder struct {
	ID               uint        `gorm:"primaryKey"                       json:"id"`
	SellerID         uint        `gorm:"not null"                         json:"seller_id"`
	BlanketModelID   uint        `gorm:"not null;index"                   json:"blanket_model_id"`
	BlanketModelName string      `gorm:"size:100;not null"                json:"blanket_model_name"`
	Quantity         int         `gorm:"not null"                         json:"quantity"`
	Status           OrderStatus `gorm:"size:50;not null;default:pending" json:"status"`
	OrderDate        Timestamp   `gorm:"not null;index"                   json:"order_date"`
	FulfillmentDate  *Timestamp  `json:"fulfillment_date"`
}

func (DistributorOrder) TableName() string { return "distributor_orders" }
