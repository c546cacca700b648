package domain

// Order statuses. The status field is independent of the isPaid/isDelivered
// flags: a COD order can be delivered while still unpaid.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Review statuses
const (
	ReviewStatusActive  = "active"
	ReviewStatusFlagged = "flagged"
	ReviewStatusRemoved = "removed"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}
