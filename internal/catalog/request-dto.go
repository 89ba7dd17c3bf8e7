package catalog

type UpdateSeatStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=AVAILABLE BOOKED"`
}

type UpdateZonePriceRequest struct {
	UnitPrice int64 `json:"unit_price" binding:"required,gt=0"`
}
