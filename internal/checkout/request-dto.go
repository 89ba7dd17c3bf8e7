package checkout

type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=credit_card debit_card promptpay bank_transfer"`
}
