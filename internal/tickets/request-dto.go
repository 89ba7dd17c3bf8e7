package tickets

type ValidateTicketRequest struct {
	TicketCode string `json:"ticket_code" binding:"required"`
}
