package tickets

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrTicketUsed     = errors.New("ticket already used")
	ErrNotTicketOwner = errors.New("ticket belongs to another user")
)

// Service interface defines the contract for ticket business logic
type Service interface {
	IssueForBooking(ctx context.Context, bookingID, userID, concertID uuid.UUID, seatIDs []uuid.UUID) error
	GetBookingTickets(ctx context.Context, bookingID, userID uuid.UUID) ([]Ticket, error)
	GetUserTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	ValidateTicket(ctx context.Context, code string) (*Ticket, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// IssueForBooking generates one ticket per seat. Codes are random and the
// QR payload embeds enough to verify the ticket offline at the gate.
func (s *service) IssueForBooking(ctx context.Context, bookingID, userID, concertID uuid.UUID, seatIDs []uuid.UUID) error {
	now := time.Now()
	batch := make([]Ticket, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		code, err := generateTicketCode()
		if err != nil {
			return fmt.Errorf("failed to generate ticket code: %w", err)
		}
		qr, err := encodeQRPayload(code, bookingID, seatID)
		if err != nil {
			return fmt.Errorf("failed to encode QR payload: %w", err)
		}
		batch = append(batch, Ticket{
			ID:         uuid.New(),
			BookingID:  bookingID,
			UserID:     userID,
			ConcertID:  concertID,
			SeatID:     seatID,
			TicketCode: code,
			QRPayload:  qr,
			IssuedAt:   now,
		})
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to persist tickets: %w", err)
	}
	return nil
}

func (s *service) GetBookingTickets(ctx context.Context, bookingID, userID uuid.UUID) ([]Ticket, error) {
	tickets, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	for _, t := range tickets {
		if t.UserID != userID {
			return nil, ErrNotTicketOwner
		}
	}
	return tickets, nil
}

func (s *service) GetUserTickets(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	tickets, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	return tickets, nil
}

// ValidateTicket is the gate scan: a valid, unused ticket is marked used
// exactly once.
func (s *service) ValidateTicket(ctx context.Context, code string) (*Ticket, error) {
	ticket, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to look up ticket: %w", err)
	}
	if ticket.IsUsed() {
		return nil, ErrTicketUsed
	}
	if err := s.repo.MarkUsed(ctx, ticket.ID); err != nil {
		return nil, fmt.Errorf("failed to mark ticket used: %w", err)
	}
	now := time.Now()
	ticket.UsedAt = &now
	return ticket, nil
}

// generateTicketCode creates a code like TKT-7QX2MKCD
func generateTicketCode() (string, error) {
	alphabet := "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	code := make([]byte, 8)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		code[i] = alphabet[num.Int64()]
	}
	return "TKT-" + string(code), nil
}

func encodeQRPayload(code string, bookingID, seatID uuid.UUID) (string, error) {
	payload := map[string]string{
		"ticket_code": code,
		"booking_id":  bookingID.String(),
		"seat_id":     seatID.String(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
