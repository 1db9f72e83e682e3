package service

import (
	"context"

	"TradeGate/pkg/security"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

func newInvalidCardError() error {
	return kerrors.New(400, "INVALID_CARD", "card number failed validation")
}

// PaymentService validates payment instruments before they are handed to
// the payment provider. Full card numbers never leave this service: the
// reply carries only the masked form.
type PaymentService struct {
	logger *log.Helper
}

// NewPaymentService creates a new PaymentService instance.
func NewPaymentService(logger log.Logger) *PaymentService {
	return &PaymentService{logger: log.NewHelper(logger)}
}

// ValidateCardRequest is the body of POST /v1/payment/validate.
type ValidateCardRequest struct {
	CardNumber string `json:"cardNumber"`
}

// ValidateCardReply reports the validation outcome with the card masked.
type ValidateCardReply struct {
	Valid  bool   `json:"valid"`
	Masked string `json:"masked"`
}

// ValidateCard checks the card number with the Luhn algorithm. The masked
// form is returned for display either way; an invalid number is an HTTP
// 400 with reason INVALID_CARD.
func (s *PaymentService) ValidateCard(ctx context.Context, req *ValidateCardRequest) (*ValidateCardReply, error) {
	masked := security.MaskCardNumber(req.CardNumber)

	if !security.ValidateCardLuhn(req.CardNumber) {
		s.logger.Warnw("msg", "card validation failed", "card_number", req.CardNumber)
		return nil, newInvalidCardError()
	}

	s.logger.Infow("msg", "card validated", "card_number", req.CardNumber)
	return &ValidateCardReply{Valid: true, Masked: masked}, nil
}
