package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SaleServiceImpl implements ports.SaleService. Drafts live only in this
// process; a terminal outcome removes the draft, so card data never outlives
// the sale it belongs to.
type SaleServiceImpl struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*domain.SaleDraft

	session ports.SessionService
	log     zerolog.Logger
	now     func() time.Time
}

// NewSaleService creates a new SaleServiceImpl.
func NewSaleService(session ports.SessionService, log zerolog.Logger) *SaleServiceImpl {
	return &SaleServiceImpl{
		drafts:  make(map[uuid.UUID]*domain.SaleDraft),
		session: session,
		log:     log,
		now:     time.Now,
	}
}

// NewSale opens a fresh draft at the amount step.
func (s *SaleServiceImpl) NewSale(ctx context.Context) (*domain.SaleDraft, error) {
	if _, err := s.session.Gateway(); err != nil {
		return nil, err
	}

	draft := domain.NewSaleDraft()

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	s.log.Debug().Str("sale_id", draft.ID.String()).Msg("sale draft opened")
	return draft, nil
}

// SetAmount records the amount and advances to card entry. The quote is
// recomputed from the session tax rate on every call.
func (s *SaleServiceImpl) SetAmount(ctx context.Context, saleID uuid.UUID, amountMinor int64) (*domain.SaleQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draftLocked(saleID)
	if err != nil {
		return nil, err
	}
	if draft.State != domain.SaleStateAmountEntry {
		return nil, apperror.ErrInvalidTransition(fmt.Sprintf("cannot set amount while sale is in state %s", draft.State))
	}

	draft.AmountMinor = amountMinor
	if err := draft.ValidateAmount(); err != nil {
		draft.AmountMinor = 0
		return nil, apperror.Validation(err.Error())
	}
	draft.State = domain.SaleStateCardEntry

	settings := s.session.Settings()
	tax := domain.TaxMinor(amountMinor, settings.TaxRatePercent)
	return &domain.SaleQuote{
		AmountMinor: amountMinor,
		TaxMinor:    tax,
		TotalMinor:  amountMinor + tax,
		Currency:    settings.Currency,
	}, nil
}

// SetCard normalizes and records card details, advancing to customer entry.
func (s *SaleServiceImpl) SetCard(ctx context.Context, saleID uuid.UUID, card ports.CardInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draftLocked(saleID)
	if err != nil {
		return err
	}
	if draft.State != domain.SaleStateCardEntry {
		return apperror.ErrInvalidTransition(fmt.Sprintf("cannot set card while sale is in state %s", draft.State))
	}

	draft.CardNumber = domain.NormalizeCardNumber(card.Number)
	draft.ExpirationMonth = card.ExpirationMonth
	draft.ExpirationYear = card.ExpirationYear
	draft.CVV = card.CVV
	if err := draft.ValidateCard(s.now()); err != nil {
		draft.CardNumber, draft.CVV = "", ""
		return apperror.Validation(err.Error())
	}
	draft.State = domain.SaleStateCustomerEntry
	return nil
}

// SetCustomer records the billing block, leaving the draft ready to submit.
func (s *SaleServiceImpl) SetCustomer(ctx context.Context, saleID uuid.UUID, customer domain.CustomerDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draftLocked(saleID)
	if err != nil {
		return err
	}
	if draft.State != domain.SaleStateCustomerEntry {
		return apperror.ErrInvalidTransition(fmt.Sprintf("cannot set customer while sale is in state %s", draft.State))
	}

	draft.Customer = customer
	if err := draft.ValidateCustomer(); err != nil {
		draft.Customer = domain.CustomerDetails{}
		return apperror.Validation(err.Error())
	}
	return nil
}

// Back steps the wizard one step toward amount entry. Navigation is blocked
// while a submission is in flight and meaningless at a terminal state.
func (s *SaleServiceImpl) Back(ctx context.Context, saleID uuid.UUID) (domain.SaleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draftLocked(saleID)
	if err != nil {
		return "", err
	}

	switch draft.State {
	case domain.SaleStateCardEntry:
		draft.State = domain.SaleStateAmountEntry
	case domain.SaleStateCustomerEntry:
		draft.State = domain.SaleStateCardEntry
	case domain.SaleStateSubmitting:
		return "", apperror.ErrSubmissionInFlight()
	default:
		return "", apperror.ErrInvalidTransition(fmt.Sprintf("cannot go back from state %s", draft.State))
	}
	return draft.State, nil
}

// Submit runs the full validation chain, sends the payment, classifies the
// reply, and discards the draft. Exactly one submission may be in flight per
// draft; the SUBMITTING state is the guard.
func (s *SaleServiceImpl) Submit(ctx context.Context, saleID uuid.UUID) (*domain.Outcome, error) {
	gw, err := s.session.Gateway()
	if err != nil {
		return nil, err
	}
	settings := s.session.Settings()

	s.mu.Lock()
	draft, err := s.draftLocked(saleID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if draft.State == domain.SaleStateSubmitting {
		s.mu.Unlock()
		return nil, apperror.ErrSubmissionInFlight()
	}
	if draft.State != domain.SaleStateCustomerEntry {
		s.mu.Unlock()
		return nil, apperror.ErrInvalidTransition(fmt.Sprintf("cannot submit from state %s", draft.State))
	}
	if err := draft.ValidateAmount(); err != nil {
		s.mu.Unlock()
		return nil, apperror.Validation(err.Error())
	}
	if err := draft.ValidateCard(s.now()); err != nil {
		s.mu.Unlock()
		return nil, apperror.Validation(err.Error())
	}
	if err := draft.ValidateCustomer(); err != nil {
		s.mu.Unlock()
		return nil, apperror.Validation(err.Error())
	}
	draft.State = domain.SaleStateSubmitting
	req := domain.BuildPaymentRequest(draft, settings)
	s.mu.Unlock()

	reply, err := gw.CreateTransaction(ctx, req)

	var outcome domain.Outcome
	if err != nil {
		outcome = failedOutcomeFromError(err)
	} else {
		outcome = ClassifySubmission(reply)
	}

	// Terminal either way; the draft and its card data are gone now.
	s.mu.Lock()
	draft.State = outcome.TerminalState()
	delete(s.drafts, saleID)
	s.mu.Unlock()

	event := s.log.Info().
		Str("sale_id", saleID.String()).
		Str("status", string(outcome.Status)).
		Int64("total_minor", req.TotalMinor)
	if outcome.TransactionID != nil {
		event = event.Str("transaction_id", *outcome.TransactionID)
	}
	event.Msg("sale submitted")

	return &outcome, nil
}

func (s *SaleServiceImpl) draftLocked(saleID uuid.UUID) (*domain.SaleDraft, error) {
	draft, ok := s.drafts[saleID]
	if !ok {
		return nil, apperror.ErrSaleNotFound()
	}
	return draft, nil
}

// failedOutcomeFromError maps a submission-time error onto a failed outcome
// so the caller always gets a terminal result instead of a bare error.
func failedOutcomeFromError(err error) domain.Outcome {
	kind := domain.ErrorKindGateway
	message := "Transaction failed"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Code {
		case "GW_001":
			kind = domain.ErrorKindTransport
		case "GW_003":
			kind = domain.ErrorKindDecode
		case "AUTH_001":
			kind = domain.ErrorKindAuth
		}
	}
	return domain.FailedOutcome(kind, message)
}
