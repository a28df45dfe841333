package service

import (
	"context"
	"errors"

	"merchant-pos/internal/core/domain"
	"merchant-pos/internal/core/ports"
	"merchant-pos/pkg/apperror"

	"github.com/rs/zerolog"
)

// HistoryServiceImpl implements ports.HistoryService. Every call goes to the
// gateway; nothing is cached or persisted locally.
type HistoryServiceImpl struct {
	session ports.SessionService
	log     zerolog.Logger
}

// NewHistoryService creates a new HistoryServiceImpl.
func NewHistoryService(session ports.SessionService, log zerolog.Logger) *HistoryServiceImpl {
	return &HistoryServiceImpl{session: session, log: log}
}

// History returns the transactions of the most recent settled batch, falling
// back to the unsettled list when no batch exists yet. A gateway application
// error on the batch list is benign, new accounts simply have no batches, so
// it yields an empty history rather than a failure.
func (s *HistoryServiceImpl) History(ctx context.Context) ([]domain.Transaction, error) {
	gw, err := s.session.Gateway()
	if err != nil {
		return nil, err
	}

	batches, err := gw.GetSettledBatchList(ctx)
	if err != nil {
		if isGatewayApplicationError(err) {
			s.log.Debug().Msg("no settled batches reported")
			return []domain.Transaction{}, nil
		}
		return nil, err
	}

	// A first batch without an id is as good as no batch at all.
	if len(batches) == 0 || batches[0].BatchID == "" {
		return gw.GetUnsettledTransactionList(ctx)
	}

	// The gateway lists batches most recent first; the first entry is the
	// one to show, without re-sorting.
	return gw.GetTransactionList(ctx, batches[0].BatchID)
}

// DailyStatistics sums settle amounts over currently unsettled transactions.
func (s *HistoryServiceImpl) DailyStatistics(ctx context.Context) (int64, error) {
	gw, err := s.session.Gateway()
	if err != nil {
		return 0, err
	}

	txns, err := gw.GetUnsettledTransactionList(ctx)
	if err != nil {
		if isGatewayApplicationError(err) {
			return 0, nil
		}
		return 0, err
	}

	var total int64
	for _, t := range txns {
		total += t.SettleAmountMinor
	}
	return total, nil
}

func isGatewayApplicationError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == "GW_002"
}
