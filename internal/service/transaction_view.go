package service

import (
	"context"

	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/derive"
	"folioboard/internal/models"
)

type transactionAPI interface {
	ListTransactions(ctx context.Context, params folio.ListTransactionsParams) ([]models.Transaction, error)
}

// TransactionRow is one rendered transactions row. SplitAdjusted drives the
// split badge next to the quantity; AdjustedQuantityFmt is only set when the
// badge shows.
type TransactionRow struct {
	models.Transaction
	SplitAdjusted       bool   `json:"split_adjusted"`
	QuantityFmt         string `json:"quantity_fmt"`
	AdjustedQuantityFmt string `json:"adjusted_quantity_fmt,omitempty"`
	PriceFmt            string `json:"price_fmt"`
	FeesFmt             string `json:"fees_fmt"`
	TotalFmt            string `json:"total_fmt"`
}

// TransactionsView is the full transactions table state.
type TransactionsView struct {
	Rows []TransactionRow `json:"rows"`
	Sort derive.SortState `json:"sort"`
}

type TransactionViewService struct {
	API    transactionAPI
	Sorter *derive.Sorter
	Logger *zap.Logger
}

// Table fetches, sorts and formats the transaction history. Money cells use
// the portfolio's base currency; the backend reports transaction amounts
// already converted.
func (s *TransactionViewService) Table(ctx context.Context, params folio.ListTransactionsParams, baseCurrency string, sort derive.SortState) (*TransactionsView, error) {
	txs, err := s.API.ListTransactions(ctx, params)
	if err != nil {
		return nil, err
	}

	sorted := derive.SortTransactions(txs, sort.Key, sort.Dir, s.Sorter)
	rows := make([]TransactionRow, len(sorted))
	for i, tx := range sorted {
		total := tx.Total()
		row := TransactionRow{
			Transaction:   tx,
			SplitAdjusted: tx.SplitAdjusted(),
			QuantityFmt:   quantityCell(tx.Quantity),
			PriceFmt:      currencyCell(tx.Price, baseCurrency),
			FeesFmt:       currencyCell(tx.Fees, baseCurrency),
			TotalFmt:      currencyCell(&total, baseCurrency),
		}
		if row.SplitAdjusted {
			row.AdjustedQuantityFmt = quantityCell(tx.AdjustedQuantity)
		}
		rows[i] = row
	}
	return &TransactionsView{Rows: rows, Sort: sort}, nil
}
