package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betrack_transactions_recorded_total",
		Help: "Transactions successfully recorded, by type.",
	}, []string{"type"})

	budgetsReset = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betrack_budgets_reset_total",
		Help: "Category budgets zeroed by the reset sweep.",
	})

	receiptsScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betrack_receipts_scanned_total",
		Help: "Receipt uploads processed by the OCR pass, by outcome.",
	}, []string{"outcome"})
)
