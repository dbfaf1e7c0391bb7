// backend/src/services/statement_service.go
package services

import (
	"fmt"
	"io"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/ceifolio/backend/src/logger"
	"github.com/username/ceifolio/backend/src/models"
	"github.com/username/ceifolio/backend/src/parsers"
	"github.com/username/ceifolio/backend/src/processors"
)

const (
	ckLatestResult         = "res_latest_statement_result"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type statementServiceImpl struct {
	grouper     processors.TradeGrouper
	fees        processors.FeeCalculator
	splitter    processors.BuySellSplitter
	aggregator  processors.PositionAggregator
	averager    processors.AveragePriceCalculator
	reportCache *cache.Cache
}

func NewStatementService(
	grouper processors.TradeGrouper,
	fees processors.FeeCalculator,
	splitter processors.BuySellSplitter,
	aggregator processors.PositionAggregator,
	averager processors.AveragePriceCalculator,
	reportCache *cache.Cache,
) StatementService {
	return &statementServiceImpl{
		grouper:     grouper,
		fees:        fees,
		splitter:    splitter,
		aggregator:  aggregator,
		averager:    averager,
		reportCache: reportCache,
	}
}

// ProcessStatement runs the full pipeline on one statement file. Any
// stage error aborts the whole run with no partial result.
func (s *statementServiceImpl) ProcessStatement(fileReader io.Reader, source string, filename string) (*StatementResult, error) {
	startTime := time.Now()
	logger.L.Info("ProcessStatement START", "source", source, "filename", filename)

	parser, err := parsers.GetParser(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	statement, err := parser.Parse(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingFailed, err)
	}
	logger.L.Info("Statement parsed",
		"referenceYear", statement.ReferenceYear,
		"institution", statement.Institution,
		"tradeCount", len(statement.Trades))

	grouped := s.grouper.Process(statement.Trades)

	taxed, err := s.fees.Process(grouped)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	splits := s.splitter.Process(taxed)
	positions := s.averager.Process(s.aggregator.Process(splits))

	result := &StatementResult{
		ReferenceYear: statement.ReferenceYear,
		Institution:   statement.Institution,
		FeeReport:     feeReport(taxed),
		Positions:     positions,
	}

	s.reportCache.Set(ckLatestResult, result, cache.NoExpiration)

	logger.L.Info("ProcessStatement END",
		"groupedTrades", len(grouped),
		"positions", len(positions),
		"duration", time.Since(startTime).String())
	return result, nil
}

// LatestResult returns the most recently processed statement's reports,
// if one was processed during this run. Nothing is persisted between
// runs.
func (s *statementServiceImpl) LatestResult() (*StatementResult, bool) {
	if cached, found := s.reportCache.Get(ckLatestResult); found {
		return cached.(*StatementResult), true
	}
	return nil, false
}

// feeReport flattens taxed trades into the per-trade fee report rows.
func feeReport(taxed []models.TaxedTrade) []models.FeeDetail {
	report := make([]models.FeeDetail, 0, len(taxed))
	for _, t := range taxed {
		report = append(report, models.FeeDetail{
			TradeDate:     t.TradeDate,
			AssetCode:     t.AssetCode,
			Side:          t.Side,
			GrossValue:    t.GrossValue,
			SettlementFee: t.SettlementFee,
			EmolumentFee:  t.EmolumentFee,
		})
	}
	return report
}
