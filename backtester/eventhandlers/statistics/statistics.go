package statistics

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/exchanges/order"
	"github.com/thrasher-corp/execsim/log"
)

// NewStatistic returns an in-memory execution log
func NewStatistic() *Statistic {
	return &Statistic{
		rejections: make(map[fill.Reason]int64),
	}
}

// NewDatabaseStatistic returns an execution log that writes every fill
// through w before keeping it in memory
func NewDatabaseStatistic(w FillWriter) (*Statistic, error) {
	if w == nil {
		return nil, errFillWriterIsNil
	}
	s := NewStatistic()
	s.writer = w
	return s, nil
}

// Append records a successful fill
func (s *Statistic) Append(f *fill.Fill) error {
	if f == nil {
		return errNilFill
	}
	if !f.Success {
		return fmt.Errorf("%w: %s %s", errFillNotSuccess, f.Side, f.Symbol)
	}
	if s.writer != nil {
		if err := s.writer.Insert(context.Background(), f); err != nil {
			return fmt.Errorf("%w %s: %w", errCannotPersistFill, f.ID, err)
		}
	}
	s.m.Lock()
	s.fills = append(s.fills, f)
	s.m.Unlock()
	return nil
}

// AppendRejection adds a rejection to the tally
func (s *Statistic) AppendRejection(r *fill.Rejection) {
	if r == nil {
		log.Errorln(log.Statistics, errNilRejection)
		return
	}
	s.m.Lock()
	if s.rejections == nil {
		s.rejections = make(map[fill.Reason]int64)
	}
	s.rejections[r.Reason]++
	s.m.Unlock()
}

// Load seeds the log with previously recorded fills, such as those read back
// from an export or the database
func (s *Statistic) Load(fills []*fill.Fill) error {
	for i := range fills {
		if fills[i] == nil {
			return fmt.Errorf("%w at index %d", errNilFill, i)
		}
	}
	s.m.Lock()
	s.fills = append(s.fills, fills...)
	s.m.Unlock()
	return nil
}

// Fills returns a copy of the fill history in append order
func (s *Statistic) Fills() []*fill.Fill {
	s.m.RLock()
	defer s.m.RUnlock()
	resp := make([]*fill.Fill, len(s.fills))
	copy(resp, s.fills)
	return resp
}

// Statistics calculates the summary across every appended fill
func (s *Statistic) Statistics() Summary {
	s.m.RLock()
	defer s.m.RUnlock()

	var sum Summary
	bps := make(stats.Float64Data, 0, len(s.fills))
	for _, f := range s.fills {
		sum.Count++
		switch f.Side {
		case order.Buy:
			sum.BuyCount++
		case order.Sell:
			sum.SellCount++
		}
		if f.IsMaker {
			sum.MakerCount++
		} else {
			sum.TakerCount++
		}
		sum.TotalSlippage = sum.TotalSlippage.Add(f.Slippage)
		sum.TotalFees = sum.TotalFees.Add(f.Fee)
		sum.TotalNotional = sum.TotalNotional.Add(f.Notional)
		bps = append(bps, f.SlippageBps.InexactFloat64())
	}
	if len(s.rejections) > 0 {
		sum.Rejections = make(map[string]int64, len(s.rejections))
		for reason, n := range s.rejections {
			sum.Rejections[reason.String()] = n
		}
	}
	if sum.Count == 0 {
		return sum
	}
	count := decimal.NewFromInt(sum.Count)
	sum.AverageSlippage = sum.TotalSlippage.Div(count)
	sum.AverageFees = sum.TotalFees.Div(count)

	// stats only errors on empty input, which is excluded above
	if median, err := stats.Median(bps); err == nil {
		sum.MedianSlippageBps = decimal.NewFromFloat(median)
	}
	if sd, err := stats.StandardDeviation(bps); err == nil {
		sum.StdDevSlippageBps = decimal.NewFromFloat(sd)
	}
	if highest, err := stats.Max(bps); err == nil {
		sum.MaxSlippageBps = decimal.NewFromFloat(highest)
	}
	return sum
}

// PrintSummary logs the summary to the statistics sub logger
func (s *Statistic) PrintSummary() {
	sum := s.Statistics()
	log.Infof(log.Statistics, "fills: %d (buy %d, sell %d, maker %d, taker %d)",
		sum.Count, sum.BuyCount, sum.SellCount, sum.MakerCount, sum.TakerCount)
	log.Infof(log.Statistics, "slippage total %s average %s, median %s bps, max %s bps",
		sum.TotalSlippage.StringFixed(4), sum.AverageSlippage.StringFixed(4),
		sum.MedianSlippageBps.StringFixed(2), sum.MaxSlippageBps.StringFixed(2))
	log.Infof(log.Statistics, "fees total %s average %s", sum.TotalFees.StringFixed(4), sum.AverageFees.StringFixed(4))
	for reason, n := range sum.Rejections {
		log.Infof(log.Statistics, "rejected %s: %d", reason, n)
	}
}
