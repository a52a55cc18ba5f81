package main

import (
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/thrasher-corp/execsim/backtester/eventhandlers/statistics"
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/backtester/funding"
)

const (
	statusFilled   = "FILLED"
	statusRejected = "REJECTED"
	empty          = "-"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

// renderResults writes one row per fill or rejection
func renderResults(w io.Writer, results []fill.Result) {
	table := newTable(w, []string{"STATUS", "SYMBOL", "SIDE", "AMOUNT", "FILL PRICE", "SLIPPAGE BPS", "FEE", "NOTIONAL", "DETAIL"})
	for _, res := range results {
		switch r := res.(type) {
		case *fill.Fill:
			role := "taker"
			if r.IsMaker {
				role = "maker"
			}
			table.Append([]string{
				statusFilled,
				r.Symbol,
				r.Side.String(),
				r.Amount.String(),
				r.FillPrice.String(),
				r.SlippageBps.StringFixed(2),
				r.Fee.String(),
				r.Notional.String(),
				role,
			})
		case *fill.Rejection:
			detail := r.Reason.String()
			if r.Detail != "" {
				detail += ": " + r.Detail
			}
			table.Append([]string{
				statusRejected,
				r.Symbol,
				r.Side.String(),
				r.Amount.String(),
				empty,
				empty,
				empty,
				empty,
				detail,
			})
		}
	}
	table.Render()
}

// renderPortfolio writes cash followed by positions ordered by symbol
func renderPortfolio(w io.Writer, snap funding.Snapshot) {
	table := newTable(w, []string{"ASSET", "AMOUNT"})
	table.Append([]string{"CASH", snap.Cash.String()})
	symbols := make([]string, 0, len(snap.Positions))
	for sym := range snap.Positions {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	for _, sym := range symbols {
		table.Append([]string{sym, snap.Positions[sym].String()})
	}
	table.Render()
}

// renderSummary writes the execution statistics as key value rows
func renderSummary(w io.Writer, sum *statistics.Summary) {
	table := newTable(w, []string{"STATISTIC", "VALUE"})
	table.AppendBulk([][]string{
		{"Fills", strconv.FormatInt(sum.Count, 10)},
		{"Buys", strconv.FormatInt(sum.BuyCount, 10)},
		{"Sells", strconv.FormatInt(sum.SellCount, 10)},
		{"Maker", strconv.FormatInt(sum.MakerCount, 10)},
		{"Taker", strconv.FormatInt(sum.TakerCount, 10)},
		{"Total notional", sum.TotalNotional.StringFixed(4)},
		{"Total slippage", sum.TotalSlippage.StringFixed(4)},
		{"Average slippage", sum.AverageSlippage.StringFixed(4)},
		{"Median slippage bps", sum.MedianSlippageBps.StringFixed(2)},
		{"Std dev slippage bps", sum.StdDevSlippageBps.StringFixed(2)},
		{"Max slippage bps", sum.MaxSlippageBps.StringFixed(2)},
		{"Total fees", sum.TotalFees.StringFixed(4)},
		{"Average fees", sum.AverageFees.StringFixed(4)},
	})
	reasons := make([]string, 0, len(sum.Rejections))
	for reason := range sum.Rejections {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		table.Append([]string{"Rejected " + reason, strconv.FormatInt(sum.Rejections[reason], 10)})
	}
	table.Render()
}
