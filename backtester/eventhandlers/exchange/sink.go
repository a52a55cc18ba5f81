package exchange

import (
	"github.com/thrasher-corp/execsim/backtester/eventtypes/fill"
	"github.com/thrasher-corp/execsim/log"
)

// LogSink forwards pipeline events to the exchange sub logger
type LogSink struct{}

// Filled logs a completed fill
func (LogSink) Filled(f *fill.Fill) {
	log.Infow(log.Exchange, "order filled",
		"symbol", f.Symbol,
		"side", f.Side.String(),
		"amount", f.Amount.String(),
		"fillPrice", f.FillPrice.String(),
		"fee", f.Fee.String(),
		"maker", f.IsMaker)
}

// Rejected logs a rejected order
func (LogSink) Rejected(r *fill.Rejection) {
	log.Warnw(log.Exchange, "order rejected",
		"symbol", r.Symbol,
		"side", r.Side.String(),
		"amount", r.Amount.String(),
		"reason", r.Reason.String(),
		"detail", r.Detail)
}

// Fault logs a collaborator failure
func (LogSink) Fault(operation string, err error) {
	log.Errorf(log.Exchange, "%s: %v", operation, err)
}
