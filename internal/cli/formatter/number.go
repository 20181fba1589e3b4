package formatter

import (
	"math"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printerMu sync.RWMutex
	printer   = message.NewPrinter(language.English)
)

// SetLocale changes digit grouping and decimal marks for all amounts.
func SetLocale(tag language.Tag) {
	printerMu.Lock()
	defer printerMu.Unlock()
	printer = message.NewPrinter(tag)
}

func currentPrinter() *message.Printer {
	printerMu.RLock()
	defer printerMu.RUnlock()
	return printer
}

// Amount formats v with locale grouping. Whole values print without a
// fraction, everything else with two decimals.
func Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	p := currentPrinter()
	if v == math.Trunc(v) {
		return p.Sprintf("%.0f", v)
	}
	return p.Sprintf("%.2f", v)
}

// SignedAmount is Amount with negatives in red and zeros dimmed.
func SignedAmount(v float64) string {
	s := Amount(v)
	switch {
	case v < 0:
		return StyleRed.Render(s)
	case v == 0:
		return Dim(s)
	default:
		return s
	}
}

// Percent formats a value already expressed in percent.
func Percent(v float64) string {
	return currentPrinter().Sprintf("%.1f%%", v)
}
