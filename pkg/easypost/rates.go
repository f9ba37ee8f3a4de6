package easypost

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSmartrateAccuracy is returned for an unknown accuracy tag.
var ErrInvalidSmartrateAccuracy = errors.New("invalid smartrate accuracy")

// SmartrateAccuracy is the delivery-time percentile a smartrate estimate is read at.
type SmartrateAccuracy string

// Known accuracy percentiles.
const (
	Percentile50 SmartrateAccuracy = "percentile_50"
	Percentile75 SmartrateAccuracy = "percentile_75"
	Percentile85 SmartrateAccuracy = "percentile_85"
	Percentile90 SmartrateAccuracy = "percentile_90"
	Percentile95 SmartrateAccuracy = "percentile_95"
	Percentile97 SmartrateAccuracy = "percentile_97"
	Percentile99 SmartrateAccuracy = "percentile_99"
)

// AllSmartrateAccuracies returns every accuracy in ascending order.
func AllSmartrateAccuracies() []SmartrateAccuracy {
	return []SmartrateAccuracy{
		Percentile50,
		Percentile75,
		Percentile85,
		Percentile90,
		Percentile95,
		Percentile97,
		Percentile99,
	}
}

// ParseSmartrateAccuracy parses an accuracy tag such as "percentile_90".
func ParseSmartrateAccuracy(s string) (SmartrateAccuracy, error) {
	candidate := SmartrateAccuracy(strings.ToLower(strings.TrimSpace(s)))

	for _, accuracy := range AllSmartrateAccuracies() {
		if accuracy == candidate {
			return accuracy, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidSmartrateAccuracy, s)
}

// DaysAt returns the estimate at accuracy, or nil when the carrier gave none.
func (t TimeInTransit) DaysAt(accuracy SmartrateAccuracy) (*int, error) {
	switch accuracy {
	case Percentile50:
		return t.Percentile50, nil
	case Percentile75:
		return t.Percentile75, nil
	case Percentile85:
		return t.Percentile85, nil
	case Percentile90:
		return t.Percentile90, nil
	case Percentile95:
		return t.Percentile95, nil
	case Percentile97:
		return t.Percentile97, nil
	case Percentile99:
		return t.Percentile99, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSmartrateAccuracy, accuracy)
	}
}

// RateFilter narrows the rates LowestRate chooses from. Empty sets do not filter.
// Carrier and service names compare case-insensitively.
type RateFilter struct {
	IncludeCarriers []string
	IncludeServices []string
	ExcludeCarriers []string
	ExcludeServices []string
}

func (f RateFilter) matches(rate Rate) bool {
	if len(f.IncludeCarriers) > 0 && !containsFold(f.IncludeCarriers, rate.Carrier) {
		return false
	}

	if len(f.IncludeServices) > 0 && !containsFold(f.IncludeServices, rate.Service) {
		return false
	}

	if containsFold(f.ExcludeCarriers, rate.Carrier) {
		return false
	}

	return !containsFold(f.ExcludeServices, rate.Service)
}

// LowestRate returns the cheapest rate that passes filter. On equal prices the earlier
// rate wins. It fails with ErrNoRatesFound when nothing passes.
func LowestRate(rates []Rate, filter RateFilter) (Rate, error) {
	lowest := -1

	for i := range rates {
		if !filter.matches(rates[i]) {
			continue
		}

		if lowest < 0 || rates[i].Rate < rates[lowest].Rate {
			lowest = i
		}
	}

	if lowest < 0 {
		return Rate{}, ErrNoRatesFound
	}

	return rates[lowest], nil
}

// LowestSmartrate returns the cheapest smartrate whose estimate at accuracy is at most
// deliveryDays. On equal prices the earlier smartrate wins. It fails with
// ErrNoRatesFound when nothing qualifies.
func LowestSmartrate(smartrates []Smartrate, deliveryDays int, accuracy SmartrateAccuracy) (Smartrate, error) {
	_, err := TimeInTransit{}.DaysAt(accuracy)
	if err != nil {
		return Smartrate{}, err
	}

	lowest := -1

	for i := range smartrates {
		days, _ := smartrates[i].TimeInTransit.DaysAt(accuracy)

		if days == nil || *days > deliveryDays {
			continue
		}

		if lowest < 0 || smartrates[i].Rate.Rate < smartrates[lowest].Rate.Rate {
			lowest = i
		}
	}

	if lowest < 0 {
		return Smartrate{}, ErrNoRatesFound
	}

	return smartrates[lowest], nil
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}

	return false
}
