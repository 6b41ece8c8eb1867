// Package shipping computes delivery availability and cost for the
// Algerian wilaya network from a static carrier catalog.
package shipping

import (
	"math"

	"github.com/dzmarket/payment-engine/internal/models"
)

// CostUnavailable is returned when a service does not cover the wilaya
// or the parcel exceeds the service's weight ceiling.
const CostUnavailable = -1

const (
	// weightAllowance is the parcel mass included in the base price.
	weightAllowance = 5
	// surchargeStep / surchargeFee: each started 5 kg block over the
	// allowance adds a flat 100 DZD.
	surchargeStep = 5
	surchargeFee  = 100
)

type Engine struct {
	rates []models.ShippingRate
}

func NewEngine(rates []models.ShippingRate) *Engine {
	return &Engine{rates: rates}
}

// RatesForWilaya filters the catalog to services covering the wilaya and
// weight, with free-shipping thresholds applied to the returned prices.
// Results keep catalog declaration order.
func (e *Engine) RatesForWilaya(wilaya string, weight, orderValue float64) []models.ShippingRate {
	var out []models.ShippingRate
	for _, rate := range e.rates {
		if !servesWilaya(rate, wilaya) {
			continue
		}
		if rate.MaxWeight > 0 && weight > rate.MaxWeight {
			continue
		}
		if rate.FreeThreshold > 0 && orderValue >= rate.FreeThreshold {
			rate.Price = 0
		}
		out = append(out, rate)
	}
	return out
}

// CalculateCost returns the shipping cost for one service, CostUnavailable
// when the service cannot carry the parcel, and 0 when the free-shipping
// threshold is met. The threshold check short-circuits before the
// overweight surcharge: a heavy free-shipping order still ships free.
func (e *Engine) CalculateCost(method models.ShippingMethod, wilaya string, weight, orderValue float64) float64 {
	rate, ok := e.findRate(method)
	if !ok {
		return CostUnavailable
	}
	if !servesWilaya(rate, wilaya) {
		return CostUnavailable
	}
	if rate.MaxWeight > 0 && weight > rate.MaxWeight {
		return CostUnavailable
	}
	if rate.FreeThreshold > 0 && orderValue >= rate.FreeThreshold {
		return 0
	}

	var surcharge float64
	if weight > weightAllowance {
		surcharge = math.Ceil((weight-weightAllowance)/surchargeStep) * surchargeFee
	}
	return rate.Price + surcharge
}

// ValidatePostalCode reports whether the postal code belongs to the wilaya.
func (e *Engine) ValidatePostalCode(postalCode, wilaya string) bool {
	codes, ok := wilayaPostalCodes[wilaya]
	if !ok {
		return false
	}
	for _, c := range codes {
		if c == postalCode {
			return true
		}
	}
	return false
}

func (e *Engine) findRate(method models.ShippingMethod) (models.ShippingRate, bool) {
	for _, rate := range e.rates {
		if rate.Method == method {
			return rate, true
		}
	}
	return models.ShippingRate{}, false
}

func servesWilaya(rate models.ShippingRate, wilaya string) bool {
	if len(rate.AvailableWilayas) == 0 {
		return true
	}
	for _, w := range rate.AvailableWilayas {
		if w == wilaya {
			return true
		}
	}
	return false
}
