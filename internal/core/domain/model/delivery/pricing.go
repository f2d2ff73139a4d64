package delivery

import (
	"time"

	"fleetops/internal/pkg/errs"
)

// Pricing constants, in the platform's single implied currency.
const (
	// BasePrice is the flat fee applied to every delivery.
	BasePrice = 50.0
	// WeightRatePerKg is charged per kilogram of package weight.
	WeightRatePerKg = 10.0
	// DistanceRatePerKm is charged per kilometre of estimated distance.
	DistanceRatePerKm = 8.0
	// DefaultCommissionRate is the fraction of the total price paid to the
	// driver as earnings.
	DefaultCommissionRate = 0.7
)

// Cluster is the package size category driving a flat pricing surcharge.
type Cluster int

const (
	ClusterSmall Cluster = iota
	ClusterMedium
	ClusterLarge
	ClusterExtraLarge
)

// ParseCluster maps the wire representation to a Cluster.
// Unrecognized values fall back to Small, matching the zero surcharge.
func ParseCluster(s string) Cluster {
	switch s {
	case "Medium":
		return ClusterMedium
	case "Large":
		return ClusterLarge
	case "Extra Large":
		return ClusterExtraLarge
	default:
		return ClusterSmall
	}
}

// String implements fmt.Stringer.
func (c Cluster) String() string {
	switch c {
	case ClusterMedium:
		return "Medium"
	case ClusterLarge:
		return "Large"
	case ClusterExtraLarge:
		return "Extra Large"
	default:
		return "Small"
	}
}

// surcharge returns the flat cluster charge. Unrecognized clusters charge nothing.
func (c Cluster) surcharge() float64 {
	switch c {
	case ClusterMedium:
		return 50
	case ClusterLarge:
		return 100
	case ClusterExtraLarge:
		return 200
	default:
		return 0
	}
}

// Pricing is the immutable price breakdown of a delivery.
type Pricing struct {
	basePrice      float64
	weightCharge   float64
	distanceCharge float64
	clusterCharge  float64
	totalPrice     float64
}

// CalculatePricing derives the full price breakdown from package weight,
// estimated distance and cluster. It is a pure function: the same inputs
// always produce the same breakdown, and callers replace any previous
// pricing wholesale rather than patching individual charges.
func CalculatePricing(weightKg, distanceKm float64, cluster Cluster) Pricing {
	p := Pricing{
		basePrice:      BasePrice,
		weightCharge:   weightKg * WeightRatePerKg,
		distanceCharge: distanceKm * DistanceRatePerKm,
		clusterCharge:  cluster.surcharge(),
	}
	p.totalPrice = p.basePrice + p.weightCharge + p.distanceCharge + p.clusterCharge
	return p
}

// BasePrice returns the flat fee component.
func (p Pricing) BasePrice() float64 { return p.basePrice }

// WeightCharge returns the weight-proportional component.
func (p Pricing) WeightCharge() float64 { return p.weightCharge }

// DistanceCharge returns the distance-proportional component.
func (p Pricing) DistanceCharge() float64 { return p.distanceCharge }

// ClusterCharge returns the flat cluster surcharge.
func (p Pricing) ClusterCharge() float64 { return p.clusterCharge }

// TotalPrice returns the sum of all components.
func (p Pricing) TotalPrice() float64 { return p.totalPrice }

// Earnings is the driver's share of a delivery, derived from its pricing.
// It is recomputed, never carried over, whenever pricing is recomputed.
type Earnings struct {
	gross        float64
	commission   float64
	net          float64
	paidToDriver bool
	paidAt       *time.Time
}

// NewEarnings computes the driver earnings for a price total at the given
// commission rate.
func NewEarnings(pricing Pricing, commission float64) (Earnings, error) {
	if commission <= 0 || commission > 1 {
		return Earnings{}, errs.NewValueIsOutOfRangeError("commission", commission, 0.0, 1.0)
	}
	return Earnings{
		gross:      pricing.TotalPrice(),
		commission: commission,
		net:        pricing.TotalPrice() * commission,
	}, nil
}

// RestoreEarnings rehydrates an earnings record from persistence.
func RestoreEarnings(gross, commission, net float64, paidToDriver bool, paidAt *time.Time) Earnings {
	return Earnings{
		gross:        gross,
		commission:   commission,
		net:          net,
		paidToDriver: paidToDriver,
		paidAt:       paidAt,
	}
}

// Gross returns the delivery total the earnings were derived from.
func (e Earnings) Gross() float64 { return e.gross }

// Commission returns the rate applied.
func (e Earnings) Commission() float64 { return e.commission }

// Net returns the amount payable to the driver.
func (e Earnings) Net() float64 { return e.net }

// PaidToDriver reports whether the earnings were credited to the driver wallet.
func (e Earnings) PaidToDriver() bool { return e.paidToDriver }

// PaidAt returns when the earnings were credited, nil if unpaid.
func (e Earnings) PaidAt() *time.Time { return e.paidAt }

// markPaid stamps the earnings as credited to the driver wallet.
func (e *Earnings) markPaid(at time.Time) {
	e.paidToDriver = true
	e.paidAt = &at
}
