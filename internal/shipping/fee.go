// Package shipping computes the flat-rate delivery surcharge.
package shipping

import "strings"

// Two-tier flat-rate policy: deliveries inside the domestic hub city cost
// less than deliveries anywhere else. Not distance-based.
const (
	HubCity   = "Dhaka"
	HubFee    = 60
	RemoteFee = 110
)

// Fee returns the delivery surcharge for a destination city. An empty or
// blank city yields zero, because no destination has been chosen yet.
func Fee(city string) float64 {
	city = strings.TrimSpace(city)
	if city == "" {
		return 0
	}
	if strings.EqualFold(city, HubCity) {
		return HubFee
	}
	return RemoteFee
}
