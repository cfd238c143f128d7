// Package tips holds the aquarium maintenance tips shown in the footer and by
// the tip command.
package tips

import "math/rand"

var all = []string{
	"Change at least 25% of the water every week.",
	"Don't clean the filter and change water on the same day. Leave a week between the two.",
	"Use a water conditioner to remove chlorine and chloramine from tap water.",
	"Don't overfeed. Give only what the fish finish in 2-3 minutes.",
	"Keep a healthy population of beneficial bacteria in the filter. Don't over-clean it.",
	"Watch your fish regularly for signs of disease.",
	"Research the specific needs of every species you keep.",
	"Make sure the tank is cycled before adding fish.",
	"Use a gravel siphon to clean the substrate.",
	"Give plants enough light, but keep the tank out of direct sunlight.",
	"Test ammonia, nitrite and nitrate levels regularly.",
	"Don't add too many fish at once.",
	"Acclimate new fish slowly before releasing them into the tank.",
	"Be careful with medication in the tank, it can harm beneficial bacteria.",
	"Keep the water temperature stable.",
	"Give your fish places to hide.",
	"Use a heater to hold the right temperature.",
	"Make sure the filter is sized correctly for your aquarium.",
	"Clean the filter once a month, and only the mechanical media.",
	"Never use soap or detergent on the tank or its equipment.",
	"Use aquarium-specific test kits to check water parameters.",
}

// All returns a copy of every tip in display order.
func All() []string {
	out := make([]string, len(all))
	copy(out, all)
	return out
}

// Len returns the number of tips.
func Len() int {
	return len(all)
}

// At returns tip i, wrapping around so any index is valid.
func At(i int) string {
	n := len(all)
	return all[((i%n)+n)%n]
}

// Pick returns a random tip and its index. A nil rng uses the global source.
func Pick(rng *rand.Rand) (string, int) {
	var i int
	if rng == nil {
		i = rand.Intn(len(all))
	} else {
		i = rng.Intn(len(all))
	}
	return all[i], i
}
