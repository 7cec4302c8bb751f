package cooling

import (
	"strings"

	"github.com/thermalkit/isp2go/internal/zone"
)

// BindingResult records the outcome of seeding one trip instance.
type BindingResult struct {
	Instance *zone.Instance
	Bound    bool
	Reason   string
}

// seedTripBounds pre-seeds the upper cooling level bound of every trip
// instance whose zone matches the binder target. The trip index selects the
// calibration range, its frame rate ceiling is translated into a cooling
// level. When translation fails the device max level (full throttling) is
// used instead. Failures never abort registration, each instance yields a
// tagged result so skips stay observable.
func (r *Registry) seedTripBounds(device *Device) []BindingResult {
	var results []BindingResult

	function, err := r.provider.Function(r.target)

	for _, instance := range device.registration.Instances() {
		if !strings.EqualFold(instance.Zone, r.target) {
			results = append(results, BindingResult{
				Instance: instance,
				Reason:   "zone does not match binder target",
			})
			continue
		}

		if err != nil {
			results = append(results, BindingResult{
				Instance: instance,
				Reason:   "calibration unavailable",
			})
			continue
		}

		if instance.Trip >= len(function.Ranges) {
			results = append(results, BindingResult{
				Instance: instance,
				Reason:   "no calibration range for trip",
			})
			continue
		}

		fps := function.Ranges[instance.Trip].MaxFps

		level, translateErr := r.table.LevelForFps(fps)
		if translateErr != nil {
			// full throttling ceiling when translation fails
			maxLevel, maxErr := r.table.MaxLevel()
			if maxErr != nil {
				results = append(results, BindingResult{
					Instance: instance,
					Reason:   "translation unavailable",
				})
				continue
			}
			level = maxLevel
		}

		instance.Upper = level
		results = append(results, BindingResult{
			Instance: instance,
			Bound:    true,
		})
	}

	return results
}
