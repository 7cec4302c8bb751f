package cooling

import (
	"errors"
	"fmt"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/thermalkit/isp2go/internal/ect"
	"github.com/thermalkit/isp2go/internal/throttle"
	"github.com/thermalkit/isp2go/internal/ui"
	"github.com/thermalkit/isp2go/internal/zone"
)

// ErrRegistrationFailed indicates that the authority rejected the device
// binding. The allocated id is released before this error propagates.
var ErrRegistrationFailed = errors.New("cooling device registration failed")

// Registry owns the process wide cooling state: the id pool, the live device
// set, the throttle table and the notification hub. It is created once by the
// composition root, tests create their own instances.
type Registry struct {
	mu          sync.Mutex
	deviceCount int

	pool      *IdPool
	table     *throttle.Table
	hub       *Hub
	authority zone.Authority
	provider  ect.Provider
	target    string

	devices cmap.ConcurrentMap[string, *Device]
}

func NewRegistry(
	table *throttle.Table,
	hub *Hub,
	authority zone.Authority,
	provider ect.Provider,
	target string,
	maxDevices int,
) *Registry {
	return &Registry{
		pool:      NewIdPool(maxDevices),
		table:     table,
		hub:       hub,
		authority: authority,
		provider:  provider,
		target:    target,
		devices:   cmap.New[*Device](),
	}
}

// Device is one registered cooling device instance. It implements the
// capability set (zone.Ops) the policy authority drives.
type Device struct {
	mu           sync.Mutex
	currentLevel uint

	id           int
	name         string
	registration *zone.Registration
	registry     *Registry
}

func (d *Device) Id() int {
	return d.id
}

func (d *Device) Name() string {
	return d.name
}

func (d *Device) Registration() *zone.Registration {
	return d.registration
}

// GetMaxLevel returns the highest cooling level of the throttle table.
func (d *Device) GetMaxLevel() (uint, error) {
	return d.registry.table.MaxLevel()
}

// GetCurrentLevel returns the currently applied cooling level.
func (d *Device) GetCurrentLevel() (uint, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.currentLevel, nil
}

// SetLevel applies a cooling level and announces the transition. Applying the
// already active level is a no-op. The level is stored as given, range
// validation is the policy authority's responsibility.
func (d *Device) SetLevel(level uint) error {
	d.mu.Lock()
	if d.currentLevel == level {
		d.mu.Unlock()
		return nil
	}
	d.currentLevel = level
	d.mu.Unlock()

	// resolved best-effort, listeners get fps 0 on a translation miss
	fps, err := d.registry.table.FpsForLevel(level)
	if err != nil {
		fps = 0
	}

	// broadcast happens outside the device lock so listeners may query
	// GetCurrentLevel without deadlocking
	d.registry.hub.Broadcast(Event{
		Kind:   EventThrottling,
		Device: d.name,
		Level:  level,
		Fps:    fps,
		Time:   time.Now(),
	})

	return nil
}

// Register creates a new cooling device bound to the given node: it allocates
// an id, registers the capability set with the authority, seeds the trip
// bounds of all matching zones and publishes the device as active. On any
// failure after id allocation the id is released before the error propagates.
func (r *Registry) Register(node *zone.Node) (*Device, error) {
	id, err := r.pool.Allocate()
	if err != nil {
		return nil, err
	}

	device := &Device{
		id:       id,
		name:     fmt.Sprintf("thermal-isp-%d", id),
		registry: r,
	}

	registration, err := r.authority.Register(node, device.name, device)
	if err != nil {
		r.pool.Release(id)
		return nil, fmt.Errorf("%w: %s", ErrRegistrationFailed, err)
	}
	device.registration = registration

	results := r.seedTripBounds(device)
	for _, result := range results {
		if result.Bound {
			ui.Info("Seeded %s zone %s trip %d with upper level %d",
				device.name, result.Instance.Zone, result.Instance.Trip, result.Instance.Upper)
		} else {
			ui.Warning("Skipped %s zone %s trip %d: %s",
				device.name, result.Instance.Zone, result.Instance.Trip, result.Reason)
		}
	}

	device.currentLevel = 0

	r.mu.Lock()
	r.deviceCount++
	r.mu.Unlock()

	r.devices.Set(device.name, device)

	return device, nil
}

// Unregister destroys a cooling device: the authority binding is released,
// the id returns to the pool and the record is discarded. Unregistering nil
// is a no-op.
func (r *Registry) Unregister(device *Device) {
	if device == nil {
		return
	}

	r.mu.Lock()
	r.deviceCount--
	r.mu.Unlock()

	r.devices.Remove(device.name)
	r.authority.Unregister(device.registration)
	r.pool.Release(device.id)
}

// DeviceCount returns the number of live cooling devices.
func (r *Registry) DeviceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.deviceCount
}

// Device looks up a live device by name.
func (r *Registry) Device(name string) (*Device, bool) {
	return r.devices.Get(name)
}

// Devices returns all live devices.
func (r *Registry) Devices() []*Device {
	var result []*Device
	for item := range r.devices.IterBuffered() {
		result = append(result, item.Val)
	}
	return result
}

// Table returns the throttle table shared by all devices, possibly nil when
// calibration data was unavailable.
func (r *Registry) Table() *throttle.Table {
	return r.table
}

// Hub returns the notification hub.
func (r *Registry) Hub() *Hub {
	return r.hub
}
