package zone

import (
	"errors"
	"fmt"
	"sync"

	"github.com/thermalkit/isp2go/internal/configuration"
)

var (
	// ErrNodeNotFound indicates that the named thermal node does not exist.
	ErrNodeNotFound = errors.New("thermal node not found")
	// ErrInvalidRegistration indicates a registration attempt with a missing
	// node or capability set.
	ErrInvalidRegistration = errors.New("invalid cooling device registration")
)

// Node is a handle to a named thermal node, the stand-in for the device tree
// node a cooling device is bound to.
type Node struct {
	Name string `json:"name"`
}

// Instance is one trip point binding between a thermal zone and a registered
// cooling device. Upper is the upper cooling level bound for that trip, it is
// seeded from the throttle table at registration time.
type Instance struct {
	Zone  string `json:"zone"`
	Trip  int    `json:"trip"`
	Upper uint   `json:"upper"`
}

// Ops is the capability set a cooling device exposes to the authority.
type Ops interface {
	GetMaxLevel() (uint, error)
	GetCurrentLevel() (uint, error)
	SetLevel(level uint) error
}

// Registration ties one cooling device to the authority's zones for the
// lifetime of the device.
type Registration struct {
	Name string
	Ops  Ops

	instances []*Instance
}

// Instances returns the trip point bindings of this registration in zone
// declaration order.
func (r *Registration) Instances() []*Instance {
	return r.instances
}

// Authority is the thermal policy boundary. It accepts cooling device
// registrations and owns the per-zone trip instances the policy layer
// evaluates.
type Authority interface {
	// FindNode resolves a named thermal node.
	FindNode(name string) (*Node, error)
	// Register binds a cooling device with the given capability set to the
	// node and creates the trip instances for all configured zones.
	Register(node *Node, name string, ops Ops) (*Registration, error)
	// Unregister releases a registration. Unregistering nil is a no-op.
	Unregister(registration *Registration)
	// Registrations returns all currently live registrations.
	Registrations() []*Registration
}

type zoneAuthority struct {
	mu            sync.Mutex
	node          string
	zones         []configuration.ZoneConfig
	registrations []*Registration
}

// NewAuthority creates a config backed Authority exposing a single named
// node and the configured thermal zones.
func NewAuthority(node string, zones []configuration.ZoneConfig) Authority {
	return &zoneAuthority{
		node:  node,
		zones: zones,
	}
}

func (a *zoneAuthority) FindNode(name string) (*Node, error) {
	if name != a.node {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
	}

	return &Node{Name: name}, nil
}

func (a *zoneAuthority) Register(node *Node, name string, ops Ops) (*Registration, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: missing node", ErrInvalidRegistration)
	}
	if ops == nil {
		return nil, fmt.Errorf("%w: missing capability set", ErrInvalidRegistration)
	}

	registration := &Registration{
		Name: name,
		Ops:  ops,
	}
	for _, zoneConfig := range a.zones {
		for trip := 0; trip < zoneConfig.Trips; trip++ {
			registration.instances = append(registration.instances, &Instance{
				Zone: zoneConfig.Name,
				Trip: trip,
			})
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.registrations = append(a.registrations, registration)

	return registration, nil
}

func (a *zoneAuthority) Unregister(registration *Registration) {
	if registration == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for idx, candidate := range a.registrations {
		if candidate == registration {
			a.registrations = append(a.registrations[:idx], a.registrations[idx+1:]...)
			return
		}
	}
}

func (a *zoneAuthority) Registrations() []*Registration {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]*Registration, len(a.registrations))
	copy(result, a.registrations)
	return result
}
