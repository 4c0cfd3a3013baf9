package store

import (
	"slices"
	"sync"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var (
	_ core.UserRepository   = (*InMemoryUserStore)(nil)
	_ core.DeviceRepository = (*InMemoryDeviceStore)(nil)
	_ core.PolicyRepository = (*InMemoryPolicyStore)(nil)
)

type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]core.User
}

func NewInMemoryUserStore(users ...core.User) *InMemoryUserStore {
	s := &InMemoryUserStore{
		users: make(map[string]core.User, len(users)),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *InMemoryUserStore) Put(user core.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user
}

func (s *InMemoryUserStore) LookupUser(id string) (core.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *InMemoryUserStore) ListUsers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.users)
}

// DeviceRecord is a device together with the controls it must satisfy.
type DeviceRecord struct {
	Device   core.Device
	Required []core.PostureControl
}

type InMemoryDeviceStore struct {
	mu      sync.RWMutex
	devices map[string]DeviceRecord
}

func NewInMemoryDeviceStore(records ...DeviceRecord) *InMemoryDeviceStore {
	s := &InMemoryDeviceStore{
		devices: make(map[string]DeviceRecord, len(records)),
	}
	for _, r := range records {
		s.devices[r.Device.ID] = r
	}
	return s
}

func (s *InMemoryDeviceStore) Put(record DeviceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices[record.Device.ID] = record
}

func (s *InMemoryDeviceStore) LookupDevice(id string) (core.Device, []core.PostureControl, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.devices[id]
	if !ok {
		return core.Device{}, nil, false
	}
	return r.Device, slices.Clone(r.Required), true
}

func (s *InMemoryDeviceStore) ListDevices() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.devices)
}

type InMemoryPolicyStore struct {
	mu       sync.RWMutex
	roles    map[string]core.Role
	policies map[string]core.AccessPolicy
}

func NewInMemoryPolicyStore(roles map[string]core.Role, policies map[string]core.AccessPolicy) *InMemoryPolicyStore {
	s := &InMemoryPolicyStore{
		roles:    make(map[string]core.Role, len(roles)),
		policies: make(map[string]core.AccessPolicy, len(policies)),
	}
	for u, r := range roles {
		s.roles[u] = r
	}
	for res, p := range policies {
		s.policies[res] = p
	}
	return s
}

func (s *InMemoryPolicyStore) AssignRole(user string, role core.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles[user] = role
}

func (s *InMemoryPolicyStore) SetPolicy(resource string, policy core.AccessPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.policies[resource] = policy
}

func (s *InMemoryPolicyStore) RoleOf(user string) (core.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roles[user]
	return r, ok
}

func (s *InMemoryPolicyStore) PolicyFor(resource string) (core.AccessPolicy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.policies[resource]
	return p, ok
}

func (s *InMemoryPolicyStore) Resources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.policies)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
