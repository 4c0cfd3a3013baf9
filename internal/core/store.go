package core

// UserRepository gives read-only access to identities and their credentials.
type UserRepository interface {
	// LookupUser returns the user with the given ID.
	// A missing user is reported with ok == false, it is not an error.
	LookupUser(id string) (user User, ok bool)

	// ListUsers returns all user IDs in a stable order.
	ListUsers() []string
}

// DeviceRepository gives read-only access to devices and their required controls.
type DeviceRepository interface {
	// LookupDevice returns the device and the controls it is required to satisfy.
	LookupDevice(id string) (device Device, required []PostureControl, ok bool)

	// ListDevices returns all device IDs in a stable order.
	ListDevices() []string
}

// PolicyRepository gives read-only access to role assignments and resource policies.
type PolicyRepository interface {
	// RoleOf returns the role assigned to a user.
	RoleOf(user string) (Role, bool)

	// PolicyFor returns the access policy of a resource.
	PolicyFor(resource string) (AccessPolicy, bool)

	// Resources returns all protected resources in a stable order.
	Resources() []string
}
