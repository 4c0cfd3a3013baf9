package core

type PostureStatus string

const (
	PostureCompliant    PostureStatus = "compliant"
	PostureNonCompliant PostureStatus = "non-compliant"
	PostureUnknown      PostureStatus = "unknown"
)

// PostureControl is a single security control a device can be required to satisfy.
type PostureControl string

const (
	ControlOSVersion      PostureControl = "os_version"
	ControlFirewall       PostureControl = "firewall"
	ControlAntivirus      PostureControl = "antivirus"
	ControlDiskEncryption PostureControl = "disk_encryption"
	ControlScreenLock     PostureControl = "screen_lock"
	ControlPatchLevel     PostureControl = "patch_level"
)

// PostureControls lists all controls in evaluation order.
var PostureControls = []PostureControl{
	ControlOSVersion,
	ControlFirewall,
	ControlAntivirus,
	ControlDiskEncryption,
	ControlScreenLock,
	ControlPatchLevel,
}
