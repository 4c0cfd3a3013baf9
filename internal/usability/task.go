package usability

import (
	"time"
)

type TaskType string

const (
	TaskLogin      TaskType = "login"
	TaskAccessFile TaskType = "access_file"
	TaskEditFile   TaskType = "edit_file"
	TaskRunReport  TaskType = "run_report"
	TaskAdmin      TaskType = "admin_task"
)

// TaskTypes lists the task types in the order the simulator draws from.
var TaskTypes = []TaskType{TaskLogin, TaskAccessFile, TaskEditFile, TaskRunReport, TaskAdmin}

// Friction events a user can run into while controls are enforced.
const (
	FrictionMFAPrompt      = "mfa_prompt"
	FrictionPostureCheck   = "posture_check"
	FrictionSessionTimeout = "session_timeout"
)

// Task is a unit of work a user performs during a workday.
type Task struct {
	Type             TaskType      `json:"type"`
	User             string        `json:"user"`
	Device           string        `json:"device"`
	Resource         string        `json:"resource,omitempty"`
	RequiresMFA      bool          `json:"requires_mfa"`
	ExpectedDuration time.Duration `json:"expected_duration"`
}

type TaskResult struct {
	Task           Task          `json:"task"`
	Success        bool          `json:"success"`
	Duration       time.Duration `json:"duration"`
	FrictionEvents []string      `json:"friction_events"`
	// Satisfaction is on a 1 to 5 scale.
	Satisfaction float64 `json:"satisfaction_score"`
}

var taskTemplates = map[TaskType]Task{
	TaskLogin: {
		Type:             TaskLogin,
		RequiresMFA:      true,
		ExpectedDuration: 30 * time.Second,
	},
	TaskAccessFile: {
		Type:             TaskAccessFile,
		Resource:         "/app/files",
		ExpectedDuration: time.Minute,
	},
	TaskEditFile: {
		Type:             TaskEditFile,
		Resource:         "/app/files",
		ExpectedDuration: 10 * time.Minute,
	},
	TaskRunReport: {
		Type:             TaskRunReport,
		Resource:         "/app/db",
		RequiresMFA:      true,
		ExpectedDuration: 5 * time.Minute,
	},
	TaskAdmin: {
		Type:             TaskAdmin,
		Resource:         "/app/admin",
		RequiresMFA:      true,
		ExpectedDuration: 15 * time.Minute,
	},
}

// NewTask instantiates the template of the given type for a user and device.
func NewTask(taskType TaskType, user, device string) (Task, bool) {
	t, ok := taskTemplates[taskType]
	if !ok {
		return Task{}, false
	}
	t.User = user
	t.Device = device
	return t, true
}
