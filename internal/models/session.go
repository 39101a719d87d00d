package models

import (
	"time"

	"github.com/google/uuid"
)

// AppUsage is one {name, duration} entry of a session's appsUsed or
// websitesUsed list. Duration is in the agent's sampling units.
type AppUsage struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

// WorkSession is one tracked interval of a user's monitored activity,
// uploaded by the desktop agent. A session without an EndTime is still
// open: it contributes zero hours worked but its counters participate
// in productivity ratios.
type WorkSession struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Productive   float64    `json:"productive"`
	Unproductive float64    `json:"unproductive"`
	Undefined    float64    `json:"undefined"`
	IdleTime     float64    `json:"idleTime"` // minutes
	AppSwitches  int        `json:"appSwitches"`
	AppsUsed     []AppUsage `json:"appsUsed"`
	WebsitesUsed []AppUsage `json:"websitesUsed"`
	CreatedAt    time.Time  `json:"createdAt"`
}
