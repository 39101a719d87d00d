package models

// Aggregation results returned to the dashboard. Field names and
// rounding (1 decimal for ratios, 2 decimals for hour quantities,
// integers for daily work-summary productivity) are part of the wire
// contract the charts were built against.

type ProductivityBreakdown struct {
	Productive   float64 `json:"productive"`
	Unproductive float64 `json:"unproductive"`
	Undefined    float64 `json:"undefined"`
}

type UsageEntry struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

type ActivityDay struct {
	Date         string  `json:"date"`
	Productive   float64 `json:"productive"`
	Unproductive float64 `json:"unproductive"`
	Undefined    float64 `json:"undefined"`
}

type ProductivityStats struct {
	Productivity    ProductivityBreakdown `json:"productivity"`
	HoursWorked     float64               `json:"hoursWorked"`
	IdleTime        float64               `json:"idleTime"`
	TopApps         []UsageEntry          `json:"topApps"`
	TopWebsites     []UsageEntry          `json:"topWebsites"`
	ActivityHistory []ActivityDay         `json:"activityHistory"`
}

type StressPoint struct {
	Date        string  `json:"date"`
	StressLevel float64 `json:"stressLevel"`
}

type StressInsights struct {
	StressLevel   float64       `json:"stressLevel"`
	WorkDuration  float64       `json:"workDuration"`
	AppSwitches   float64       `json:"appSwitches"` // per hour
	BreakTime     float64       `json:"breakTime"`
	StressHistory []StressPoint `json:"stressHistory"`
	Tip           string        `json:"tip"`
}

type WorkSummaryDay struct {
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	Productivity int     `json:"productivity"`
}

// TimeParts expresses an hour quantity as whole hours plus minutes,
// the shape the admin dashboard tables render.
type TimeParts struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type EmployeeInsight struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	AvatarURL      *string               `json:"avatarUrl"`
	TimeWorked     TimeParts             `json:"timeWorked"`
	Activity       ProductivityBreakdown `json:"activity"`
	ProductiveTime int                   `json:"productiveTime"`
	IdleTime       TimeParts             `json:"idleTime"`
}

type EmployeeReport struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	Name         string       `json:"name"`
	AvatarURL    *string      `json:"avatarUrl"`
	TimeWorked   TimeParts    `json:"timeWorked"`
	Productivity int          `json:"productivity"`
	IdleTime     TimeParts    `json:"idleTime"`
	AppsUsed     []UsageEntry `json:"appsUsed"`
	WebsitesUsed []UsageEntry `json:"websitesUsed"`
}
