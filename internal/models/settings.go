package models

// Per-user settings stored as JSONB on the users row. Admin and
// employee dashboards read overlapping subsets of the same blob.

type TrackingRules struct {
	BrowserActivity bool `json:"browserActivity"`
	AppActivity     bool `json:"appActivity"`
	IdleTime        bool `json:"idleTime"`
}

type NotificationSettings struct {
	EmailLowProductivity  bool `json:"emailLowProductivity"`
	InAppAlerts           bool `json:"inAppAlerts"`
	ProductivityThreshold int  `json:"productivityThreshold"`
	DailyReports          bool `json:"dailyReports"`
	StressAlerts          bool `json:"stressAlerts"`
}

type UserSettings struct {
	TrackingRules TrackingRules        `json:"trackingRules"`
	Notifications NotificationSettings `json:"notifications"`
}

// DefaultSettings mirrors what the dashboard assumes before a user has
// ever saved anything.
func DefaultSettings() UserSettings {
	return UserSettings{
		TrackingRules: TrackingRules{
			BrowserActivity: true,
			AppActivity:     true,
			IdleTime:        false,
		},
		Notifications: NotificationSettings{
			EmailLowProductivity:  true,
			InAppAlerts:           false,
			ProductivityThreshold: 40,
		},
	}
}

// CompanyMember is one row of the company roster the admin settings
// page lists.
type CompanyMember struct {
	ID        string  `json:"id"`
	AvatarURL *string `json:"avatarUrl"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Company   string  `json:"company"`
}

type AdminSettings struct {
	TrackingRules TrackingRules        `json:"trackingRules"`
	Notifications NotificationSettings `json:"notifications"`
	Users         []CompanyMember      `json:"users"`
}

type EmployeeSettings struct {
	FullName      string               `json:"fullName"`
	Email         string               `json:"email"`
	CountryCode   string               `json:"countryCode"`
	Contact       string               `json:"contact"`
	Company       string               `json:"company"`
	Notifications NotificationSettings `json:"notifications"`
}
