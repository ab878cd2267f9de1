// internal/models/candidate.go
package models

import "time"

// CandidateProfile is a read-only snapshot handed to the engine by the
// profile-management collaborator.
type CandidateProfile struct {
	ID             string        `json:"id"`
	University     string        `json:"university"`
	Major          string        `json:"major"`
	Skills         []string      `json:"skills"`
	Location       string        `json:"location"`
	Interests      []string      `json:"interests"`
	Goals          []string      `json:"goals"`
	Bio            string        `json:"bio"`
	Subjects       []string      `json:"subjects,omitempty"`
	GraduationYear *int          `json:"graduationYear,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	LastActiveAt   *time.Time    `json:"lastActiveAt,omitempty"`
	Applications   []Application `json:"applications"`
}

// Application is one entry of the application-tracking history.
type Application struct {
	AppliedAt      time.Time `json:"appliedAt"`
	OrganizationID string    `json:"organizationId"`
}

// ActivityMetrics is kept in dedicated fields; it is never encoded into bio
// or any other user-editable text. DaysSinceActive is nil for a candidate
// with no recorded activity.
type ActivityMetrics struct {
	ActivityScore       int        `json:"activityScore"`
	LastActive          *time.Time `json:"lastActive,omitempty"`
	ApplicationCount    int        `json:"applicationCount"`
	DistinctOrgCount    int        `json:"distinctOrganizationCount"`
	ResponseRate        float64    `json:"responseRate"`
	ProfileCompleteness int        `json:"profileCompleteness"`
	DaysSinceActive     *int       `json:"daysSinceActive"`
}
