package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// GeneralPostingID is stored when an application names no posting.
const GeneralPostingID = "general"

type ApplicationType string

const (
	ApplicationTypeJob        ApplicationType = "job"
	ApplicationTypeInternship ApplicationType = "internship"
	ApplicationTypeCourse     ApplicationType = "course"
)

// ParseApplicationType accepts only the three known types.
func ParseApplicationType(s string) (ApplicationType, bool) {
	switch t := ApplicationType(s); t {
	case ApplicationTypeJob, ApplicationTypeInternship, ApplicationTypeCourse:
		return t, true
	default:
		return "", false
	}
}

// RequiresResume reports whether the form must carry exactly one résumé file.
func (t ApplicationType) RequiresResume() bool {
	return t == ApplicationTypeJob || t == ApplicationTypeInternship
}

// ApplicationStatus is only ever read here; transitions happen elsewhere.
type ApplicationStatus string

const ApplicationStatusPending ApplicationStatus = "pending"

// Application is one append-only record under a user's profile.
type Application struct {
	ID              bson.ObjectID     `bson:"_id,omitempty"          json:"id"`
	UserProfileID   string            `bson:"userProfileId"          json:"userProfileId"`
	Type            ApplicationType   `bson:"type"                   json:"type"`
	JobPostingID    string            `bson:"jobPostingId,omitempty" json:"jobPostingId,omitempty"`
	InternshipID    string            `bson:"internshipId,omitempty" json:"internshipId,omitempty"`
	CourseID        string            `bson:"courseId,omitempty"     json:"courseId,omitempty"`
	Name            string            `bson:"name"                   json:"name"`
	Email           string            `bson:"email"                  json:"email"`
	Phone           string            `bson:"phone"                  json:"phone"`
	Skills          string            `bson:"skills"                 json:"skills"`
	CoverLetter     string            `bson:"coverLetter,omitempty"  json:"coverLetter,omitempty"`
	ApplicationDate time.Time         `bson:"applicationDate"        json:"applicationDate"`
	Status          ApplicationStatus `bson:"status"                 json:"status"`
}

// SetPostingID stores id under the key the dashboard reads for this type.
func (a *Application) SetPostingID(id string) {
	switch a.Type {
	case ApplicationTypeJob:
		a.JobPostingID = id
	case ApplicationTypeInternship:
		a.InternshipID = id
	case ApplicationTypeCourse:
		a.CourseID = id
	}
}

func (a Application) PostingID() string {
	switch a.Type {
	case ApplicationTypeJob:
		return a.JobPostingID
	case ApplicationTypeInternship:
		return a.InternshipID
	case ApplicationTypeCourse:
		return a.CourseID
	default:
		return ""
	}
}

// Title is the dashboard label of the application.
func (a Application) Title() string {
	id := a.PostingID()
	switch a.Type {
	case ApplicationTypeJob:
		return "Job: " + orDefault(id, "General Application")
	case ApplicationTypeInternship:
		return "Internship: " + orDefault(id, "General Application")
	case ApplicationTypeCourse:
		return "Course: " + orDefault(id, "General Registration")
	default:
		return "Application"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
