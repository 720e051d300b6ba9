package payload

import (
	"time"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
)

// ApplicationForm is decoded from the multipart apply form.
type ApplicationForm struct {
	Name        string `form:"name"        validate:"required,min=2"`
	Email       string `form:"email"       validate:"required,email"`
	Phone       string `form:"phone"       validate:"required,min=10"`
	Skills      string `form:"skills"      validate:"required,min=3"`
	CoverLetter string `form:"coverLetter" validate:"omitempty"`
}

type PaymentResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	QRImageURL  string `json:"qr_image_url"`
}

type SubmitApplicationResponse struct {
	Application         *model.Application `json:"application"`
	Next                string             `json:"next"`
	RedirectPath        string             `json:"redirect_path,omitempty"`
	Payment             *PaymentResponse   `json:"payment,omitempty"`
	DismissRedirectPath string             `json:"dismiss_redirect_path,omitempty"`
}

type ApplicationView struct {
	*model.Application
	Title string `json:"title"`
}

type StudentDashboardResponse struct {
	Courses      []ApplicationView `json:"courses"`
	Careers      []ApplicationView `json:"careers"`
	TotalCareers int               `json:"total_careers"`
}

type EmployerDashboardResponse struct {
	Applications []ApplicationView `json:"applications"`
}

type JobPosting struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Type     string `json:"type"`
}

type ProfileResponse struct {
	UID         string     `json:"uid"`
	DisplayName string     `json:"displayName,omitempty"`
	Email       string     `json:"email,omitempty"`
	PhotoURL    string     `json:"photoURL,omitempty"`
	FirstName   string     `json:"firstName,omitempty"`
	LastName    string     `json:"lastName,omitempty"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	SignUpDate  *time.Time `json:"signUpDate,omitempty"`
	Role        model.Role `json:"role"`
}
