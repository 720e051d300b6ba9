package usecase

import (
	"context"
	"fmt"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/repository"
)

const (
	studentCareerLimit  = 5
	employerRecentLimit = 50
)

type DashboardUsecase interface {
	StudentDashboard(ctx context.Context, uid string) (*StudentDashboard, error)
	EmployerDashboard(ctx context.Context, role model.Role) (*EmployerDashboard, error)
}

// ApplicationView is an application with its dashboard label.
type ApplicationView struct {
	*model.Application
	Title string
}

type StudentDashboard struct {
	Courses      []ApplicationView
	Careers      []ApplicationView
	TotalCareers int
}

type EmployerDashboard struct {
	Applications []ApplicationView
}

type dashboardUsecase struct {
	applicationRepo repository.ApplicationRepository
}

func NewDashboardUsecase(applicationRepo repository.ApplicationRepository) DashboardUsecase {
	return &dashboardUsecase{applicationRepo: applicationRepo}
}

func (u *dashboardUsecase) StudentDashboard(ctx context.Context, uid string) (*StudentDashboard, error) {
	if uid == "" {
		return nil, ErrAuthenticationRequired
	}

	applications, err := u.applicationRepo.ListApplicationsByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	dashboard := &StudentDashboard{
		Courses: []ApplicationView{},
		Careers: []ApplicationView{},
	}
	for _, application := range applications {
		view := ApplicationView{Application: application, Title: application.Title()}
		if application.Type == model.ApplicationTypeCourse {
			dashboard.Courses = append(dashboard.Courses, view)
			continue
		}

		dashboard.TotalCareers++
		if len(dashboard.Careers) < studentCareerLimit {
			dashboard.Careers = append(dashboard.Careers, view)
		}
	}

	return dashboard, nil
}

func (u *dashboardUsecase) EmployerDashboard(ctx context.Context, role model.Role) (*EmployerDashboard, error) {
	if !role.IsAdmin() {
		return nil, ErrForbidden
	}

	applications, err := u.applicationRepo.ListRecentApplications(ctx, employerRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent applications: %w", err)
	}

	return &EmployerDashboard{Applications: viewsOf(applications)}, nil
}

func viewsOf(applications []*model.Application) []ApplicationView {
	views := make([]ApplicationView, 0, len(applications))
	for _, application := range applications {
		views = append(views, ApplicationView{Application: application, Title: application.Title()})
	}

	return views
}
