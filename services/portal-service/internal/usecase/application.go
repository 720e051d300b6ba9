package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/config"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/repository"
	"github.com/vasapolrittideah/careers-portal/shared/redislock"
)

// ApplicationUsecase appends applications for the signed-in principal.
type ApplicationUsecase interface {
	SubmitApplication(ctx context.Context, params SubmitApplicationParams) (*SubmissionOutcome, error)
}

// SubmitApplicationParams is an already validated application form. UID is
// empty when the request carried no session.
type SubmitApplicationParams struct {
	UID         string
	Type        model.ApplicationType
	PostingID   string
	Name        string
	Email       string
	Phone       string
	Skills      string
	CoverLetter string
}

// NextStep tells the client what to do after a successful submission.
type NextStep string

const (
	NextStepNavigate NextStep = "navigate"
	NextStepPayment  NextStep = "payment"
)

// PaymentInstructions is the static UPI QR step shown after a course
// application. Nothing about the payment is recorded.
type PaymentInstructions struct {
	Title       string
	Description string
	QRImageURL  string
}

// SubmissionOutcome is NextStepNavigate with RedirectPath set, or
// NextStepPayment with Payment and DismissRedirectPath set.
type SubmissionOutcome struct {
	Application         *model.Application
	Next                NextStep
	RedirectPath        string
	Payment             *PaymentInstructions
	DismissRedirectPath string
}

// Locker serializes identical submissions while one is being written.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(context.Context), error)
}

type applicationUsecase struct {
	applicationRepo repository.ApplicationRepository
	locker          Locker
	paymentCfg      config.PaymentConfig
	logger          *zerolog.Logger
	now             func() time.Time
}

func NewApplicationUsecase(
	applicationRepo repository.ApplicationRepository,
	locker Locker,
	paymentCfg config.PaymentConfig,
	logger *zerolog.Logger,
) ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		locker:          locker,
		paymentCfg:      paymentCfg,
		logger:          logger,
		now:             time.Now,
	}
}

func (u *applicationUsecase) SubmitApplication(
	ctx context.Context,
	params SubmitApplicationParams,
) (*SubmissionOutcome, error) {
	if params.UID == "" {
		return nil, ErrAuthenticationRequired
	}

	postingID := params.PostingID
	if postingID == "" {
		postingID = model.GeneralPostingID
	}

	release, err := u.locker.Acquire(ctx, submitLockKey(params.UID, params.Type, postingID))
	if err != nil {
		if errors.Is(err, redislock.ErrLocked) {
			return nil, ErrSubmissionInProgress
		}

		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	defer release(context.WithoutCancel(ctx))

	application := &model.Application{
		UserProfileID:   params.UID,
		Type:            params.Type,
		Name:            params.Name,
		Email:           params.Email,
		Phone:           params.Phone,
		Skills:          params.Skills,
		CoverLetter:     params.CoverLetter,
		ApplicationDate: u.now(),
		Status:          model.ApplicationStatusPending,
	}
	application.SetPostingID(postingID)

	created, err := u.applicationRepo.CreateApplication(ctx, application)
	if err != nil {
		u.logger.Error().Err(err).Str("uid", params.UID).Str("type", string(params.Type)).Msg("failed to store application")

		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	if params.Type == model.ApplicationTypeCourse {
		return &SubmissionOutcome{
			Application: created,
			Next:        NextStepPayment,
			Payment: &PaymentInstructions{
				Title:       "Complete Your Payment",
				Description: "Scan the QR code with any UPI app to pay the course fee.",
				QRImageURL:  u.paymentCfg.QRImageURL,
			},
			DismissRedirectPath: model.StudentDashboardPath,
		}, nil
	}

	return &SubmissionOutcome{
		Application:  created,
		Next:         NextStepNavigate,
		RedirectPath: model.StudentDashboardPath,
	}, nil
}

func submitLockKey(uid string, applicationType model.ApplicationType, postingID string) string {
	return uid + ":" + string(applicationType) + ":" + postingID
}
