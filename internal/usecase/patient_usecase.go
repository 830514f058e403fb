package usecase

import (
	"context"
	"errors"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	GetMyProfile(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	UpdateMyProfile(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	log         *logrus.Logger
	userRepo    repository.UserRepository
	patientRepo repository.PatientProfileRepository
}

func NewPatientUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
) PatientUsecase {
	return &patientUsecase{
		log:         log,
		userRepo:    userRepo,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) GetMyProfile(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.patientRepo.FindByUserID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientUsecase) UpdateMyProfile(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error) {
	profile, err := u.patientRepo.FindByUserID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	if req.FullName != "" {
		profile.User.FullName = req.FullName
		if err := u.userRepo.Update(ctx, &profile.User); err != nil {
			u.log.Warnf("Failed to update user %s: %+v", patientID, err)
			return nil, err
		}
	}

	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.DateOfBirth != "" {
		dob, err := parseDateOnly(req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDate
		}
		profile.DateOfBirth = dob
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := u.patientRepo.Update(ctx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile %s: %+v", patientID, err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	profiles, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientProfilesToResponses(profiles),
		Total:    len(profiles),
	}, nil
}
