package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to its response DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              profile.UserID,
		Email:           profile.User.Email,
		FullName:        profile.User.FullName,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		Qualification:   profile.Qualification,
		ExperienceYears: profile.ExperienceYears,
		Biography:       profile.Biography,
		IsActive:        profile.User.IsActive,
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}

// AvailabilityToResponse converts availability entries of one doctor
func AvailabilityToResponse(entries []entity.AvailabilityEntry) []dto.AvailabilityEntryResponse {
	responses := make([]dto.AvailabilityEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.AvailabilityEntryResponse{
			Weekday:   entry.Weekday,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			UpdatedAt: entry.UpdatedAt,
		}
	}
	return responses
}
