package converter

import (
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// UserToResponse converts a User entity to UserResponse DTO. The password hash never leaves the entity.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Surname:         user.Surname,
		Email:           user.Email,
		Phone:           user.Phone,
		Address:         user.Address,
		NationalID:      user.NationalID,
		InsuranceName:   user.InsuranceName,
		InsuranceNumber: user.InsuranceNumber,
		Role:            string(user.Role),
		Status:          string(user.Status),
		CreatedAt:       user.CreatedAt,
	}

	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format(dateLayout)
		response.BirthDate = &birthDate
	}

	return response
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

func UserToIdentity(user *entity.User) *dto.IdentityResponse {
	if user == nil {
		return nil
	}
	return &dto.IdentityResponse{
		ID:      user.ID,
		Name:    user.Name,
		Surname: user.Surname,
		Email:   user.Email,
		Role:    string(user.Role),
	}
}
