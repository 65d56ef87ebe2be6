package handler

import (
	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
)

// toUserResponse flattens the Account envelope into the legacy wire shape.
// Customers get explicit empty defaults for the worker-only fields so the
// contract is identical across roles.
func toUserResponse(a *domain.Account) userResponse {
	resp := userResponse{
		ID:            a.ID,
		Email:         a.Email,
		Name:          a.Name,
		Phone:         a.Phone,
		Role:          a.Role,
		Rating:        a.Rating,
		CompletedJobs: a.CompletedJobs,
		Skills:        []string{},
	}
	if a.Worker != nil {
		if a.Worker.Skills != nil {
			resp.Skills = a.Worker.Skills
		}
		resp.Experience = a.Worker.Experience
		resp.HourlyRate = a.Worker.HourlyRate
		resp.ResponseTime = a.Worker.ResponseTime
	}
	return resp
}

func toUserResponses(accounts []*domain.Account) []userResponse {
	out := make([]userResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toUserResponse(a)
	}
	return out
}

func toAuthResponse(res *ports.AuthResult) authResponse {
	return authResponse{User: toUserResponse(res.Account), Token: res.Token}
}

func toProfileUpdate(req updateProfileRequest) ports.ProfileUpdate {
	return ports.ProfileUpdate{
		Email:        req.Email,
		Role:         req.Role,
		Name:         req.Name,
		Phone:        req.Phone,
		Skills:       req.Skills,
		Experience:   req.Experience,
		HourlyRate:   req.HourlyRate,
		ResponseTime: req.ResponseTime,
	}
}
