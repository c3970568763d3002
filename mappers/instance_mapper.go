// file: mappers/instance_mapper.go
package mappers

import (
	"github.com/IkedaLab-Daniel/BambaCTF/dto"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
)

func MapInstanceToResp(in models.ChallengeInstance) dto.InstanceResp {
	return dto.InstanceResp{
		ID:          in.ID,
		ChallengeID: in.ChallengeID,
		UserID:      in.UserID,
		TeamID:      in.TeamID,
		Status:      string(in.Status),
		StartedAt:   in.StartedAt.Format(timeLayout),
		ExpiresAt:   in.ExpiresAt.Format(timeLayout),
		EndpointURL: in.EndpointURL,
	}
}

func MapSubmissionToResp(s models.Submission) dto.SubmissionResp {
	return dto.SubmissionResp{
		ID:            s.ID,
		ChallengeID:   s.ChallengeID,
		UserID:        s.UserID,
		TeamID:        s.TeamID,
		SubmittedFlag: s.SubmittedFlag,
		IsCorrect:     s.IsCorrect,
		PointsAwarded: s.PointsAwarded,
		CreatedAt:     s.CreatedAt.Format(timeLayout),
	}
}
