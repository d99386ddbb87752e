package grpc

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/api"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/services"
)

func (s *GRPCServer) profile(ctx context.Context, u *models.User) *api.ProfileResponse {
	resp := &api.ProfileResponse{User: *u}
	if u.AvatarURL == "" || s.svc.Avatars == nil {
		return resp
	}
	url, err := s.svc.Avatars.DownloadURL(ctx, u.AvatarURL)
	if err != nil {
		s.logger.Warn(ctx, "avatar url unavailable", "user_id", u.ID, "error", err)
		return resp
	}
	resp.AvatarDownloadURL = url
	return resp
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.ProfileResponse, error) {
	u, err := s.svc.Identity.Resolve(ctx, userID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return s.profile(ctx, u), nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.ProfileResponse, error) {
	u, err := s.svc.Identity.UpdateProfile(ctx, userID(ctx), req.Name, req.AvatarURL)
	if err != nil {
		return nil, toStatus(err)
	}
	return s.profile(ctx, u), nil
}

func (s *GRPCServer) PresignAvatarUpload(ctx context.Context, req *api.PresignAvatarUploadRequest) (*api.PresignAvatarUploadResponse, error) {
	up, err := s.svc.Avatars.PresignUpload(ctx, userID(ctx), req.ContentType)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.PresignAvatarUploadResponse{Key: up.Key, URL: up.URL, ContentType: up.ContentType}, nil
}

func (s *GRPCServer) activeHangs(ctx context.Context) ([]models.HangView, error) {
	u, err := s.svc.Identity.RequireNamed(ctx, userID(ctx))
	if err != nil {
		return nil, err
	}
	return s.svc.Aggregation.ListActiveHangs(ctx, u.ID)
}

func (s *GRPCServer) ListActiveHangs(ctx context.Context, req *api.ListActiveHangsRequest) (*api.ListActiveHangsResponse, error) {
	views, err := s.activeHangs(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ListActiveHangsResponse{Hangs: views}, nil
}

func (s *GRPCServer) GetStats(ctx context.Context, req *api.GetStatsRequest) (*api.StatsResponse, error) {
	views, err := s.activeHangs(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	st := services.Summarize(views)
	return &api.StatsResponse{Hangs: st.Hangs, Going: st.Going, Attendees: st.Attendees}, nil
}

func (s *GRPCServer) GetHang(ctx context.Context, req *api.HangRequest) (*api.HangViewResponse, error) {
	v, err := s.svc.Aggregation.GetHang(ctx, req.HangID, userID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.HangViewResponse{Hang: *v}, nil
}

func (s *GRPCServer) CreateHang(ctx context.Context, req *api.CreateHangRequest) (*api.HangResponse, error) {
	h, err := s.svc.Lifecycle.Create(ctx, userID(ctx), req.Hang.Fields())
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.HangResponse{Hang: *h}, nil
}

func (s *GRPCServer) UpdateHang(ctx context.Context, req *api.UpdateHangRequest) (*api.HangResponse, error) {
	h, err := s.svc.Lifecycle.Update(ctx, req.HangID, userID(ctx), req.Hang.Fields())
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.HangResponse{Hang: *h}, nil
}

func (s *GRPCServer) CancelHang(ctx context.Context, req *api.HangRequest) (*api.HangResponse, error) {
	h, err := s.svc.Lifecycle.Cancel(ctx, req.HangID, userID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.HangResponse{Hang: *h}, nil
}

func (s *GRPCServer) CompleteHang(ctx context.Context, req *api.HangRequest) (*api.HangResponse, error) {
	h, err := s.svc.Lifecycle.Complete(ctx, req.HangID, userID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.HangResponse{Hang: *h}, nil
}

func (s *GRPCServer) SetRSVP(ctx context.Context, req *api.SetRSVPRequest) (*api.AttendeeResponse, error) {
	a, err := s.svc.RSVP.SetRSVP(ctx, req.HangID, userID(ctx), req.Status)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.AttendeeResponse{Attendee: *a}, nil
}

func (s *GRPCServer) AddSuggestion(ctx context.Context, req *api.AddSuggestionRequest) (*api.SuggestionResponse, error) {
	sg, err := s.svc.Suggestions.AddSuggestion(ctx, req.HangID, userID(ctx), req.Type, req.Content)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.SuggestionResponse{Suggestion: *sg}, nil
}

func (s *GRPCServer) VoteSuggestion(ctx context.Context, req *api.VoteSuggestionRequest) (*api.VoteSuggestionResponse, error) {
	votes, err := s.svc.Suggestions.VoteSuggestion(ctx, req.SuggestionID, userID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.VoteSuggestionResponse{Votes: votes}, nil
}

func (s *GRPCServer) ShareHang(ctx context.Context, req *api.HangRequest) (*api.ShareResponse, error) {
	p, err := s.svc.Share.Share(ctx, req.HangID, userID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ShareResponse{URL: p.URL, Text: p.Text}, nil
}
