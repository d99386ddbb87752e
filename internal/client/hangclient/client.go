// Package hangclient is a typed gRPC client for letshang.HangService.
package hangclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/letshang/internal/api"
	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var ErrUnavailable = errors.New("server unavailable")

type Client struct {
	conn   *grpc.ClientConn
	client api.HangServiceClient
	health healthpb.HealthClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, c.AccessToken()), method, req, reply, cc, opts...)
}

// New dials endpoint without TLS. Extra options are appended after the
// defaults.
func New(endpoint, accessToken string, opts ...grpc.DialOption) (*Client, error) {
	c := &Client{accessToken: accessToken}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewHangServiceClient(conn)
	c.health = healthpb.NewHealthClient(conn)
	return c, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken replaces the token sent with subsequent calls. An empty
// token sends none.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// Ping asks the health service whether HangService is serving.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (c *Client) GetProfile(ctx context.Context) (*api.ProfileResponse, error) {
	resp, err := c.client.GetProfile(ctx, &api.GetProfileRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, avatarURL string) (*api.ProfileResponse, error) {
	resp, err := c.client.UpdateProfile(ctx, &api.UpdateProfileRequest{Name: name, AvatarURL: avatarURL})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *Client) PresignAvatarUpload(ctx context.Context, contentType string) (*api.PresignAvatarUploadResponse, error) {
	resp, err := c.client.PresignAvatarUpload(ctx, &api.PresignAvatarUploadRequest{ContentType: contentType})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *Client) ListActiveHangs(ctx context.Context) ([]models.HangView, error) {
	resp, err := c.client.ListActiveHangs(ctx, &api.ListActiveHangsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	if resp.Hangs == nil {
		return []models.HangView{}, nil
	}
	return resp.Hangs, nil
}

func (c *Client) GetHang(ctx context.Context, hangID string) (*models.HangView, error) {
	resp, err := c.client.GetHang(ctx, &api.HangRequest{HangID: hangID})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Hang, nil
}

func (c *Client) CreateHang(ctx context.Context, in api.HangInput) (*models.Hang, error) {
	resp, err := c.client.CreateHang(ctx, &api.CreateHangRequest{Hang: in})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Hang, nil
}

func (c *Client) UpdateHang(ctx context.Context, hangID string, in api.HangInput) (*models.Hang, error) {
	resp, err := c.client.UpdateHang(ctx, &api.UpdateHangRequest{HangID: hangID, Hang: in})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Hang, nil
}

func (c *Client) CancelHang(ctx context.Context, hangID string) (*models.Hang, error) {
	resp, err := c.client.CancelHang(ctx, &api.HangRequest{HangID: hangID})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Hang, nil
}

func (c *Client) CompleteHang(ctx context.Context, hangID string) (*models.Hang, error) {
	resp, err := c.client.CompleteHang(ctx, &api.HangRequest{HangID: hangID})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Hang, nil
}

func (c *Client) SetRSVP(ctx context.Context, hangID, status string) (*models.Attendee, error) {
	resp, err := c.client.SetRSVP(ctx, &api.SetRSVPRequest{HangID: hangID, Status: status})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Attendee, nil
}

func (c *Client) AddSuggestion(ctx context.Context, hangID, typ, content string) (*models.Suggestion, error) {
	resp, err := c.client.AddSuggestion(ctx, &api.AddSuggestionRequest{HangID: hangID, Type: typ, Content: content})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Suggestion, nil
}

func (c *Client) VoteSuggestion(ctx context.Context, suggestionID string) (int64, error) {
	resp, err := c.client.VoteSuggestion(ctx, &api.VoteSuggestionRequest{SuggestionID: suggestionID})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Votes, nil
}

func (c *Client) ShareHang(ctx context.Context, hangID string) (*api.ShareResponse, error) {
	resp, err := c.client.ShareHang(ctx, &api.HangRequest{HangID: hangID})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *Client) GetStats(ctx context.Context) (*api.StatsResponse, error) {
	resp, err := c.client.GetStats(ctx, &api.GetStatsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

// mapError turns a gRPC status back into the common sentinel it was built
// from, keeping the server's message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.InvalidArgument:
		sentinel = common.ErrorValidation
	case codes.Unauthenticated:
		sentinel = common.ErrorUnauthorized
	case codes.PermissionDenied:
		sentinel = common.ErrorForbidden
	case codes.NotFound:
		sentinel = common.ErrorNotFound
	case codes.FailedPrecondition:
		sentinel = common.ErrorHangNotActive
		if strings.Contains(st.Message(), common.ErrorProfileIncomplete.Error()) {
			sentinel = common.ErrorProfileIncomplete
		}
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}

	if st.Message() == sentinel.Error() {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
