package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "letshang.HangService"

const (
	MethodGetProfile          = "GetProfile"
	MethodUpdateProfile       = "UpdateProfile"
	MethodPresignAvatarUpload = "PresignAvatarUpload"
	MethodListActiveHangs     = "ListActiveHangs"
	MethodGetHang             = "GetHang"
	MethodCreateHang          = "CreateHang"
	MethodUpdateHang          = "UpdateHang"
	MethodCancelHang          = "CancelHang"
	MethodCompleteHang        = "CompleteHang"
	MethodSetRSVP             = "SetRSVP"
	MethodAddSuggestion       = "AddSuggestion"
	MethodVoteSuggestion      = "VoteSuggestion"
	MethodShareHang           = "ShareHang"
	MethodGetStats            = "GetStats"
)

// FullMethod returns the gRPC path of a HangService method.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

type HangServiceServer interface {
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error)
	PresignAvatarUpload(context.Context, *PresignAvatarUploadRequest) (*PresignAvatarUploadResponse, error)
	ListActiveHangs(context.Context, *ListActiveHangsRequest) (*ListActiveHangsResponse, error)
	GetHang(context.Context, *HangRequest) (*HangViewResponse, error)
	CreateHang(context.Context, *CreateHangRequest) (*HangResponse, error)
	UpdateHang(context.Context, *UpdateHangRequest) (*HangResponse, error)
	CancelHang(context.Context, *HangRequest) (*HangResponse, error)
	CompleteHang(context.Context, *HangRequest) (*HangResponse, error)
	SetRSVP(context.Context, *SetRSVPRequest) (*AttendeeResponse, error)
	AddSuggestion(context.Context, *AddSuggestionRequest) (*SuggestionResponse, error)
	VoteSuggestion(context.Context, *VoteSuggestionRequest) (*VoteSuggestionResponse, error)
	ShareHang(context.Context, *HangRequest) (*ShareResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*StatsResponse, error)
}

func unary[Req, Resp any](name string, call func(HangServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(HangServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(HangServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// HangServiceDesc describes the service for grpc.ServiceRegistrar.
var HangServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HangServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodGetProfile, HangServiceServer.GetProfile),
		unary(MethodUpdateProfile, HangServiceServer.UpdateProfile),
		unary(MethodPresignAvatarUpload, HangServiceServer.PresignAvatarUpload),
		unary(MethodListActiveHangs, HangServiceServer.ListActiveHangs),
		unary(MethodGetHang, HangServiceServer.GetHang),
		unary(MethodCreateHang, HangServiceServer.CreateHang),
		unary(MethodUpdateHang, HangServiceServer.UpdateHang),
		unary(MethodCancelHang, HangServiceServer.CancelHang),
		unary(MethodCompleteHang, HangServiceServer.CompleteHang),
		unary(MethodSetRSVP, HangServiceServer.SetRSVP),
		unary(MethodAddSuggestion, HangServiceServer.AddSuggestion),
		unary(MethodVoteSuggestion, HangServiceServer.VoteSuggestion),
		unary(MethodShareHang, HangServiceServer.ShareHang),
		unary(MethodGetStats, HangServiceServer.GetStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "letshang/hang_service",
}

func RegisterHangServiceServer(s grpc.ServiceRegistrar, srv HangServiceServer) {
	s.RegisterService(&HangServiceDesc, srv)
}

type HangServiceClient interface {
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	PresignAvatarUpload(ctx context.Context, in *PresignAvatarUploadRequest, opts ...grpc.CallOption) (*PresignAvatarUploadResponse, error)
	ListActiveHangs(ctx context.Context, in *ListActiveHangsRequest, opts ...grpc.CallOption) (*ListActiveHangsResponse, error)
	GetHang(ctx context.Context, in *HangRequest, opts ...grpc.CallOption) (*HangViewResponse, error)
	CreateHang(ctx context.Context, in *CreateHangRequest, opts ...grpc.CallOption) (*HangResponse, error)
	UpdateHang(ctx context.Context, in *UpdateHangRequest, opts ...grpc.CallOption) (*HangResponse, error)
	CancelHang(ctx context.Context, in *HangRequest, opts ...grpc.CallOption) (*HangResponse, error)
	CompleteHang(ctx context.Context, in *HangRequest, opts ...grpc.CallOption) (*HangResponse, error)
	SetRSVP(ctx context.Context, in *SetRSVPRequest, opts ...grpc.CallOption) (*AttendeeResponse, error)
	AddSuggestion(ctx context.Context, in *AddSuggestionRequest, opts ...grpc.CallOption) (*SuggestionResponse, error)
	VoteSuggestion(ctx context.Context, in *VoteSuggestionRequest, opts ...grpc.CallOption) (*VoteSuggestionResponse, error)
	ShareHang(ctx context.Context, in *HangRequest, opts ...grpc.CallOption) (*ShareResponse, error)
	GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*StatsResponse, error)
}

type hangServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewHangServiceClient returns a client whose calls are encoded with the
// JSON codec.
func NewHangServiceClient(cc grpc.ClientConnInterface) HangServiceClient {
	return &hangServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *hangServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *hangServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *hangServiceClient) PresignAvatarUpload(ctx context.Context, in *PresignAvatarUploadRequest, opts ...grpc.CallOption) (*PresignAvatarUploadResponse, error) {
	return invoke[PresignAvatarUploadResponse](ctx, c.cc, MethodPresignAvatarUpload, in, opts)
}

func (c *hangServiceClient) ListActiveHangs(ctx context.Context, in *ListActiveHangsRequest, opts ...grpc.CallOption) (*ListActiveHangsResponse, error) {
	return invoke[ListActiveHangsResponse](ctx, c.cc, MethodListActiveHangs, in, opts)
}

func (c *hangServiceClient) GetHang(ctx context.Context, in *HangRequest, opts ...grpc.CallOption) (*HangViewResponse, error) {
	return invoke[HangViewResponse](ctx, c.cc, MethodGetHang, in, opts)
}

func (c *hangServiceClient) CreateHang(ctx context.Context, in *CreateHangRequest, opts ...grpc.CallOption) (*HangResponse, error) {
	return invoke[HangResponse](ctx, c.cc, MethodCreateHang, in, opts)
}

func (c *hangServiceClient) UpdateHang(ctx context.Context, in *UpdateHangRequest, opts ...grpc.CallOption) (*HangResponse, error) {
	return invoke[HangResponse](ctx, c.cc, MethodUpdateHang, in, opts)
}

func (c *hangServiceClient) CancelHang(ctx context.Context, in *HangRequest, opts ...grpc.CallOption) (*HangResponse, error) {
	return invoke[HangResponse](ctx, c.cc, MethodCancelHang, in, opts)
}

func (c *hangServiceClient) CompleteHang(ctx context.Context, in *HangRequest, opts ...grpc.CallOption) (*HangResponse, error) {
	return invoke[HangResponse](ctx, c.cc, MethodCompleteHang, in, opts)
}

func (c *hangServiceClient) SetRSVP(ctx context.Context, in *SetRSVPRequest, opts ...grpc.CallOption) (*AttendeeResponse, error) {
	return invoke[AttendeeResponse](ctx, c.cc, MethodSetRSVP, in, opts)
}

func (c *hangServiceClient) AddSuggestion(ctx context.Context, in *AddSuggestionRequest, opts ...grpc.CallOption) (*SuggestionResponse, error) {
	return invoke[SuggestionResponse](ctx, c.cc, MethodAddSuggestion, in, opts)
}

func (c *hangServiceClient) VoteSuggestion(ctx context.Context, in *VoteSuggestionRequest, opts ...grpc.CallOption) (*VoteSuggestionResponse, error) {
	return invoke[VoteSuggestionResponse](ctx, c.cc, MethodVoteSuggestion, in, opts)
}

func (c *hangServiceClient) ShareHang(ctx context.Context, in *HangRequest, opts ...grpc.CallOption) (*ShareResponse, error) {
	return invoke[ShareResponse](ctx, c.cc, MethodShareHang, in, opts)
}

func (c *hangServiceClient) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*StatsResponse, error) {
	return invoke[StatsResponse](ctx, c.cc, MethodGetStats, in, opts)
}
