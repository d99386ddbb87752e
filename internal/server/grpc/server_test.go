package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/letshang/internal/api"
	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/auth"
	"github.com/dmitrijs2005/letshang/internal/server/config"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/letshang/internal/server/services"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "test-secret"

type testServer struct {
	client api.HangServiceClient
	health healthpb.HealthClient
}

func newTestServices(rm repomanager.RepositoryManager) Services {
	l := logging.Nop{}
	agg := services.NewAggregationService(rm, l)
	return Services{
		Identity:    services.NewIdentityService(rm, l),
		Aggregation: agg,
		RSVP:        services.NewRSVPService(rm, l),
		Suggestions: services.NewSuggestionService(rm, l),
		Lifecycle:   services.NewLifecycleService(rm, l),
		Share:       services.NewShareService(agg, "https://hangs.example/"),
		Avatars:     services.NewAvatarService(&config.Config{S3Bucket: "avatars"}, l),
	}
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := NewGRPCServer("bufnet", logging.Nop{}, newTestServices(repomanager.NewMemoryRepositoryManager()), testSecret)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	return &testServer{client: api.NewHangServiceClient(conn), health: healthpb.NewHealthClient(conn)}
}

// as returns a context carrying a valid token for userID.
func as(t *testing.T, userID string) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, tok)
}
