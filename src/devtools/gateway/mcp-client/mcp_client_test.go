package mcpclient

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/devtools-mcp/src/devtools/controller/notifications/notificationsmock"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type sent struct {
	method string
	params map[string]any
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sent
}

func (s *recordingSender) SendNotificationToAllClients(method string, params map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sent{method: method, params: params})
}

func (s *recordingSender) all() []sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sent(nil), s.sent...)
}

func newGateway(t *testing.T, outbound chan entity.Notification) (*gateway, *recordingSender) {
	ctrl := gomock.NewController(t)
	bus := notificationsmock.NewMockBus(ctrl)
	if outbound != nil {
		bus.EXPECT().Outbound().Return((<-chan entity.Notification)(outbound))
	}
	sender := &recordingSender{}
	g := New(Params{Logger: zap.NewNop().Sugar(), Bus: bus, Sender: sender}).(*gateway)
	return g, sender
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		n    entity.Notification
		want mcp.LoggingLevel
	}{
		{name: "tool succeeded", n: entity.ToolInvocation{Success: true}, want: mcp.LoggingLevelInfo},
		{name: "tool failed", n: entity.ToolInvocation{}, want: mcp.LoggingLevelWarning},
		{name: "indexing started", n: entity.IndexingUpdate{IsIndexing: true}, want: mcp.LoggingLevelInfo},
		{name: "indexing report", n: entity.IndexingUpdate{IsIndexing: true, Progress: &entity.IndexingProgress{}}, want: mcp.LoggingLevelDebug},
		{name: "indexing finished", n: entity.IndexingUpdate{Progress: &entity.IndexingProgress{}}, want: mcp.LoggingLevelInfo},
		{name: "project added", n: entity.ProjectAdded{Root: "/code/demo"}, want: mcp.LoggingLevelInfo},
		{name: "snapshot", n: entity.RegistrySnapshot{}, want: mcp.LoggingLevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.n))
		})
	}
}

func TestNotify(t *testing.T) {
	g, sender := newGateway(t, nil)

	g.Notify(entity.ProjectAdded{Root: "/code/demo"})
	g.Notify(entity.RegistrySnapshot{})

	assert.Equal(t, []sent{
		{method: MethodMessage, params: map[string]any{"level": mcp.LoggingLevelInfo, "logger": "/code/demo", "data": "Project Added"}},
		{method: MethodMessage, params: map[string]any{"level": mcp.LoggingLevelInfo, "logger": entity.ProjectDescriptionsPath, "data": "No projects loaded"}},
	}, sender.all())
}

func TestForwardsUntilOutboundCloses(t *testing.T) {
	outbound := make(chan entity.Notification, 2)
	g, sender := newGateway(t, outbound)
	require.NoError(t, g.Start(context.Background()))

	outbound <- entity.ProjectAdded{Root: "/code/a"}
	outbound <- entity.ProjectRemoved{Root: "/code/a"}
	close(outbound)

	require.Eventually(t, func() bool { return len(sender.all()) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, "Project Removed", sender.all()[1].params["data"])
	require.NoError(t, g.Stop(context.Background()))
}

func TestStopEndsForwarding(t *testing.T) {
	outbound := make(chan entity.Notification)
	g, _ := newGateway(t, outbound)
	require.NoError(t, g.Start(context.Background()))
	require.NoError(t, g.Start(context.Background()))

	require.NoError(t, g.Stop(context.Background()))
	require.NoError(t, g.Stop(context.Background()))
}

func TestStopWithoutStart(t *testing.T) {
	g, _ := newGateway(t, nil)
	require.NoError(t, g.Stop(context.Background()))
	require.NoError(t, g.Start(context.Background()))
}

func TestDisplayPath(t *testing.T) {
	g := &gateway{home: "/home/dev"}
	assert.Equal(t, "~", g.displayPath("/home/dev"))
	assert.Equal(t, "~/code/demo", g.displayPath("/home/dev/code/demo"))
	assert.Equal(t, "/home/devops/demo", g.displayPath("/home/devops/demo"))
	assert.Equal(t, entity.ProjectDescriptionsPath, g.displayPath(entity.ProjectDescriptionsPath))

	g.home = ""
	assert.Equal(t, "/home/dev/code", g.displayPath("/home/dev/code"))
}
