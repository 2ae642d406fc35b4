package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/devtools-mcp/src/devtools/controller/notifications/notificationsmock"
	"github.com/uber/devtools-mcp/src/devtools/entity"
	"github.com/uber/devtools-mcp/src/devtools/gateway/language-server/languageservermock"
	"github.com/uber/devtools-mcp/src/devtools/internal/errors"
	"github.com/uber/devtools-mcp/src/devtools/internal/fs"
	"github.com/uber/devtools-mcp/src/devtools/repository/project"
	"github.com/uber/devtools-mcp/src/devtools/repository/registry-file/registryfilemock"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fixture struct {
	ctrl     *gomock.Controller
	file     *registryfilemock.MockRepository
	servers  *languageservermock.MockFactory
	bus      *notificationsmock.MockBus
	projects project.Repository
	c        Controller
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:     ctrl,
		file:     registryfilemock.NewMockRepository(ctrl),
		servers:  languageservermock.NewMockFactory(ctrl),
		bus:      notificationsmock.NewMockBus(ctrl),
		projects: project.New(tally.NoopScope),
	}
	f.c = New(Params{
		Logger:   zap.NewNop().Sugar(),
		FS:       fs.New(),
		Projects: f.projects,
		File:     f.file,
		Servers:  f.servers,
		Bus:      f.bus,
	})
	return f
}

// expectServer makes the factory start a mock language server for root.
func (f *fixture) expectServer(root string, ignore []string) *languageservermock.MockSession {
	server := languageservermock.NewMockSession(f.ctrl)
	events := make(chan entity.Notification)
	server.EXPECT().Events().Return((<-chan entity.Notification)(events)).AnyTimes()
	f.servers.EXPECT().New(gomock.Any(), entity.Project{Root: root, IgnoreCrates: ignore}).Return(server, nil)
	f.bus.EXPECT().Attach(gomock.Any())
	return server
}

// expectMutation expects the persistence write and the notifications of one registry change, in order.
func (f *fixture) expectMutation(saved []entity.Project, event entity.Notification, snapshot []entity.ProjectDescription) {
	gomock.InOrder(
		f.file.EXPECT().Save(saved).Return(nil),
		f.bus.EXPECT().Publish(event),
		f.bus.EXPECT().Publish(entity.RegistrySnapshot{Projects: snapshot}),
	)
}

func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

func TestAdd(t *testing.T) {
	f := newFixture(t)
	root := tempRoot(t)
	link := filepath.Join(tempRoot(t), "link")
	require.NoError(t, os.Symlink(root, link))

	f.expectServer(root, nil)
	desc := entity.ProjectDescription{Root: root, Name: filepath.Base(root), IsIndexing: true}
	f.expectMutation([]entity.Project{{Root: root}}, entity.ProjectAdded{Root: root}, []entity.ProjectDescription{desc})

	got, err := f.c.Add(context.Background(), link+"/./")
	require.NoError(t, err)
	assert.Equal(t, desc, got)

	s, ok := f.c.Get(root)
	require.True(t, ok)
	assert.Equal(t, root, s.Project.Root)
	assert.Equal(t, []entity.ProjectDescription{desc}, f.c.List())

	t.Run("already loaded", func(t *testing.T) {
		_, err := f.c.Add(context.Background(), root)
		var alreadyLoaded *errors.AlreadyLoadedError
		require.ErrorAs(t, err, &alreadyLoaded)
		assert.Equal(t, root, alreadyLoaded.Root)
	})
}

func TestAddInvalidPath(t *testing.T) {
	f := newFixture(t)
	root := tempRoot(t)
	file := filepath.Join(root, "Cargo.toml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	for _, path := range []string{filepath.Join(root, "missing"), file} {
		_, err := f.c.Add(context.Background(), path)
		var notFound *errors.NotFoundError
		require.ErrorAs(t, err, &notFound, path)
		assert.Equal(t, "directory", notFound.Kind)
	}
	assert.Empty(t, f.c.List())
}

func TestAddSpawnFailure(t *testing.T) {
	f := newFixture(t)
	root := tempRoot(t)

	f.servers.EXPECT().New(gomock.Any(), entity.Project{Root: root}).
		Return(nil, &errors.ProtocolError{Method: "initialize", Err: assert.AnError})
	_, err := f.c.Add(context.Background(), root)
	var protocolErr *errors.ProtocolError
	require.ErrorAs(t, err, &protocolErr)

	f.expectServer(root, nil)
	f.expectMutation(
		[]entity.Project{{Root: root}},
		entity.ProjectAdded{Root: root},
		[]entity.ProjectDescription{{Root: root, Name: filepath.Base(root), IsIndexing: true}},
	)
	_, err = f.c.Add(context.Background(), root)
	assert.NoError(t, err, "a failed spawn releases the root")
}

func TestAddPersistFailure(t *testing.T) {
	f := newFixture(t)
	root := tempRoot(t)

	f.expectServer(root, nil)
	f.file.EXPECT().Save(gomock.Any()).Return(assert.AnError)
	f.file.EXPECT().Path().Return("/cfg/registry.toml")
	f.bus.EXPECT().Publish(gomock.Any()).Times(2)

	_, err := f.c.Add(context.Background(), root)
	require.NoError(t, err)
	_, ok := f.c.Get(root)
	assert.True(t, ok)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)

	t.Run("unregistered", func(t *testing.T) {
		s, ok := f.c.Remove(context.Background(), "/code/missing")
		assert.False(t, ok)
		assert.Nil(t, s)
	})

	t.Run("registered", func(t *testing.T) {
		loaded := project.NewSession(entity.Project{Root: "/code/a"}, nil)
		f.projects.Set(loaded)
		f.projects.Set(project.NewSession(entity.Project{Root: "/code/b"}, nil))

		f.expectMutation(
			[]entity.Project{{Root: "/code/b"}},
			entity.ProjectRemoved{Root: "/code/a"},
			[]entity.ProjectDescription{{Root: "/code/b", Name: "b", IsIndexing: true}},
		)
		s, ok := f.c.Remove(context.Background(), "/code/a")
		require.True(t, ok)
		assert.Same(t, loaded, s)
		_, ok = f.c.Get("/code/a")
		assert.False(t, ok)
	})
}

func TestGetByPath(t *testing.T) {
	f := newFixture(t)
	f.projects.Set(project.NewSession(entity.Project{Root: "/code/a"}, nil))
	f.projects.Set(project.NewSession(entity.Project{Root: "/code/ab"}, nil))

	tests := []struct {
		path string
		want string
	}{
		{path: "/code/a", want: "/code/a"},
		{path: "/code/a/src/lib.rs", want: "/code/a"},
		{path: "/code/a/", want: "/code/a"},
		{path: "/code/ab/src/main.rs", want: "/code/ab"},
		{path: "/code"},
		{path: "/other/a"},
		{path: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s, ok := f.c.GetByPath(tt.path)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, s.Project.Root)
		})
	}
}

func TestFind(t *testing.T) {
	f := newFixture(t)
	root := tempRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	f.projects.Set(project.NewSession(entity.Project{Root: root}, nil))

	t.Run("by name", func(t *testing.T) {
		s, err := f.c.Find(filepath.Base(root))
		require.NoError(t, err)
		assert.Equal(t, root, s.Project.Root)
	})

	t.Run("by nested path", func(t *testing.T) {
		s, err := f.c.Find(filepath.Join(root, "src"))
		require.NoError(t, err)
		assert.Equal(t, root, s.Project.Root)
	})

	t.Run("unknown", func(t *testing.T) {
		for _, id := range []string{"nope", tempRoot(t)} {
			_, err := f.c.Find(id)
			var notFound *errors.NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, "project", notFound.Kind)
			assert.Equal(t, id, notFound.Name)
		}
	})
}

func TestShutdownAll(t *testing.T) {
	f := newFixture(t)
	a := languageservermock.NewMockSession(f.ctrl)
	b := languageservermock.NewMockSession(f.ctrl)
	f.projects.Set(project.NewSession(entity.Project{Root: "/code/a"}, a))
	f.projects.Set(project.NewSession(entity.Project{Root: "/code/b"}, b))

	gomock.InOrder(
		a.EXPECT().Shutdown(gomock.Any()).Return(&errors.AlreadyShutDownError{Root: "/code/a"}),
		b.EXPECT().Shutdown(gomock.Any()).Return(nil),
	)

	err := f.c.ShutdownAll(context.Background())
	var shutDown *errors.AlreadyShutDownError
	require.ErrorAs(t, err, &shutDown)
	assert.Equal(t, "/code/a", shutDown.Root)
}

func TestLoad(t *testing.T) {
	f := newFixture(t)
	valid := tempRoot(t)
	loaded := tempRoot(t)
	missing := filepath.Join(tempRoot(t), "gone")
	f.projects.Set(project.NewSession(entity.Project{Root: loaded}, nil))

	f.file.EXPECT().Load().Return([]entity.Project{
		{Root: valid, IgnoreCrates: []string{"xtask"}},
		{Root: missing},
		{Root: loaded},
	})
	f.expectServer(valid, []string{"xtask"})
	f.file.EXPECT().Save(gomock.Len(2)).Return(nil)
	f.bus.EXPECT().Publish(entity.ProjectAdded{Root: valid})
	f.bus.EXPECT().Publish(gomock.AssignableToTypeOf(entity.RegistrySnapshot{}))

	err := f.c.Load(context.Background())
	var notFound *errors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.Name)

	s, ok := f.c.Get(valid)
	require.True(t, ok)
	assert.Equal(t, []string{"xtask"}, s.Project.IgnoreCrates)
}

func TestLoadSpawnFailure(t *testing.T) {
	f := newFixture(t)
	root := tempRoot(t)

	f.file.EXPECT().Load().Return([]entity.Project{{Root: root}})
	f.servers.EXPECT().New(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	err := f.c.Load(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, f.c.List())
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	a := languageservermock.NewMockSession(f.ctrl)
	f.projects.Set(project.NewSession(entity.Project{Root: "/code/a"}, a))

	f.expectMutation([]entity.Project{}, entity.ProjectRemoved{Root: "/code/a"}, []entity.ProjectDescription{})
	a.EXPECT().Shutdown(gomock.Any()).Return(assert.AnError)

	assert.ErrorIs(t, f.c.Clear(context.Background()), assert.AnError)
	assert.Empty(t, f.c.List())
}
