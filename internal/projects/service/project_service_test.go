package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paper-planes/pm-backend/internal/db"
	"github.com/paper-planes/pm-backend/internal/docs"
	"github.com/paper-planes/pm-backend/internal/drive"
	"github.com/paper-planes/pm-backend/internal/projects/domain"
	"github.com/paper-planes/pm-backend/internal/projects/repository"
	"github.com/paper-planes/pm-backend/internal/projects/service"
	"github.com/paper-planes/pm-backend/internal/vault"
)

type fakeGenerator struct {
	code string
	err  error
}

func (g *fakeGenerator) Generate(context.Context, string, string, []string) (string, error) {
	return g.code, g.err
}

type fakeDocs struct {
	err error
}

func (d *fakeDocs) Generate(_ context.Context, p *domain.Project) (docs.Documents, error) {
	return docs.Documents{
		Adminscale: "# Админшкала " + p.Code + "\n",
		PERT:       "# " + p.Code + " - PERT\n",
	}, d.err
}

type fakeSyncer struct {
	result drive.SyncResult
	calls  int
	files  []vault.File
}

func (s *fakeSyncer) Sync(_ context.Context, _ *domain.Project, files []vault.File) drive.SyncResult {
	s.calls++
	s.files = files
	return s.result
}

type fixture struct {
	svc    *service.ProjectService
	repo   *repository.ProjectRepository
	vault  *vault.Provisioner
	root   string
	syncer *fakeSyncer
}

func newFixture(t *testing.T, gen *fakeGenerator, docGen *fakeDocs, syncer *fakeSyncer) *fixture {
	t.Helper()
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(database.Close)

	root := t.TempDir()
	repo := repository.NewProjectRepository(database.SQL)
	local := vault.New(root, nil)

	return &fixture{
		svc:    service.NewProjectService(repo, gen, docGen, local, syncer, nil),
		repo:   repo,
		vault:  local,
		root:   root,
		syncer: syncer,
	}
}

func validInput() service.CreateInput {
	return service.CreateInput{
		Name:      "Внедрение CRM",
		Client:    "MedIQ",
		Group:     domain.GroupLeft,
		StartDate: "2026-09-01",
	}
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{result: drive.SyncResult{
		Status:    drive.StatusSynced,
		FolderID:  "folder-1",
		FolderURL: "https://drive.google.com/drive/folders/folder-1",
	}}
	f := newFixture(t, &fakeGenerator{code: "2168.MED.mediq"}, &fakeDocs{}, syncer)

	res, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, "2168.MED.mediq", res.Project.Code)
	assert.Equal(t, domain.StatusDraft, res.Project.Status)
	assert.Equal(t, drive.StatusSynced, res.Drive.Status)
	assert.Empty(t, res.Warnings)

	// Remote link stored on the record.
	stored, err := f.repo.GetByID(ctx, res.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "folder-1", stored.DriveFolderID)
	assert.Equal(t, "https://drive.google.com/drive/folders/folder-1", stored.DriveFolderURL)
	assert.Equal(t, filepath.Join(f.root, "2168.MED.mediq"), stored.VaultPath)

	// Local skeleton and files on disk.
	dir := f.vault.Dir("2168.MED.mediq")
	for _, sub := range vault.Subfolders {
		_, err := os.Stat(filepath.Join(dir, sub))
		assert.NoError(t, err, sub)
	}
	_, err = os.Stat(filepath.Join(dir, "README.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "04-project-docs", "MED.PERT_FOR_XMIND.md"))
	assert.NoError(t, err)

	// The syncer got the three project files.
	assert.Equal(t, 1, syncer.calls)
	assert.Len(t, syncer.files, 3)
}

func TestCreate_InvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeGenerator{code: "2168.MED.mediq"}, &fakeDocs{}, &fakeSyncer{})

	_, err := f.svc.Create(ctx, service.CreateInput{Client: "MedIQ", Group: domain.GroupLeft})
	assert.Error(t, err)

	_, err = f.svc.Create(ctx, service.CreateInput{Name: "x", Client: "y", Group: "middle"})
	assert.Error(t, err)
}

func TestCreate_GeneratorFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	genErr := errors.New("format exhausted")
	f := newFixture(t, &fakeGenerator{err: genErr}, &fakeDocs{}, &fakeSyncer{})

	_, err := f.svc.Create(ctx, validInput())
	assert.ErrorIs(t, err, genErr)

	projects, err := f.repo.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestCreate_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeGenerator{code: "2168.MED.mediq"}, &fakeDocs{}, &fakeSyncer{
		result: drive.Skipped("not configured"),
	})

	_, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, validInput())
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	assert.True(t, service.IsUserError(err))
}

func TestCreate_DocumentDegradation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeGenerator{code: "2168.MED.mediq"}, &fakeDocs{err: errors.New("api down")},
		&fakeSyncer{result: drive.Skipped("not configured")})

	res, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "document generation degraded")

	// Files are still written from what the generator returned.
	_, statErr := os.Stat(filepath.Join(f.vault.Dir("2168.MED.mediq"), "README.md"))
	assert.NoError(t, statErr)
}

func TestCreate_RemoteFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeGenerator{code: "2168.MED.mediq"}, &fakeDocs{},
		&fakeSyncer{result: drive.Failed(errors.New("network unreachable"))})

	res, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, drive.StatusFailed, res.Drive.Status)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "drive sync failed")

	stored, err := f.repo.GetByID(ctx, res.Project.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.DriveFolderID)
	assert.Empty(t, stored.DriveFolderURL)
}

func TestResync(t *testing.T) {
	ctx := context.Background()
	syncer := &fakeSyncer{result: drive.Failed(errors.New("network unreachable"))}
	f := newFixture(t, &fakeGenerator{code: "2168.MED.mediq"}, &fakeDocs{}, syncer)

	created, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)

	// The outage is over; a manual resync succeeds and stores the link.
	syncer.result = drive.SyncResult{
		Status:    drive.StatusSynced,
		FolderID:  "folder-9",
		FolderURL: "https://drive.google.com/drive/folders/folder-9",
	}

	res, err := f.svc.Resync(ctx, created.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, drive.StatusSynced, res.Drive.Status)

	// The existing local markdown files are re-uploaded.
	assert.Len(t, syncer.files, 3)

	stored, err := f.repo.GetByID(ctx, created.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "folder-9", stored.DriveFolderID)

	_, err = f.svc.Resync(ctx, 99999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
