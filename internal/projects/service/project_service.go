package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/paper-planes/pm-backend/internal/api/http/middleware"
	"github.com/paper-planes/pm-backend/internal/docs"
	"github.com/paper-planes/pm-backend/internal/drive"
	"github.com/paper-planes/pm-backend/internal/projects/domain"
	"github.com/paper-planes/pm-backend/internal/projects/repository"
	"github.com/paper-planes/pm-backend/internal/vault"
)

// CodeGenerator produces a project code for the given metadata.
type CodeGenerator interface {
	Generate(ctx context.Context, name, client string, usedCodes []string) (string, error)
}

// DocumentGenerator produces the project's markdown documents.
type DocumentGenerator interface {
	Generate(ctx context.Context, p *domain.Project) (docs.Documents, error)
}

// LocalProvisioner creates the local folder skeleton and project files.
type LocalProvisioner interface {
	Dir(code string) string
	EnsureSkeleton(code string) (string, error)
	WriteProjectFiles(dir string, p *domain.Project, d docs.Documents) ([]vault.File, error)
}

// RemoteSyncer mirrors a project into cloud storage. It never fails the
// caller: every outcome is folded into the SyncResult.
type RemoteSyncer interface {
	Sync(ctx context.Context, p *domain.Project, files []vault.File) drive.SyncResult
}

// ProjectService runs the project-creation workflow:
// generate code → persist → provision local skeleton → best-effort Drive sync.
// Each step blocks until it completes; only the remote step is allowed to
// fail without aborting the flow.
type ProjectService struct {
	repo      *repository.ProjectRepository
	generator CodeGenerator
	documents DocumentGenerator
	local     LocalProvisioner
	remote    RemoteSyncer
	log       *zap.Logger
}

func NewProjectService(
	repo *repository.ProjectRepository,
	generator CodeGenerator,
	documents DocumentGenerator,
	local LocalProvisioner,
	remote RemoteSyncer,
	log *zap.Logger,
) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectService{
		repo:      repo,
		generator: generator,
		documents: documents,
		local:     local,
		remote:    remote,
		log:       log,
	}
}

// CreateInput is the project metadata collected from the UI.
type CreateInput struct {
	Name      string
	Client    string
	Group     domain.Group
	StartDate string
	EndDate   string
}

// CreateResult reports everything the creation flow produced. Warnings carry
// the non-fatal degradations (remote sync failure, placeholder documents);
// the project itself is always fully created when err is nil.
type CreateResult struct {
	Project  *domain.Project  `json:"project"`
	Drive    drive.SyncResult `json:"drive"`
	Warnings []string         `json:"warnings,omitempty"`
}

// Create runs the full creation workflow for one project.
func (s *ProjectService) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if in.Name == "" || in.Client == "" {
		return nil, fmt.Errorf("name and client are required")
	}
	if !in.Group.Valid() {
		return nil, fmt.Errorf("group must be left or right")
	}

	// Code generation. Format errors and exhausted retries are fatal to this
	// action — there is no fallback to a malformed code.
	usedCodes, err := s.repo.Codes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list used codes: %w", err)
	}
	code, err := s.generator.Generate(ctx, in.Name, in.Client, usedCodes)
	if err != nil {
		return nil, err
	}

	// Persist. A duplicate code surfaces as domain.ErrDuplicateCode and the
	// user must regenerate; the UNIQUE constraint is the arbiter.
	project, err := s.repo.Create(ctx, &domain.Project{
		Code:      code,
		Name:      in.Name,
		Client:    in.Client,
		Group:     in.Group,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    domain.StatusDraft,
		VaultPath: s.local.Dir(code),
	})
	if err != nil {
		return nil, err
	}

	result := &CreateResult{Project: project}

	// Local skeleton is mandatory: a filesystem error fails the action even
	// though the record already exists (the user re-runs provisioning after
	// fixing the vault).
	dir, err := s.local.EnsureSkeleton(code)
	if err != nil {
		return nil, err
	}

	documents, err := s.documents.Generate(ctx, project)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("document generation degraded: %v", err))
	}

	files, err := s.local.WriteProjectFiles(dir, project, documents)
	if err != nil {
		return nil, err
	}

	// Remote mirroring is best-effort: any failure becomes a warning and the
	// creation still succeeds with the link unset.
	result.Drive = s.remote.Sync(ctx, project, files)
	switch result.Drive.Status {
	case drive.StatusSynced:
		if err := s.repo.UpdateRemoteLink(ctx, project.ID, result.Drive.FolderID, result.Drive.FolderURL); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("store remote link: %v", err))
		} else {
			project.DriveFolderID = result.Drive.FolderID
			project.DriveFolderURL = result.Drive.FolderURL
		}
	case drive.StatusFailed:
		result.Warnings = append(result.Warnings, fmt.Sprintf("drive sync failed: %s", result.Drive.Warning))
	case drive.StatusSkipped:
		s.log.Info("drive sync skipped", zap.String("code", code), zap.String("reason", result.Drive.Warning))
	}

	s.log.Info("project created",
		zap.String("request_id", middleware.GetRequestID(ctx)),
		zap.String("code", project.Code),
		zap.String("client", project.Client),
		zap.String("drive_status", string(result.Drive.Status)))
	return result, nil
}

// Get returns one project by id.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns projects matching the filter.
func (s *ProjectService) List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error) {
	return s.repo.List(ctx, f)
}

// Resync re-runs the remote provisioner for an existing project, typically
// after an earlier sync failed. The local skeleton is re-ensured first and
// whatever project files exist locally are uploaded again.
func (s *ProjectService) Resync(ctx context.Context, id int64) (*CreateResult, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dir, err := s.local.EnsureSkeleton(project.Code)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{Project: project}
	result.Drive = s.remote.Sync(ctx, project, existingFiles(dir))
	switch result.Drive.Status {
	case drive.StatusSynced:
		if err := s.repo.UpdateRemoteLink(ctx, project.ID, result.Drive.FolderID, result.Drive.FolderURL); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("store remote link: %v", err))
		} else {
			project.DriveFolderID = result.Drive.FolderID
			project.DriveFolderURL = result.Drive.FolderURL
		}
	case drive.StatusFailed:
		result.Warnings = append(result.Warnings, fmt.Sprintf("drive sync failed: %s", result.Drive.Warning))
	}
	return result, nil
}

// existingFiles collects the markdown files already present in the project
// directory, mapped to their skeleton subfolder.
func existingFiles(dir string) []vault.File {
	var out []vault.File

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".md" {
			out = append(out, vault.File{Path: filepath.Join(dir, e.Name())})
		}
	}
	for _, sub := range vault.Subfolders {
		subEntries, err := os.ReadDir(filepath.Join(dir, sub))
		if err != nil {
			continue
		}
		for _, e := range subEntries {
			if !e.IsDir() {
				out = append(out, vault.File{Path: filepath.Join(dir, sub, e.Name()), Subfolder: sub})
			}
		}
	}
	return out
}

// IsUserError reports whether err should map to a 4xx rather than a 5xx.
func IsUserError(err error) bool {
	return errors.Is(err, domain.ErrDuplicateCode) || errors.Is(err, domain.ErrNotFound)
}
