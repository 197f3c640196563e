package drive

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/paper-planes/pm-backend/internal/projects/domain"
	"github.com/paper-planes/pm-backend/internal/vault"
)

// engagementRoot is the fixed app root folder in Drive. Group folders nest
// directly below it.
const engagementRoot = "04-Engagement"

var groupFolderNames = map[domain.Group]string{
	domain.GroupLeft:  "Левая группа",
	domain.GroupRight: "Правая группа",
}

// Status distinguishes the three outcomes of a remote sync attempt. Remote
// mirroring is an enhancement — only the success path touches the project
// record, and a failure is reported as a warning, never as a fatal error.
type Status string

const (
	StatusSynced  Status = "synced"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// SyncResult is the outcome of mirroring one project to Drive.
type SyncResult struct {
	Status    Status `json:"status"`
	FolderID  string `json:"folder_id,omitempty"`
	FolderURL string `json:"folder_url,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// Skipped returns the result for a provisioner that is not configured.
func Skipped(reason string) SyncResult {
	return SyncResult{Status: StatusSkipped, Warning: reason}
}

// Failed wraps an error into a non-fatal sync result.
func Failed(err error) SyncResult {
	return SyncResult{Status: StatusFailed, Warning: err.Error()}
}

// Provisioner mirrors project folder structures into Google Drive.
// A nil Provisioner (no credentials configured) skips all work.
type Provisioner struct {
	creds         *CredentialProvider
	sharedDriveID string
	log           *zap.Logger

	// newClient exists so tests can inject a fake Drive backend.
	newClient func(ctx context.Context) (*Client, error)
}

func NewProvisioner(creds *CredentialProvider, sharedDriveID string, log *zap.Logger) *Provisioner {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Provisioner{
		creds:         creds,
		sharedDriveID: sharedDriveID,
		log:           log,
	}
	p.newClient = p.authorizedClient
	return p
}

// NewProvisionerWithClient wires a pre-built client, bypassing OAuth. Used in
// tests and by tooling that already holds a Drive service.
func NewProvisionerWithClient(client *Client, log *zap.Logger) *Provisioner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provisioner{
		log:       log,
		newClient: func(context.Context) (*Client, error) { return client, nil },
	}
}

func (p *Provisioner) authorizedClient(ctx context.Context) (*Client, error) {
	httpClient, err := p.creds.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := drivev3.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("build drive service: %w", err)
	}
	return NewClient(svc, p.sharedDriveID), nil
}

// Sync mirrors the project's folder skeleton into Drive and uploads the local
// files. Every failure is folded into the returned SyncResult; Sync never
// returns an error because remote provisioning is best-effort by design.
func (p *Provisioner) Sync(ctx context.Context, proj *domain.Project, files []vault.File) SyncResult {
	if p == nil {
		return Skipped("Drive integration is not configured")
	}

	client, err := p.newClient(ctx)
	if err != nil {
		p.log.Warn("drive authorization failed", zap.String("code", proj.Code), zap.Error(err))
		return Failed(err)
	}

	result, err := p.provision(ctx, client, proj, files)
	if err != nil {
		p.log.Warn("drive sync failed", zap.String("code", proj.Code), zap.Error(err))
		return Failed(err)
	}

	p.log.Info("drive sync complete",
		zap.String("code", proj.Code),
		zap.String("folder_url", result.FolderURL))
	return result
}

func (p *Provisioner) provision(ctx context.Context, client *Client, proj *domain.Project, files []vault.File) (SyncResult, error) {
	root, err := client.GetOrCreateFolder(ctx, engagementRoot, "")
	if err != nil {
		return SyncResult{}, err
	}

	groupFolder, err := client.GetOrCreateFolder(ctx, groupFolderNames[proj.Group], root.ID)
	if err != nil {
		return SyncResult{}, err
	}

	// Client-level folder: "<CODE> <Client>". Reused if it already exists
	// (e.g. a re-triggered sync), never duplicated.
	projectFolderName := fmt.Sprintf("%s %s", proj.Code, proj.Client)
	projectFolder, err := client.GetOrCreateFolder(ctx, projectFolderName, groupFolder.ID)
	if err != nil {
		return SyncResult{}, err
	}

	subfolderIDs := make(map[string]string, len(vault.Subfolders))
	for _, name := range vault.Subfolders {
		sub, err := client.GetOrCreateFolder(ctx, name, projectFolder.ID)
		if err != nil {
			return SyncResult{}, err
		}
		subfolderIDs[name] = sub.ID
	}

	for _, f := range files {
		parentID := projectFolder.ID
		if f.Subfolder != "" {
			parentID = subfolderIDs[f.Subfolder]
		}
		if _, err := client.UploadFile(ctx, f.Path, parentID); err != nil {
			return SyncResult{}, err
		}
	}

	return SyncResult{
		Status:    StatusSynced,
		FolderID:  projectFolder.ID,
		FolderURL: projectFolder.URL,
	}, nil
}
