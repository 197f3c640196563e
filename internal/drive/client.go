package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Folder is a Drive folder reference with its shareable link.
type Folder struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Client wraps the Drive v3 service with the folder and upload operations the
// provisioner needs. When sharedDriveID is set, all calls target that shared
// drive instead of the personal drive.
type Client struct {
	svc           *drivev3.Service
	sharedDriveID string
}

func NewClient(svc *drivev3.Service, sharedDriveID string) *Client {
	return &Client{svc: svc, sharedDriveID: sharedDriveID}
}

// FindFolder returns the id of a folder by name under parentID, or "" when
// no such folder exists.
func (c *Client) FindFolder(ctx context.Context, name, parentID string) (string, error) {
	if parentID == "" && c.sharedDriveID != "" {
		parentID = c.sharedDriveID
	}

	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQuery(name), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	call := c.svc.Files.List().
		Q(query).
		Spaces("drive").
		Fields("files(id, name)").
		Context(ctx)
	if c.sharedDriveID != "" {
		call = call.
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Corpora("drive").
			DriveId(c.sharedDriveID)
	}

	res, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("find folder %q: %w", name, err)
	}
	if len(res.Files) == 0 {
		return "", nil
	}
	return res.Files[0].Id, nil
}

// CreateFolder creates a folder under parentID and returns its id and link.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*Folder, error) {
	if parentID == "" && c.sharedDriveID != "" {
		parentID = c.sharedDriveID
	}

	meta := &drivev3.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	call := c.svc.Files.Create(meta).
		Fields("id, webViewLink").
		Context(ctx)
	if c.sharedDriveID != "" {
		call = call.SupportsAllDrives(true)
	}

	f, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("create folder %q: %w", name, err)
	}
	return &Folder{ID: f.Id, URL: f.WebViewLink}, nil
}

// GetOrCreateFolder reuses an existing folder with the given name when one
// exists, otherwise creates it. Top-level taxonomy folders are shared across
// projects and must never be duplicated.
func (c *Client) GetOrCreateFolder(ctx context.Context, name, parentID string) (*Folder, error) {
	id, err := c.FindFolder(ctx, name, parentID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return c.CreateFolder(ctx, name, parentID)
	}

	call := c.svc.Files.Get(id).Fields("webViewLink").Context(ctx)
	if c.sharedDriveID != "" {
		call = call.SupportsAllDrives(true)
	}
	f, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("get folder %q: %w", name, err)
	}
	return &Folder{ID: id, URL: f.WebViewLink}, nil
}

// UploadFile uploads a local file into the folder with the given id.
func (c *Client) UploadFile(ctx context.Context, localPath, parentID string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	meta := &drivev3.File{
		Name:    filepath.Base(localPath),
		Parents: []string{parentID},
	}

	call := c.svc.Files.Create(meta).
		Media(f, googleapi.ContentType(mimeType(localPath))).
		Fields("id").
		Context(ctx)
	if c.sharedDriveID != "" {
		call = call.SupportsAllDrives(true)
	}

	created, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filepath.Base(localPath), err)
	}
	return created.Id, nil
}

func mimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return "text/markdown"
	case ".txt":
		return "text/plain"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// escapeQuery escapes single quotes in Drive query string literals.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
