package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/paper-planes/pm-backend/internal/projects/domain"
	"github.com/paper-planes/pm-backend/internal/vault"
)

// fakeDrive is an in-memory Drive v3 backend covering the handful of calls
// the provisioner makes.
type fakeDrive struct {
	mu      sync.Mutex
	folders map[string]fakeFolder // id -> folder
	uploads []string              // uploaded file names
	nextID  int
	failAll bool
}

type fakeFolder struct {
	name   string
	parent string
}

var (
	queryName   = regexp.MustCompile(`name='([^']*)'`)
	queryParent = regexp.MustCompile(`'([^']*)' in parents`)
)

func newFakeDrive() *fakeDrive {
	return &fakeDrive{folders: map[string]fakeFolder{}}
}

func (f *fakeDrive) addFolder(name, parent string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("folder-%d", f.nextID)
	f.folders[id] = fakeFolder{name: name, parent: parent}
	return id
}

func (f *fakeDrive) link(id string) string {
	return "https://drive.google.com/drive/folders/" + id
}

func (f *fakeDrive) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /files", func(w http.ResponseWriter, r *http.Request) {
		if f.failAll {
			http.Error(w, `{"error":{"message":"backend error"}}`, http.StatusInternalServerError)
			return
		}
		q := r.URL.Query().Get("q")
		var name, parent string
		if m := queryName.FindStringSubmatch(q); m != nil {
			name = m[1]
		}
		if m := queryParent.FindStringSubmatch(q); m != nil {
			parent = m[1]
		}

		f.mu.Lock()
		var files []map[string]string
		for id, fl := range f.folders {
			if fl.name == name && (parent == "" || fl.parent == parent) {
				files = append(files, map[string]string{"id": id, "name": fl.name})
			}
		}
		f.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]any{"files": files})
	})

	mux.HandleFunc("GET /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"webViewLink": f.link(r.PathValue("id"))})
	})

	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		var meta struct {
			Name    string   `json:"name"`
			Parents []string `json:"parents"`
		}
		json.NewDecoder(r.Body).Decode(&meta)
		parent := ""
		if len(meta.Parents) > 0 {
			parent = meta.Parents[0]
		}
		id := f.addFolder(meta.Name, parent)
		json.NewEncoder(w).Encode(map[string]string{"id": id, "webViewLink": f.link(id)})
	})

	mux.HandleFunc("POST /upload/drive/v3/files", func(w http.ResponseWriter, r *http.Request) {
		if f.failAll {
			http.Error(w, `{"error":{"message":"backend error"}}`, http.StatusInternalServerError)
			return
		}
		f.mu.Lock()
		f.nextID++
		id := fmt.Sprintf("file-%d", f.nextID)
		f.uploads = append(f.uploads, id)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"id": id})
	})

	return mux
}

func (f *fakeDrive) countByName(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, fl := range f.folders {
		if fl.name == name {
			n++
		}
	}
	return n
}

func newTestClient(t *testing.T, fake *fakeDrive) *Client {
	t.Helper()
	ts := httptest.NewServer(fake.handler())
	t.Cleanup(ts.Close)

	svc, err := drivev3.NewService(context.Background(),
		option.WithHTTPClient(ts.Client()),
		option.WithEndpoint(ts.URL+"/"))
	require.NoError(t, err)
	return NewClient(svc, "")
}

func writeLocalFiles(t *testing.T) []vault.File {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "04-project-docs"), 0o755))

	readme := filepath.Join(dir, "README.md")
	pert := filepath.Join(dir, "04-project-docs", "MED.PERT_FOR_XMIND.md")
	require.NoError(t, os.WriteFile(readme, []byte("# readme"), 0o644))
	require.NoError(t, os.WriteFile(pert, []byte("# pert"), 0o644))

	return []vault.File{
		{Path: readme},
		{Path: pert, Subfolder: "04-project-docs"},
	}
}

func testProject() *domain.Project {
	return &domain.Project{
		Code:   "2168.MED.mediq",
		Name:   "Внедрение CRM",
		Client: "MedIQ",
		Group:  domain.GroupLeft,
	}
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions full taxonomy on empty drive", func(t *testing.T) {
		fake := newFakeDrive()
		p := NewProvisionerWithClient(newTestClient(t, fake), nil)

		res := p.Sync(ctx, testProject(), writeLocalFiles(t))

		assert.Equal(t, StatusSynced, res.Status)
		assert.NotEmpty(t, res.FolderID)
		assert.Contains(t, res.FolderURL, res.FolderID)
		assert.Empty(t, res.Warning)

		assert.Equal(t, 1, fake.countByName("04-Engagement"))
		assert.Equal(t, 1, fake.countByName("Левая группа"))
		assert.Equal(t, 0, fake.countByName("Правая группа"))
		assert.Equal(t, 1, fake.countByName("2168.MED.mediq MedIQ"))
		for _, sub := range vault.Subfolders {
			assert.Equal(t, 1, fake.countByName(sub), sub)
		}
		assert.Len(t, fake.uploads, 2)
	})

	t.Run("reuses existing taxonomy folders", func(t *testing.T) {
		fake := newFakeDrive()
		rootID := fake.addFolder("04-Engagement", "")
		fake.addFolder("Левая группа", rootID)

		p := NewProvisionerWithClient(newTestClient(t, fake), nil)
		res := p.Sync(ctx, testProject(), nil)

		assert.Equal(t, StatusSynced, res.Status)
		assert.Equal(t, 1, fake.countByName("04-Engagement"))
		assert.Equal(t, 1, fake.countByName("Левая группа"))
	})

	t.Run("second sync creates no duplicates", func(t *testing.T) {
		fake := newFakeDrive()
		p := NewProvisionerWithClient(newTestClient(t, fake), nil)

		first := p.Sync(ctx, testProject(), nil)
		second := p.Sync(ctx, testProject(), nil)

		assert.Equal(t, StatusSynced, second.Status)
		assert.Equal(t, first.FolderID, second.FolderID)
		assert.Equal(t, 1, fake.countByName("2168.MED.mediq MedIQ"))
	})

	t.Run("right group routes to its folder", func(t *testing.T) {
		fake := newFakeDrive()
		p := NewProvisionerWithClient(newTestClient(t, fake), nil)

		proj := testProject()
		proj.Group = domain.GroupRight
		res := p.Sync(ctx, proj, nil)

		assert.Equal(t, StatusSynced, res.Status)
		assert.Equal(t, 1, fake.countByName("Правая группа"))
		assert.Equal(t, 0, fake.countByName("Левая группа"))
	})

	t.Run("backend failure degrades to a warning", func(t *testing.T) {
		fake := newFakeDrive()
		fake.failAll = true
		p := NewProvisionerWithClient(newTestClient(t, fake), nil)

		res := p.Sync(ctx, testProject(), nil)

		assert.Equal(t, StatusFailed, res.Status)
		assert.NotEmpty(t, res.Warning)
		assert.Empty(t, res.FolderID)
	})

	t.Run("nil provisioner skips", func(t *testing.T) {
		var p *Provisioner
		res := p.Sync(ctx, testProject(), nil)

		assert.Equal(t, StatusSkipped, res.Status)
		assert.NotEmpty(t, res.Warning)
	})
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "text/markdown", mimeType("README.md"))
	assert.Equal(t, "text/plain", mimeType("notes.TXT"))
	assert.Equal(t, "application/pdf", mimeType("deck.pdf"))
	assert.Equal(t, "application/octet-stream", mimeType("archive.zip"))
}

func TestEscapeQuery(t *testing.T) {
	assert.Equal(t, `O\'Brien Consulting`, escapeQuery("O'Brien Consulting"))
}
