package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paper-planes/pm-backend/internal/docs"
	"github.com/paper-planes/pm-backend/internal/projects/domain"
)

// Subfolders is the fixed skeleton every project gets, in order. The same
// five names are used locally and in Drive.
var Subfolders = []string{
	"01-inbox",
	"02-research",
	"03-meetings",
	"04-project-docs",
	"05-deliverables",
}

// FilesystemError means the local vault could not be written. Local structure
// is mandatory, so this is fatal to the creation flow.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("vault filesystem error at %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// File is one project file to be mirrored to Drive. Subfolder is empty for
// files at the project root.
type File struct {
	Path      string
	Subfolder string
}

// Provisioner creates project skeletons under the configured vault root.
type Provisioner struct {
	root string
	log  *zap.Logger
}

func New(root string, log *zap.Logger) *Provisioner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provisioner{root: root, log: log}
}

// Dir returns the project directory for a code without creating anything.
func (p *Provisioner) Dir(code string) string {
	return filepath.Join(p.root, code)
}

// EnsureSkeleton creates <root>/<code> with the five fixed subfolders.
// Existing directories are left untouched and missing ones are created, so
// calling it twice is safe.
func (p *Provisioner) EnsureSkeleton(code string) (string, error) {
	dir := p.Dir(code)
	for _, sub := range append([]string{""}, Subfolders...) {
		target := filepath.Join(dir, sub)
		if err := os.MkdirAll(target, 0o755); err != nil {
			return "", &FilesystemError{Path: target, Err: err}
		}
	}
	p.log.Info("local skeleton ensured", zap.String("code", code), zap.String("dir", dir))
	return dir, nil
}

// WriteProjectFiles saves the README and generated documents into the
// skeleton and returns the files eligible for Drive upload.
func (p *Provisioner) WriteProjectFiles(dir string, proj *domain.Project, d docs.Documents) ([]File, error) {
	ticker := Ticker(proj.Code)

	files := []struct {
		name      string
		subfolder string
		content   string
	}{
		{"README.md", "", readme(proj, ticker)},
		{fmt.Sprintf("%s.%s.adminscale.md", ticker, slugify(proj.Client)), "", d.Adminscale},
		{fmt.Sprintf("%s.PERT_FOR_XMIND.md", ticker), "04-project-docs", d.PERT},
	}

	out := make([]File, 0, len(files))
	for _, f := range files {
		target := filepath.Join(dir, f.subfolder, f.name)
		if err := os.WriteFile(target, []byte(f.content), 0o644); err != nil {
			return nil, &FilesystemError{Path: target, Err: err}
		}
		out = append(out, File{Path: target, Subfolder: f.subfolder})
	}
	return out, nil
}

// Ticker extracts the 3-letter tag from a project code ("MED" from
// "2168.MED.mediq").
func Ticker(code string) string {
	parts := strings.Split(code, ".")
	if len(parts) >= 2 {
		return parts[1]
	}
	return "XXX"
}

func slugify(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}

func readme(p *domain.Project, ticker string) string {
	group := "Левая"
	if p.Group == domain.GroupRight {
		group = "Правая"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", p.Code, p.Name)
	fmt.Fprintf(&b, "**Клиент:** %s\n", p.Client)
	fmt.Fprintf(&b, "**Группа:** %s\n", group)
	fmt.Fprintf(&b, "**Создан:** %s\n\n", time.Now().Format("2006-01-02"))
	b.WriteString("## Структура проекта\n\n")
	b.WriteString("- `01-inbox/` — Входящие документы и материалы\n")
	b.WriteString("- `02-research/` — Исследования и анализ\n")
	b.WriteString("- `03-meetings/` — Заметки со встреч\n")
	b.WriteString("- `04-project-docs/` — Проектные документы\n")
	b.WriteString("- `05-deliverables/` — Результаты работы\n\n")
	fmt.Fprintf(&b, "## Ключевые документы\n\n- `%s.%s.adminscale.md` — Админшкала проекта\n- `04-project-docs/%s.PERT_FOR_XMIND.md` — PERT-диаграмма (импорт в xMind)\n",
		ticker, slugify(p.Client), ticker)
	return b.String()
}
