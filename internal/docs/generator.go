package docs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/paper-planes/pm-backend/internal/codegen"
	"github.com/paper-planes/pm-backend/internal/projects/domain"
)

// Documents holds the generated markdown for one project.
type Documents struct {
	Adminscale string
	PERT       string
}

// Generator produces the adminscale and PERT documents for a newly created
// project via the Anthropic API.
type Generator struct {
	client codegen.ClaudeClient
	log    *zap.Logger
}

func NewGenerator(client codegen.ClaudeClient, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, log: log}
}

const adminscaleSystem = "Ты — эксперт по управлению консалтинговыми проектами. Генерируешь детальные админшкалы. Отвечай ТОЛЬКО markdown-текстом документа."

const pertSystem = "Ты — эксперт по планированию консалтинговых проектов. Создаёшь детальные PERT-диаграммы. Отвечай ТОЛЬКО markdown-иерархией."

// Adminscale generates the administrative scale markdown for the project.
func (g *Generator) Adminscale(ctx context.Context, p *domain.Project) (string, error) {
	prompt := fmt.Sprintf(`Сгенерируй админшкалу (administrative scale) для консалтингового проекта.

**ИНФОРМАЦИЯ О ПРОЕКТЕ:**
- Project Code: %s
- Название: %s
- Клиент: %s
- Группа: %s
- Даты: %s - %s

Структура документа: ВХОД (Entry), ЦЕЛЬ (Goal), ЗАМЫСЕЛ (Intent) с 3-5 sub-goals,
ПЛАН (Plan) по этапам Setup/Discover/Define/Develop/Deliver, ЗАДАЧИ (Tasks),
ЦКП (Deliverables), СТАТИСТИКИ (Statistics).

ВАЖНО:
1. Сгенерируй ПОЛНОСТЬЮ заполненный markdown без placeholder'ов в квадратных скобках
2. Сформулируй measurable goal с датой и порогом
3. Детально опиши каждый этап плана

Верни ТОЛЬКО markdown-текст, без дополнительных комментариев.`,
		p.Code, p.Name, p.Client, groupLabel(p.Group), p.StartDate, p.EndDate)

	out, err := g.client.Complete(ctx, adminscaleSystem, prompt, 8000)
	if err != nil {
		return "", fmt.Errorf("generate adminscale: %w", err)
	}
	return out, nil
}

// PERT generates the task-structure markdown for xMind import.
func (g *Generator) PERT(ctx context.Context, p *domain.Project) (string, error) {
	prompt := fmt.Sprintf(`Создай PERT-диаграмму (структуру задач) для проекта в формате Markdown с иерархией заголовков.

**ПРОЕКТ:** %s
**КЛИЕНТ:** %s
**PROJECT CODE:** %s

Создай детальную структуру задач из 5 этапов: Setup, Discover, Define, Develop, Deliver.
Формат: используй ## для этапов, ### для задач, #### для подзадач.
Первая строка: "# %s - PERT".

Верни ТОЛЬКО markdown иерархию без пояснений.`,
		p.Name, p.Client, p.Code, p.Code)

	out, err := g.client.Complete(ctx, pertSystem, prompt, 6000)
	if err != nil {
		return "", fmt.Errorf("generate PERT: %w", err)
	}
	return out, nil
}

// Generate produces both documents. Document generation is best-effort: when
// a call fails, a minimal placeholder is returned instead together with the
// error, so the caller can surface a warning without losing the files.
func (g *Generator) Generate(ctx context.Context, p *domain.Project) (Documents, error) {
	var (
		docs     Documents
		firstErr error
	)

	adminscale, err := g.Adminscale(ctx, p)
	if err != nil {
		g.log.Warn("adminscale generation failed, writing placeholder", zap.String("code", p.Code), zap.Error(err))
		adminscale = placeholder("Adminscale", p)
		firstErr = err
	}
	docs.Adminscale = adminscale

	pert, err := g.PERT(ctx, p)
	if err != nil {
		g.log.Warn("PERT generation failed, writing placeholder", zap.String("code", p.Code), zap.Error(err))
		pert = placeholder("PERT", p)
		if firstErr == nil {
			firstErr = err
		}
	}
	docs.PERT = pert

	return docs, firstErr
}

func placeholder(kind string, p *domain.Project) string {
	return fmt.Sprintf("# %s: %s — %s\n\n_Документ не был сгенерирован автоматически (%s). Заполните вручную._\n",
		p.Code, p.Client, kind, time.Now().Format("2006-01-02"))
}

func groupLabel(g domain.Group) string {
	if g == domain.GroupRight {
		return "Правая"
	}
	return "Левая"
}
