package codegen

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// codePattern is the required shape of a project code: 4-digit sequence
// number, 3-letter client ticker, lowercase client slug.
var codePattern = regexp.MustCompile(`^\d{4}\.[A-Z]{3}\.[a-z0-9-]+$`)

// extraAttempts is how many times an invalid completion is retried with a
// stricter restated instruction before giving up.
const extraAttempts = 2

const defaultLastCode = "2167"

// FormatError reports that the generation service never produced a code
// matching the required pattern. It is fatal to the current create action;
// the user must retry generation.
type FormatError struct {
	Attempts   int
	LastOutput string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("generated code did not match required format after %d attempts (last output %q)", e.Attempts, e.LastOutput)
}

// Generator produces project codes via the Anthropic API.
// It keeps no state between calls and does not guarantee global uniqueness;
// the project store rejects duplicates via its UNIQUE constraint.
type Generator struct {
	client ClaudeClient
	log    *zap.Logger
}

func NewGenerator(client ClaudeClient, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, log: log}
}

// ValidCode reports whether code matches the required NNNN.AAA.slug shape.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

const generatorSystem = "Ты — система генерации project codes для консалтингового агентства. Отвечай ТОЛЬКО самим кодом, без кавычек, пояснений и лишнего текста."

// Generate returns a new project code for the given client. usedCodes is an
// optional hint of codes already assigned; the highest sequence number found
// in it seeds the increment.
func (g *Generator) Generate(ctx context.Context, name, clientName string, usedCodes []string) (string, error) {
	lastCode := lastSequence(usedCodes)

	prompt := fmt.Sprintf(`Последний используемый project code: %s. Название проекта: %s. Название клиента: %s.

Сгенерируй новый project code в формате XXXX.AAA.client-slug, где:
- XXXX — порядковый номер (инкремент от %s)
- AAA — трехбуквенная аббревиатура названия клиента (латиница, UPPERCASE)
- client-slug — slug названия клиента (латиница, lowercase, слова через дефис)

Верни ТОЛЬКО строку кода, например: 2168.MED.mediq`, lastCode, name, clientName, lastCode)

	var lastOutput string
	for attempt := 0; attempt <= extraAttempts; attempt++ {
		out, err := g.client.Complete(ctx, generatorSystem, prompt, 100)
		if err != nil {
			return "", fmt.Errorf("generate project code: %w", err)
		}

		code := cleanCode(out)
		if ValidCode(code) {
			g.log.Info("project code generated",
				zap.String("code", code),
				zap.Int("attempt", attempt+1))
			return code, nil
		}

		lastOutput = out
		g.log.Warn("generated code failed validation",
			zap.String("output", out),
			zap.Int("attempt", attempt+1))

		// Restate the instruction more strictly and try again.
		prompt = fmt.Sprintf(`Твой предыдущий ответ %q НЕ соответствует формату. Требуется СТРОГО:
- ровно 4 цифры, точка, ровно 3 ЗАГЛАВНЫЕ латинские буквы, точка, slug из строчных латинских букв, цифр и дефисов
- регулярное выражение: ^\d{4}\.[A-Z]{3}\.[a-z0-9-]+$
- никакого другого текста в ответе

Последний используемый project code: %s. Название клиента: %s. Верни ТОЛЬКО код.`, out, lastCode, clientName)
	}

	return "", &FormatError{Attempts: extraAttempts + 1, LastOutput: lastOutput}
}

// cleanCode strips whitespace, quotes and markdown fences that models tend
// to wrap short answers in. The reply is cut at the first newline before
// trimming, so a fenced code followed by commentary still comes out clean.
func cleanCode(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`\"'")
	return strings.TrimSpace(s)
}

// lastSequence extracts the highest 4-digit sequence prefix from the used
// codes, falling back to the historical default.
func lastSequence(usedCodes []string) string {
	best := 0
	for _, c := range usedCodes {
		if len(c) < 4 {
			continue
		}
		n, err := strconv.Atoi(c[:4])
		if err != nil {
			continue
		}
		if n > best {
			best = n
		}
	}
	if best == 0 {
		return defaultLastCode
	}
	return fmt.Sprintf("%04d", best)
}
