package docs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paper-planes/pm-backend/internal/projects/domain"
)

type fakeClient struct {
	// failContains triggers an error for prompts containing the substring.
	failContains string
	reply        func(system, prompt string) string
}

func (c *fakeClient) Complete(_ context.Context, system, prompt string, _ int) (string, error) {
	if c.failContains != "" && strings.Contains(prompt, c.failContains) {
		return "", errors.New("api unavailable")
	}
	if c.reply != nil {
		return c.reply(system, prompt), nil
	}
	return "# документ\n", nil
}

func testProject() *domain.Project {
	return &domain.Project{
		Code:   "2168.MED.mediq",
		Name:   "Внедрение CRM",
		Client: "MedIQ",
		Group:  domain.GroupRight,
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("both documents generated", func(t *testing.T) {
		client := &fakeClient{reply: func(system, _ string) string {
			if strings.Contains(system, "PERT") {
				return "# 2168.MED.mediq - PERT\n"
			}
			return "# Админшкала\n"
		}}
		g := NewGenerator(client, nil)

		d, err := g.Generate(ctx, testProject())
		require.NoError(t, err)
		assert.Equal(t, "# Админшкала\n", d.Adminscale)
		assert.Equal(t, "# 2168.MED.mediq - PERT\n", d.PERT)
	})

	t.Run("failed document degrades to placeholder", func(t *testing.T) {
		client := &fakeClient{failContains: "PERT-диаграмму"}
		g := NewGenerator(client, nil)

		d, err := g.Generate(ctx, testProject())
		require.Error(t, err)
		assert.Equal(t, "# документ\n", d.Adminscale)
		assert.Contains(t, d.PERT, "не был сгенерирован автоматически")
		assert.Contains(t, d.PERT, "2168.MED.mediq")
	})

	t.Run("prompt carries project fields", func(t *testing.T) {
		var prompts []string
		client := &fakeClient{reply: func(_, prompt string) string {
			prompts = append(prompts, prompt)
			return "ok"
		}}
		g := NewGenerator(client, nil)

		_, err := g.Generate(ctx, testProject())
		require.NoError(t, err)
		require.Len(t, prompts, 2)
		assert.Contains(t, prompts[0], "2168.MED.mediq")
		assert.Contains(t, prompts[0], "Правая")
		assert.Contains(t, prompts[1], "Внедрение CRM")
	})
}
