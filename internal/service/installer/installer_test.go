package installer

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func feed(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestWizard_HTTPAndTelegram(t *testing.T) {
	dir := t.TempDir()
	m := initialModel(dir)

	m = feed(t, m,
		down, down, enter, // HTTP API and Telegram
		typed("sk-test"), enter,
		enter, // no Hugging Face token
		typed("123:abc"), enter,
		typed("42"), enter,
		nextMsg{},
	)

	assert.Equal(t, len(m.steps), m.currentStep)

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "INSPIRE_ENABLE_HTTP=true\n"+
		"INSPIRE_ENABLE_TELEGRAM=true\n"+
		"INSPIRE_TELEGRAM_TOKEN=123:abc\n"+
		"INSPIRE_TELEGRAM_OWNER_ID=42\n"+
		"OPENAI_API_KEY=sk-test\n", string(data))

	info, err := os.Stat(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWizard_HTTPOnlySkipsTelegram(t *testing.T) {
	dir := t.TempDir()
	m := initialModel(dir)

	m = feed(t, m,
		enter, // HTTP API
		enter, // no OpenAI key
		typed("hf_token"), enter, // telegram steps do not apply
		nextMsg{},
	)

	assert.Equal(t, len(m.steps), m.currentStep)

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "INSPIRE_ENABLE_HTTP=true\n"+
		"INSPIRE_ENABLE_TELEGRAM=false\n"+
		"HUGGINGFACE_API_KEY=hf_token\n", string(data))
}

func TestInputStep_Validation(t *testing.T) {
	state := NewInstallState(t.TempDir())
	state.EnvVars[envEnableTelegram] = "true"

	var step Step = NewTelegramTokenStep()
	step, _ = step.Update(enter, state, 80, 24)
	require.NotNil(t, step, "token is required")
	assert.Contains(t, step.View(state), "Telegram Bot Token is required")

	step = NewTelegramOwnerStep()
	step, _ = step.Update(typed("alice"), state, 80, 24)
	step, _ = step.Update(enter, state, 80, 24)
	require.NotNil(t, step)
	assert.Contains(t, step.View(state), "not a numeric Telegram id")
	assert.Empty(t, state.EnvVars[envTelegramOwner])
}

func TestSaveEnv_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KEEP=1\n"), 0600))

	state := NewInstallState(dir)
	state.EnvVars[envEnableHTTP] = "true"

	err := SaveEnv(state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "KEEP=1\n", string(data))
}

func TestRenderEnv_DropsTelegramWhenDisabled(t *testing.T) {
	state := NewInstallState("")
	state.EnvVars[envEnableHTTP] = "true"
	state.EnvVars[envEnableTelegram] = "false"
	state.EnvVars[envTelegramToken] = "stale"

	out, err := RenderEnv(state)
	require.NoError(t, err)
	assert.Equal(t, "INSPIRE_ENABLE_HTTP=true\nINSPIRE_ENABLE_TELEGRAM=false\n", out)
}

func TestModel_SkipsStepsThatDoNotApply(t *testing.T) {
	m := initialModel(t.TempDir())
	m = feed(t, m, enter, enter, enter) // HTTP API, no keys

	_, isSave := m.steps[m.currentStep].(*SaveEnvStep)
	assert.True(t, isSave)
	assert.Contains(t, m.View(), "Step 6 of 6")
}

func TestModel_CtrlC(t *testing.T) {
	m := feed(t, initialModel(t.TempDir()), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
	assert.Equal(t, "Installation cancelled.\n", m.View())
}
