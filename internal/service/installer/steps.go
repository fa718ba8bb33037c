package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type channel struct {
	title    string
	http     bool
	telegram bool
}

// ChannelStep selects the transports started by `inspire start`.
type ChannelStep struct {
	choices []channel
	cursor  int
}

func NewChannelStep() Step {
	return &ChannelStep{
		choices: []channel{
			{title: "HTTP API", http: true},
			{title: "Telegram", telegram: true},
			{title: "HTTP API and Telegram", http: true, telegram: true},
		},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			c := s.choices[s.cursor]
			state.EnvVars[envEnableHTTP] = strconv.FormatBool(c.http)
			state.EnvVars[envEnableTelegram] = strconv.FormatBool(c.telegram)
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select how users reach Inspire:\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render("> "+c.title) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+c.title) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

// InputStep asks for one value. Secret values are masked, optional ones
// may be left empty, and skip hides the step entirely.
type InputStep struct {
	input    textinput.Model
	envKey   string
	title    string
	optional bool
	validate func(string) error
	skip     func(*InstallState) bool
	err      error
}

func newInputStep(envKey, title, placeholder string, secret, optional bool) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &InputStep{
		input:    ti,
		envKey:   envKey,
		title:    title,
		optional: optional,
	}
}

func NewOpenAIKeyStep() Step {
	return newInputStep(envOpenAIKey, "OpenAI API Key", "sk-...", true, true)
}

func NewHuggingFaceKeyStep() Step {
	return newInputStep(envHuggingFaceKey, "Hugging Face API Token", "hf_...", true, true)
}

func NewTelegramTokenStep() Step {
	s := newInputStep(envTelegramToken, "Telegram Bot Token", "123456789:ABCDEF...", true, false)
	s.skip = func(state *InstallState) bool { return !state.telegramSelected() }
	return s
}

func NewTelegramOwnerStep() Step {
	s := newInputStep(envTelegramOwner, "Telegram User ID allowed to chat", "0 lets everyone in", false, true)
	s.skip = func(state *InstallState) bool { return !state.telegramSelected() }
	s.validate = func(v string) error {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return fmt.Errorf("%q is not a numeric Telegram id", v)
		}
		return nil
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

// Skip reports whether the step does not apply to the answers so far.
func (s *InputStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		switch {
		case value == "" && s.optional:
			return nil, nil
		case value == "":
			s.err = fmt.Errorf("%s is required", s.title)
			return s, nil
		}
		if s.validate != nil {
			if err := s.validate(value); err != nil {
				s.err = err
				return s, nil
			}
		}
		state.EnvVars[s.envKey] = value
		return nil, nil
	}
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	hint := ""
	if s.optional {
		hint = " (optional - press Enter to skip)"
	}
	view := fmt.Sprintf("Enter your %s%s:\n\n%s\n\n", s.title, hint, s.input.View())
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}

// SaveEnvStep writes the collected configuration to <runtime>/.env. An
// existing file is never overwritten.
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := SaveEnv(state); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// SaveEnv renders state and writes it to the runtime directory.
func SaveEnv(state *InstallState) error {
	if err := os.MkdirAll(state.RuntimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(state.RuntimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := RenderEnv(state)
	if err != nil {
		return err
	}
	return os.WriteFile(envPath, []byte(content), 0600)
}
