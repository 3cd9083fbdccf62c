package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/assistant-console/internal/history"
	"github.com/user/assistant-console/internal/orchestrator"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	bodyHeight := m.height - 6
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if m.view == ViewChat {
		b.WriteString(m.renderChat(bodyHeight))
	} else {
		b.WriteString(m.renderVoiceTools(bodyHeight))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	badge := offlineBadgeStyle.Render("OFFLINE")
	docs := ""
	if m.poller != nil {
		if m.poller.Online() {
			badge = onlineBadgeStyle.Render("ONLINE")
		}
		if status, ok := m.poller.Snapshot(); ok {
			docs = dimStyle.Render(fmt.Sprintf("  docs:%d", status.VectorStore.DocumentCount))
		}
	}

	mode := strings.ToUpper(m.mode.String())
	if m.view == ViewVoiceTools {
		mode = "STT/TTS"
	}

	flags := ""
	if m.autoSpeak {
		flags += "  [speak]"
	}
	if m.readScreen {
		flags += "  [screen]"
	}

	return titleStyle.Render("ASSISTANT CONSOLE") +
		dimStyle.Render("  "+strings.ToUpper(m.view.String())) +
		dimStyle.Render("  mode:") + titleStyle.Render(mode) +
		dimStyle.Render(flags) +
		"  " + badge + docs
}

func (m Model) renderChat(height int) string {
	var lines []string
	wrap := lipgloss.NewStyle().Width(m.width - 2)

	for _, turn := range m.store.Turns() {
		var prefix, body string
		switch turn.Speaker {
		case history.SpeakerUser:
			prefix = userTurnStyle.Render("you> ")
			body = userTurnStyle.Render(turn.Content)
		default:
			prefix = systemTurnStyle.Render("sys> ")
			body = systemTurnStyle.Render(turn.Content)
		}
		if turn.Voice {
			prefix += recordingDotStyle.Render("~ ")
		}
		lines = append(lines, strings.Split(wrap.Render(prefix+body), "\n")...)

		for i, citation := range turn.Citations {
			lines = append(lines, citationStyle.Render(fmt.Sprintf("     [%d] %s", i+1, citation)))
		}
	}

	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderVoiceTools(height int) string {
	lines := []string{
		titleStyle.Render("SPEECH -> TEXT"),
		dimStyle.Render("  ctrl+r to record, release with ctrl+r to transcribe"),
		"",
	}
	if m.transcription != "" {
		lines = append(lines, systemTurnStyle.Render("  "+m.transcription))
	} else {
		lines = append(lines, dimStyle.Render("  no transcription yet"))
	}
	lines = append(lines,
		"",
		titleStyle.Render("TEXT -> SPEECH"),
		dimStyle.Render("  type text and press enter to synthesize and play"),
	)

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.errorMessage != "" {
		return errorStyle.Render("ERROR: " + m.errorMessage)
	}
	if m.recording {
		return recordingDotStyle.Render("* ") + busyStyle.Render(m.statusText)
	}
	if m.busy {
		return busyStyle.Render(m.statusText)
	}
	return dimStyle.Render(m.statusText)
}

func (m Model) renderInput() string {
	placeholder := "ask about your documents..."
	if m.view == ViewChat && m.mode == orchestrator.ModeDirectChat {
		placeholder = "chat directly with the model..."
	}
	if m.view == ViewVoiceTools {
		placeholder = "text to synthesize..."
	}

	if m.input == "" {
		return promptStyle.Render("> ") + dimStyle.Render(placeholder)
	}
	return promptStyle.Render("> ") + m.input
}

func (m Model) renderFooter() string {
	keys := [][2]string{
		{"enter", "send"},
		{"ctrl+r", "record"},
		{"tab", "mode"},
		{"ctrl+t", "view"},
		{"ctrl+a", "auto-speak"},
		{"ctrl+e", "replay"},
		{"ctrl+p", "pause"},
		{"ctrl+x", "stop audio"},
		{"ctrl+c", "quit"},
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k[0])+footerDescStyle.Render(" "+k[1]))
	}
	return strings.Join(parts, footerDescStyle.Render("  "))
}
