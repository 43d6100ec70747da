package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordmatch/internal/settings"
)

type settingsField int

const (
	fieldWords settingsField = iota
	fieldImport
	fieldPhotos
	fieldCount
)

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Bold(true)

type settingsScreen struct {
	editor     *settings.Editor
	words      textarea.Model
	importPath textinput.Model
	photoDir   textinput.Model
	focus      settingsField
}

func newSettingsScreen(editor *settings.Editor, photoDir string) *settingsScreen {
	s := &settingsScreen{editor: editor}
	s.words = textarea.New()
	s.words.Placeholder = "one word per line"
	s.words.ShowLineNumbers = true
	s.words.CharLimit = 0
	s.words.MaxHeight = 0
	s.words.SetValue(editor.Text())
	s.importPath = newPathInput("Import file: ", "words.xlsx, words.csv or words.txt")
	s.photoDir = newPathInput("Photo folder: ", "a folder of pictures named after the words")
	s.photoDir.SetValue(photoDir)
	s.setFocus(fieldWords)
	return s
}

func newPathInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (s *settingsScreen) setFocus(f settingsField) tea.Cmd {
	s.focus = (f%fieldCount + fieldCount) % fieldCount
	s.words.Blur()
	s.importPath.Blur()
	s.photoDir.Blur()
	switch s.focus {
	case fieldImport:
		return s.importPath.Focus()
	case fieldPhotos:
		return s.photoDir.Focus()
	}
	return s.words.Focus()
}

func (s *settingsScreen) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.words.SetWidth(max(20, min(60, width-2*indent)))
	s.words.SetHeight(max(5, height-12))
	s.importPath.Width = max(10, width-2*indent-lipgloss.Width(s.importPath.Prompt)-1)
	s.photoDir.Width = max(10, width-2*indent-lipgloss.Width(s.photoDir.Prompt)-1)
}

func (m *Model) openSettings() tea.Cmd {
	m.settings = newSettingsScreen(settings.NewEditor(m.deps.Bank, m.deps.KV), m.config.PhotoDir)
	m.settings.resize(m.width, m.height)
	m.screen = screenSettings
	m.notice = ""
	return textarea.Blink
}

func (m *Model) closeSettings() {
	m.settings = nil
	m.screen = screenHome
}

func (m *Model) updateSettings(msg tea.KeyMsg) tea.Cmd {
	s := m.settings
	if s == nil {
		m.closeSettings()
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeSettings()
		return nil
	case key.Matches(msg, m.keys.NextField):
		return s.setFocus(s.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return s.setFocus(s.focus - 1)
	case key.Matches(msg, m.keys.Apply):
		m.applySettings()
		return nil
	case key.Matches(msg, m.keys.Defaults):
		s.editor.Reset()
		s.words.SetValue(s.editor.Text())
		m.setNotice("Default words loaded. Press ctrl+s to apply.", false)
		return nil
	case msg.Type == tea.KeyEnter && s.focus == fieldImport:
		m.importWords(strings.TrimSpace(s.importPath.Value()))
		return nil
	case msg.Type == tea.KeyEnter && s.focus == fieldPhotos:
		dir := strings.TrimSpace(s.photoDir.Value())
		if dir == "" {
			m.setNotice("Type a folder path first.", true)
			return nil
		}
		m.config.PhotoDir = dir
		m.setNotice("Reading photos…", false)
		return m.importPhotos(dir)
	}
	var cmd tea.Cmd
	switch s.focus {
	case fieldWords:
		s.words, cmd = s.words.Update(msg)
		s.editor.SetText(s.words.Value())
	case fieldImport:
		s.importPath, cmd = s.importPath.Update(msg)
	case fieldPhotos:
		s.photoDir, cmd = s.photoDir.Update(msg)
	}
	return cmd
}

func (m *Model) importWords(path string) {
	s := m.settings
	if path == "" {
		m.setNotice("Type a file path first.", true)
		return
	}
	n, err := s.editor.Import(path)
	if err != nil {
		log.Printf("word import failed: %v", err)
		m.setNotice(fmt.Sprintf("Import failed: %v", err), true)
		return
	}
	s.words.SetValue(s.editor.Text())
	s.importPath.SetValue("")
	m.setNotice(fmt.Sprintf("Imported %d words. Press ctrl+s to apply.", n), false)
}

func (m *Model) applySettings() {
	s := m.settings
	s.editor.SetText(s.words.Value())
	words, err := s.editor.Apply(context.Background())
	switch {
	case errors.Is(err, settings.ErrEmptyList):
		m.setNotice("Add at least one word before applying.", true)
		return
	case err != nil:
		log.Printf("failed to save words: %v", err)
		m.setNotice(fmt.Sprintf("Using %d words, but saving failed: %v", len(words), err), true)
	default:
		m.setNotice(fmt.Sprintf("Saved %d words.", len(words)), false)
	}
	s.words.SetValue(s.editor.Text())
}

func (m *Model) settingsView() string {
	s := m.settings
	title := titleStyle.Render("Settings")
	dirty := ""
	if s.editor.Dirty() {
		dirty = mutedStyle.Render("  (not applied)")
	}
	parts := []string{
		title,
		"",
		labelStyle.Render("Words") + dirty,
		s.words.View(),
		"",
		s.importPath.View(),
		s.photoDir.View(),
	}
	if notice := m.renderNotice(); notice != "" {
		parts = append(parts, "", notice)
	}
	return indentLines(strings.Join(parts, "\n"))
}
