package main

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorOK     = lipgloss.Color("#2CD7C7")
	colorWarn   = lipgloss.Color("#F4D03F")
	colorErr    = lipgloss.Color("#E74C3C")
	colorMuted  = lipgloss.Color("#6B7F86")
)

var styles = struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Success: lipgloss.NewStyle().Foreground(colorOK),
	Warning: lipgloss.NewStyle().Foreground(colorWarn),
	Error:   lipgloss.NewStyle().Foreground(colorErr),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Key:     lipgloss.NewStyle().Bold(true).Width(16),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
}

// stdout - вывод интерактивного режима, где нет *cobra.Command.
var stdout io.Writer = os.Stdout

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styles.Success.Render(fmt.Sprintf(format, args...)))
}

func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styles.Warning.Render(fmt.Sprintf(format, args...)))
}

// kv - пара "ключ: значение" для таблиц.
type kv struct {
	key, value string
}

// renderTable рисует пары в рамке; пустые значения пропускаются.
func renderTable(title string, rows []kv) string {
	lines := []string{styles.Title.Render(title)}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, styles.Key.Render(r.key), r.value))
	}
	return styles.Box.Render(strings.Join(lines, "\n"))
}

func deref[T any](p *T) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}

// валидаторы для форм

func validateEmail(s string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return errors.New("enter a valid email")
	}
	return nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateCode(s string) error {
	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return errors.New("the code has 6 digits")
	}
	if _, err := strconv.Atoi(s); err != nil {
		return errors.New("the code has 6 digits")
	}
	return nil
}

// validateOptionalFloat допускает пустое значение.
func validateOptionalFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func validateOptionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}

func parseOptionalFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseOptionalInt32(s string) *int32 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return nil
	}
	n := int32(v)
	return &n
}
