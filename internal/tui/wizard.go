package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/progress"
	"github.com/versepace/versepace/internal/service"
)

const (
	introInterval     = 3 * time.Second
	countdownInterval = time.Second
	countdownFrom     = 3
)

var introMessages = []string{
	"vamos medir seu tempo médio de leitura",
	"leia tranquilamente o texto bíblico",
	"como você faz naturalmente",
	"aperte enter ao terminar",
}

type introTickMsg struct{ seq int }

type countdownTickMsg struct{ seq int }

func (m Model) introTick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(introInterval, func(time.Time) tea.Msg {
		return introTickMsg{seq: seq}
	})
}

func (m Model) countdownTick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(countdownInterval, func(time.Time) tea.Msg {
		return countdownTickMsg{seq: seq}
	})
}

// startWizard resets the setup flow to its first question.
func (m Model) startWizard() Model {
	m.screen = screenMinutes
	m.input = ""
	m.minutes = 0
	m.result = nil
	return m
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.screen == screenDays {
			m.screen = screenMinutes
			m.input = strconv.Itoa(m.minutes)
			return m, nil
		}
		if m.sess.State.Pace().Speed > 0 {
			m.screen = screenReading
			if !m.sess.BookOpen() {
				m.openBooks()
			}
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyEnter:
		return m.submitSetup()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' && len(m.input) < 4 {
				m.input += string(r)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) submitSetup() (tea.Model, tea.Cmd) {
	n, err := strconv.Atoi(m.input)
	if err != nil {
		m.notice = "digite um número"
		return m, nil
	}

	if m.screen == screenMinutes {
		m.minutes = n
		m.input = ""
		m.screen = screenDays
		return m, nil
	}

	req := service.PaceRequest{DaysPerWeek: n, MinutesPerDay: m.minutes}
	if err := m.svc.SetPace(m.ctx, m.sess, req); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.input = ""
	m.screen = screenIntro
	m.introIdx = 0
	m.tickSeq++
	return m, m.introTick()
}

func (m Model) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return m.startCountdown()
	}
	return m.nextIntro()
}

func (m Model) onIntroTick(msg introTickMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenIntro || msg.seq != m.tickSeq {
		return m, nil
	}
	return m.nextIntro()
}

func (m Model) nextIntro() (tea.Model, tea.Cmd) {
	m.tickSeq++
	if m.introIdx+1 >= len(introMessages) {
		return m.startCountdown()
	}
	m.introIdx++
	return m, m.introTick()
}

func (m Model) startCountdown() (tea.Model, tea.Cmd) {
	m.tickSeq++
	m.screen = screenCountdown
	m.countdown = countdownFrom
	return m, m.countdownTick()
}

func (m Model) onCountdownTick(msg countdownTickMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenCountdown || msg.seq != m.tickSeq {
		return m, nil
	}
	m.countdown--
	if m.countdown > 0 {
		return m, m.countdownTick()
	}
	m.screen = screenSample
	m.sampleStart = m.now()
	return m, nil
}

func (m Model) updateSample(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeySpace:
	case tea.KeyEsc:
		return m.startWizard(), nil
	default:
		return m, nil
	}

	elapsed := m.now().Sub(m.sampleStart)
	result, err := m.svc.RecordSample(m.ctx, m.sess, domain.SampleCharCount, elapsed)
	if err != nil {
		m.err = err
		// A sample too short to measure is read again.
		m.sampleStart = m.now()
		return m, nil
	}
	m.err = nil
	m.result = result
	m.screen = screenResults
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if m.sess.BookOpen() {
			m.screen = screenReading
		} else {
			m.openBooks()
		}
	case "r":
		return m.startWizard(), nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewSetup() string {
	question := "Quantos minutos por dia?"
	if m.screen == screenDays {
		question = "Quantos dias na semana? (1 a 7)"
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("versepace"))
	b.WriteString("\n")
	b.WriteString(question + "\n\n")
	b.WriteString(m.styles.dialog.Render(m.input + "_"))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(m.styles.err.Render(m.notice) + "\n")
	}
	b.WriteString(m.styles.muted.Render("enter: continuar  esc: voltar"))
	return b.String()
}

func (m Model) viewIntro() string {
	return m.center(m.styles.item.Render(introMessages[m.introIdx]))
}

func (m Model) viewCountdown() string {
	return m.center(m.styles.count.Render(strconv.Itoa(m.countdown)))
}

func (m Model) viewSample() string {
	text := m.styles.verseBlock(domain.SampleText, m.fontSize, m.width)
	return text + "\n\n" + m.styles.muted.Render("enter ao terminar")
}

func (m Model) viewResults() string {
	r := m.result
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Velocidade: %.2f caracteres/segundo\n", r.Speed)
	fmt.Fprintf(&b, "Tempo total de leitura: %s\n", progress.FormatReadingTime(r.Estimate.TotalReadingTime))
	if r.Estimate.Determined {
		fmt.Fprintf(&b, "Semanas necessárias: %d\n", r.Estimate.WeeksNeeded)
		fmt.Fprintf(&b, "Previsão de término: %s", r.Estimate.ProjectedDate.Format(dateLayout))
	} else {
		b.WriteString("Semanas necessárias: indeterminado\n")
		b.WriteString("Previsão de término: indeterminada")
	}

	return m.styles.title.Render("Resultado") + "\n" +
		m.styles.dialog.Render(b.String()) + "\n\n" +
		m.styles.muted.Render("enter: começar a ler  r: medir de novo  q: sair")
}

// dateLayout is the pt-BR day/month/year form.
const dateLayout = "02/01/2006"

func (m Model) center(s string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}
