// Package browse implements the "browse" subcommand: an interactive
// terminal browser over a disc's tracks and sectors.
package browse

import (
	"encoding/hex"
	"fmt"

	"github.com/sargunv/cdimage/internal/bcdfmt"
	"github.com/sargunv/cdimage/internal/format"
	"github.com/sargunv/cdimage/lib/cdimage"
	_ "github.com/sargunv/cdimage/lib/cdimage/cue"
	_ "github.com/sargunv/cdimage/lib/cdimage/iso"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "browse <file>",
	Short: "Interactively browse a disc's tracks and sectors",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	path := args[0]

	d, err := cdimage.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer d.Close()

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("read table of contents: %w", err)
	}

	m := newModel(d, info)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

const dumpHeight = 20

type model struct {
	d       cdimage.Disc
	tracks  []cdimage.TrackInfo
	cursor  int
	vp      viewport.Model
	dumpErr error
	ready   bool
}

func newModel(d cdimage.Disc, info *cdimage.Info) model {
	var tracks []cdimage.TrackInfo
	for _, sess := range info.Sessions {
		tracks = append(tracks, sess.Tracks...)
	}
	m := model{d: d, tracks: tracks, vp: viewport.New(80, dumpHeight)}
	m.loadDump()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m *model) loadDump() {
	if len(m.tracks) == 0 {
		return
	}
	tr := m.tracks[m.cursor]
	pos := tr.PosFirstSector
	if !m.d.Seek(pos.Min, pos.Sec, pos.Frame) {
		m.dumpErr = fmt.Errorf("seek to track %d failed", tr.Number)
		return
	}
	var buf [cdimage.RawSectorSize]byte
	if _, err := m.d.Read(buf[:], false); err != nil {
		m.dumpErr = err
		return
	}
	m.dumpErr = nil
	m.vp.SetContent(hex.Dump(buf[:]))
	m.vp.GotoTop()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = min(msg.Height-len(m.tracks)-4, dumpHeight)
		m.ready = true
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.loadDump()
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.tracks)-1 {
				m.cursor++
				m.loadDump()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if len(m.tracks) == 0 {
		return "disc has no tracks\n"
	}

	var out string
	out += format.HeaderStyle.Render("Tracks (↑/↓ to move, q to quit)") + "\n"
	for i, tr := range m.tracks {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		out += fmt.Sprintf("%s%02d  %s\n", prefix, tr.Number, bcdfmt.Position(tr.PosFirstSector))
	}

	out += "\n" + format.HeaderStyle.Render("First sector (scroll with pgup/pgdn):") + "\n"
	if m.dumpErr != nil {
		out += format.ErrorStyle.Render(m.dumpErr.Error()) + "\n"
	} else {
		out += m.vp.View()
	}
	return out
}
