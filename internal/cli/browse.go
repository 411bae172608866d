package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/MarkZakelj/pytoty/internal/core"
	"github.com/MarkZakelj/pytoty/pkg/models"
)

// Browse panel indices.
const (
	panelFiles = iota
	panelPreview
	panelCount
)

var browseCmd = &cobra.Command{
	Use:   "browse <input-dir>",
	Short: "Interactively browse models and their generated TypeScript",
	Long: `Open an interactive view of the Pydantic models found under the input
directory, with a live preview of the TypeScript each file would generate.

Keys: up/down or j/k to select, tab to switch panels, r to rescan, q to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().String("pattern", "", "File pattern to match Python files (default \"**/*.py\")")
	browseCmd.Flags().Bool("no-enum", false, "Preview enums as union types instead of TypeScript enums")
	browseCmd.Flags().Bool("no-null", false, "Don't generate | null for optional fields")

	rootCmd.AddCommand(browseCmd)
}

type browseItem struct {
	path    string
	summary string // e.g. "2 models, 1 enum"
	preview string // generated TypeScript
}

type browseModel struct {
	inputDir string
	opts     core.ConvertOptions

	items       []browseItem
	cursor      int
	offset      int // preview scroll offset
	activePanel int
	width       int
	height      int
	loading     bool
	err         error
}

// browseLoadedMsg carries scanned data back to the model.
type browseLoadedMsg struct {
	items []browseItem
	err   error
}

// Style definitions, shared with nothing else on purpose: the browse view
// owns its look.
var (
	browseTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	browsePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	browseActivePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	browseSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	browseDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	browseHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newBrowseModel(inputDir string, opts core.ConvertOptions) browseModel {
	return browseModel{
		inputDir: inputDir,
		opts:     opts,
		loading:  true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return loadBrowseData(m.inputDir, m.opts)
}

// loadBrowseData scans the input tree and pre-renders a TypeScript preview
// for each file that contains models or enums.
func loadBrowseData(inputDir string, opts core.ConvertOptions) tea.Cmd {
	return func() tea.Msg {
		report, err := Converter.ScanDir(inputDir, opts)
		if err != nil {
			return browseLoadedMsg{err: err}
		}

		items := make([]browseItem, 0, len(report.Files))
		for _, file := range report.Files {
			item := browseItem{path: file.Path}
			switch {
			case len(file.Enums) == 0:
				item.summary = fmt.Sprintf("%d models", len(file.Models))
			case len(file.Models) == 0:
				item.summary = fmt.Sprintf("%d enums", len(file.Enums))
			default:
				item.summary = fmt.Sprintf("%d models, %d enums", len(file.Models), len(file.Enums))
			}

			src, err := os.ReadFile(filepath.Join(inputDir, filepath.FromSlash(file.Path)))
			if err != nil {
				item.preview = fmt.Sprintf("error reading %s: %v", file.Path, err)
			} else if ts, err := Converter.ConvertSource(string(src), opts); err != nil {
				item.preview = fmt.Sprintf("error converting %s: %v", file.Path, err)
			} else {
				item.preview = ts
			}
			items = append(items, item)
		}
		return browseLoadedMsg{items: items}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadBrowseData(m.inputDir, m.opts)
		case "up", "k":
			if m.activePanel == panelFiles && m.cursor > 0 {
				m.cursor--
				m.offset = 0
			} else if m.activePanel == panelPreview && m.offset > 0 {
				m.offset--
			}
			return m, nil
		case "down", "j":
			if m.activePanel == panelFiles && m.cursor < len(m.items)-1 {
				m.cursor++
				m.offset = 0
			} else if m.activePanel == panelPreview {
				m.offset++
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case browseLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	title := browseTitleStyle.Render("pytoty browse: " + m.inputDir)
	help := browseHelpStyle.Render("up/down select · tab switch panel · r rescan · q quit")

	if m.loading {
		return title + "\n\nScanning...\n\n" + help
	}
	if m.err != nil {
		return title + "\n\nError: " + m.err.Error() + "\n\n" + help
	}
	if len(m.items) == 0 {
		return title + "\n\nNo Pydantic models found.\n\n" + help
	}

	listWidth := m.width / 3
	previewWidth := m.width - listWidth - 6
	bodyHeight := m.height - 6
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	files := m.renderFileList(listWidth, bodyHeight)
	preview := m.renderPreview(previewWidth, bodyHeight)

	filesPanel := panelStyleFor(m.activePanel == panelFiles).Width(listWidth).Height(bodyHeight).Render(files)
	previewPanel := panelStyleFor(m.activePanel == panelPreview).Width(previewWidth).Height(bodyHeight).Render(preview)

	body := lipgloss.JoinHorizontal(lipgloss.Top, filesPanel, previewPanel)
	return title + "\n" + body + "\n" + help
}

func panelStyleFor(active bool) lipgloss.Style {
	if active {
		return browseActivePanelStyle
	}
	return browsePanelStyle
}

func (m browseModel) renderFileList(width, height int) string {
	var b strings.Builder
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	for i := start; i < len(m.items) && i-start < height; i++ {
		item := m.items[i]
		line := fmt.Sprintf("%s  %s", item.path, browseDimStyle.Render(item.summary))
		if i == m.cursor {
			line = browseSelectedStyle.Render(item.path) + "  " + browseDimStyle.Render(item.summary)
		}
		b.WriteString(truncate(line, width))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m browseModel) renderPreview(width, height int) string {
	lines := strings.Split(m.items[m.cursor].preview, "\n")
	offset := m.offset
	if offset > len(lines)-1 {
		offset = len(lines) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	var b strings.Builder
	for _, line := range lines[offset:end] {
		b.WriteString(truncate(line, width))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, width int) string {
	if width <= 1 || len(s) <= width {
		return s
	}
	return s[:width-1] + "…"
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if Converter == nil {
		return fmt.Errorf("converter not initialized")
	}

	opts, err := loadConfigOptions()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("pattern") {
		opts.Pattern, _ = cmd.Flags().GetString("pattern")
	}
	if noEnum, _ := cmd.Flags().GetBool("no-enum"); noEnum {
		opts.EnumStyle = models.EnumStyleUnion
	}
	if noNull, _ := cmd.Flags().GetBool("no-null"); noNull {
		opts.NoNull = true
		opts.EmitNull = false
	}

	p := tea.NewProgram(newBrowseModel(args[0], opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browse UI: %w", err)
	}
	return nil
}
