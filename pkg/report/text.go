package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/retarget/pkg/style"
)

// painter decorates the pieces of the line-oriented layout
type painter interface {
	title(s string) string
	heading(s string) string
	muted(s string) string
	path(s string) string
	failure(s string) string
	badge(status string) string
	totals(rows [][]string) string
}

type plainPainter struct{}

func (plainPainter) title(s string) string   { return s }
func (plainPainter) heading(s string) string { return s }
func (plainPainter) muted(s string) string   { return s }
func (plainPainter) path(s string) string    { return s }
func (plainPainter) failure(s string) string { return s }
func (plainPainter) badge(status string) string {
	return fmt.Sprintf("[%s]", status)
}
func (plainPainter) totals(rows [][]string) string {
	var parts []string
	for _, row := range rows[1:] {
		parts = append(parts, row[0]+" "+row[1])
	}
	return "Totals: " + strings.Join(parts, ", ")
}

type termPainter struct{}

func (termPainter) title(s string) string   { return style.TitleStyle.Render(s) }
func (termPainter) heading(s string) string { return style.SubtitleStyle.Render(s) }
func (termPainter) muted(s string) string   { return style.MutedStyle.Render(s) }
func (termPainter) path(s string) string    { return style.PathStyle.Render(s) }
func (termPainter) failure(s string) string { return style.ErrorIndicator + " " + style.ErrorStyle.Render(s) }
func (termPainter) badge(status string) string {
	return style.Badge(style.Status(status))
}
func (termPainter) totals(rows [][]string) string {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return plainPainter{}.totals(rows)
	}
	return out
}

func renderLines(r *Report, p painter) string {
	var b strings.Builder

	header := r.Command
	if header != "" {
		header = strings.ToUpper(header[:1]) + header[1:]
	}
	if r.DryRun {
		header += " (dry run)"
	}
	b.WriteString(p.title(header) + " " + p.muted("run "+r.RunID) + "\n")

	for _, t := range []struct {
		label  string
		target *Target
	}{{"old", r.Old}, {"new", r.New}} {
		if t.target == nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %s %s\n", t.label, t.target.Raw, p.muted("("+t.target.Kind+")"))
		for _, ref := range t.target.References {
			fmt.Fprintf(&b, "  %s -> %s\n", ref.Name, p.path(ref.Target))
		}
	}

	for _, h := range r.Hosts {
		b.WriteString("\n")
		writeHost(&b, h, p)
	}

	for _, l := range r.Links {
		b.WriteString("\n")
		writeLink(&b, l, p)
	}

	if len(r.Hosts) > 0 {
		b.WriteString("\n" + p.totals(totalsRows(r.Totals)) + "\n")
	}
	return b.String()
}

func writeHost(b *strings.Builder, h Host, p painter) {
	name := h.Name
	if name == "" {
		name = "local"
	}
	if h.Error != "" {
		fmt.Fprintf(b, "%s %s\n", p.heading("Host "+name), p.failure(h.Error))
		return
	}
	fmt.Fprintf(b, "%s %s %s\n", p.heading("Host "+name), p.path(h.Root), p.muted("["+h.Convention+", "+h.Method+"]"))

	for _, u := range h.Users {
		if u.Error != "" {
			fmt.Fprintf(b, "  %s %s\n", u.Name, p.failure(u.Error))
			continue
		}
		fmt.Fprintf(b, "  %s %s %s\n", p.title(u.Name), p.path(u.Dir), p.muted(fmt.Sprintf("(%d scanned)", u.Scanned)))
		for _, s := range u.Shortcuts {
			writeShortcut(b, s, p)
		}
	}
}

func writeShortcut(b *strings.Builder, s Shortcut, p painter) {
	switch s.Status {
	case StatusListed:
		fmt.Fprintf(b, "    %s -> %s\n", s.Path, p.path(s.Target))
		return
	case StatusMatch:
		fmt.Fprintf(b, "    %s %s -> %s\n", p.badge(s.Status), s.Path, p.path(s.Target))
		return
	}

	fmt.Fprintf(b, "    %s %s\n", p.badge(s.Status), s.Path)
	if s.NewTarget != "" {
		fmt.Fprintf(b, "        %s -> %s\n", p.path(s.Target), p.path(s.NewTarget))
	}
	if s.Reference != "" {
		fmt.Fprintf(b, "        %s\n", p.muted("from "+s.Reference))
	}
	if s.Backup != "" {
		fmt.Fprintf(b, "        %s\n", p.muted("backup "+s.Backup))
	}
	if s.Error != "" {
		fmt.Fprintf(b, "        %s\n", p.failure(s.Error))
	}
}

func writeLink(b *strings.Builder, l Link, p painter) {
	b.WriteString(p.heading(l.Path) + "\n")
	if l.Error != "" {
		b.WriteString("  " + p.failure(l.Error) + "\n")
		return
	}
	for _, f := range [][2]string{
		{"target", l.Target},
		{"name", l.Name},
		{"arguments", l.Arguments},
		{"working dir", l.WorkingDir},
		{"icon", l.IconLocation},
		{"relative path", l.RelativePath},
		{"flags", strings.Join(l.Flags, " ")},
		{"blocks", strings.Join(l.Blocks, " ")},
		{"checksum", l.Checksum},
	} {
		if f[1] != "" {
			fmt.Fprintf(b, "  %-14s %s\n", f[0]+":", f[1])
		}
	}
}

func totalsRows(t Totals) [][]string {
	rows := [][]string{{"", "count"}}
	for _, c := range []struct {
		name string
		n    int
	}{
		{"hosts", t.Hosts},
		{"host errors", t.HostErrors},
		{"users", t.Users},
		{"scanned", t.Scanned},
		{"matched", t.Matched},
		{"applied", t.Applied},
		{"planned", t.Planned},
		{"failed", t.Failed},
		{"skipped", t.Skipped},
		{"unreadable", t.Unreadable},
	} {
		rows = append(rows, []string{c.name, fmt.Sprint(c.n)})
	}
	return rows
}
