package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown builds a markdown document. On terminals it is rendered
// with glamour; otherwise the source is returned.
func renderMarkdown(r *Report, terminal bool) string {
	md := markdown(r)
	if !terminal {
		return md
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func markdown(r *Report) string {
	var b strings.Builder

	title := "retarget " + r.Command
	if r.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(&b, "# %s\n\nRun `%s`, started %s, took %s.\n", title, r.RunID,
		r.StartedAt.Format("2006-01-02 15:04:05"), r.Elapsed)

	for _, t := range []struct {
		label  string
		target *Target
	}{{"Old target", r.Old}, {"New target", r.New}} {
		if t.target == nil {
			continue
		}
		fmt.Fprintf(&b, "\n- **%s** (%s): `%s`\n", t.label, t.target.Kind, t.target.Raw)
		for _, ref := range t.target.References {
			fmt.Fprintf(&b, "  - %s: `%s`\n", ref.Name, ref.Target)
		}
	}

	for _, h := range r.Hosts {
		name := h.Name
		if name == "" {
			name = "local"
		}
		fmt.Fprintf(&b, "\n## Host %s\n\n", name)
		if h.Error != "" {
			fmt.Fprintf(&b, "**Error:** %s\n", h.Error)
			continue
		}
		fmt.Fprintf(&b, "Profile root `%s` (%s, %s)\n", h.Root, h.Convention, h.Method)
		for _, u := range h.Users {
			fmt.Fprintf(&b, "\n### %s\n\n", u.Name)
			if u.Error != "" {
				fmt.Fprintf(&b, "**Error:** %s\n", u.Error)
				continue
			}
			fmt.Fprintf(&b, "`%s`, %d shortcuts scanned\n", u.Dir, u.Scanned)
			if len(u.Shortcuts) == 0 {
				continue
			}
			b.WriteString("\n| Status | Shortcut | Target | New target |\n|---|---|---|---|\n")
			for _, s := range u.Shortcuts {
				newTarget := s.NewTarget
				if s.Error != "" {
					newTarget = s.Error
				}
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", s.Status, cell(s.Path), cell(s.Target), cell(newTarget))
			}
		}
	}

	for _, l := range r.Links {
		fmt.Fprintf(&b, "\n## %s\n\n", l.Path)
		if l.Error != "" {
			fmt.Fprintf(&b, "**Error:** %s\n", l.Error)
			continue
		}
		b.WriteString("| Field | Value |\n|---|---|\n")
		for _, f := range [][2]string{
			{"Target", l.Target},
			{"Name", l.Name},
			{"Arguments", l.Arguments},
			{"Working dir", l.WorkingDir},
			{"Icon", l.IconLocation},
			{"Relative path", l.RelativePath},
			{"Flags", strings.Join(l.Flags, ", ")},
			{"Blocks", strings.Join(l.Blocks, ", ")},
			{"Checksum", l.Checksum},
		} {
			if f[1] != "" {
				fmt.Fprintf(&b, "| %s | %s |\n", f[0], cell(f[1]))
			}
		}
	}

	if len(r.Hosts) > 0 {
		t := r.Totals
		fmt.Fprintf(&b, "\n## Totals\n\n| Hosts | Host errors | Users | Scanned | Matched | Applied | Planned | Failed | Skipped |\n|---|---|---|---|---|---|---|---|---|\n| %d | %d | %d | %d | %d | %d | %d | %d | %d |\n",
			t.Hosts, t.HostErrors, t.Users, t.Scanned, t.Matched, t.Applied, t.Planned, t.Failed, t.Skipped)
	}
	return b.String()
}

// cell makes s safe inside a table cell; backslashes are literal in code spans
func cell(s string) string {
	if s == "" {
		return ""
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}
