package report

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

func renderXML(w io.Writer, r *Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")
	root.CreateAttr("run-id", r.RunID)
	root.CreateAttr("command", r.Command)
	root.CreateAttr("dry-run", strconv.FormatBool(r.DryRun))
	root.CreateAttr("started", r.StartedAt.Format("2006-01-02T15:04:05Z07:00"))
	root.CreateAttr("elapsed", r.Elapsed)

	for _, t := range []struct {
		tag    string
		target *Target
	}{{"old", r.Old}, {"new", r.New}} {
		if t.target == nil {
			continue
		}
		el := root.CreateElement(t.tag)
		el.CreateAttr("kind", t.target.Kind)
		el.CreateAttr("raw", t.target.Raw)
		for _, ref := range t.target.References {
			re := el.CreateElement("reference")
			re.CreateAttr("name", ref.Name)
			re.SetText(ref.Target)
		}
	}

	for _, h := range r.Hosts {
		he := root.CreateElement("host")
		he.CreateAttr("name", h.Name)
		setAttrs(he, "root", h.Root, "convention", h.Convention, "method", h.Method)
		if h.Error != "" {
			he.CreateElement("error").SetText(h.Error)
		}
		for _, u := range h.Users {
			ue := he.CreateElement("user")
			ue.CreateAttr("name", u.Name)
			ue.CreateAttr("dir", u.Dir)
			ue.CreateAttr("scanned", strconv.Itoa(u.Scanned))
			if u.Error != "" {
				ue.CreateElement("error").SetText(u.Error)
			}
			for _, s := range u.Shortcuts {
				se := ue.CreateElement("shortcut")
				se.CreateAttr("status", s.Status)
				setAttrs(se, "kind", s.Kind)
				se.CreateElement("path").SetText(s.Path)
				se.CreateElement("target").SetText(s.Target)
				setChildren(se, "new-target", s.NewTarget, "reference", s.Reference, "backup", s.Backup, "error", s.Error)
			}
		}
	}

	for _, l := range r.Links {
		le := root.CreateElement("link")
		le.CreateAttr("path", l.Path)
		setChildren(le, "target", l.Target, "name", l.Name, "arguments", l.Arguments,
			"working-dir", l.WorkingDir, "icon", l.IconLocation, "relative-path", l.RelativePath,
			"checksum", l.Checksum, "error", l.Error)
		for _, f := range l.Flags {
			le.CreateElement("flag").SetText(f)
		}
		for _, blk := range l.Blocks {
			le.CreateElement("block").SetText(blk)
		}
	}

	t := r.Totals
	te := root.CreateElement("totals")
	for _, kv := range [][2]string{
		{"hosts", strconv.Itoa(t.Hosts)},
		{"host-errors", strconv.Itoa(t.HostErrors)},
		{"users", strconv.Itoa(t.Users)},
		{"user-errors", strconv.Itoa(t.UserErrors)},
		{"scanned", strconv.Itoa(t.Scanned)},
		{"matched", strconv.Itoa(t.Matched)},
		{"applied", strconv.Itoa(t.Applied)},
		{"planned", strconv.Itoa(t.Planned)},
		{"failed", strconv.Itoa(t.Failed)},
		{"skipped", strconv.Itoa(t.Skipped)},
		{"unreadable", strconv.Itoa(t.Unreadable)},
	} {
		te.CreateAttr(kv[0], kv[1])
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// setAttrs adds the non-empty values of key/value pairs as attributes
func setAttrs(el *etree.Element, kv ...string) {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			el.CreateAttr(kv[i], kv[i+1])
		}
	}
}

// setChildren adds the non-empty values of key/value pairs as text elements
func setChildren(el *etree.Element, kv ...string) {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			el.CreateElement(kv[i]).SetText(kv[i+1])
		}
	}
}
