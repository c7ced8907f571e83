// Package report collects what a run did and renders it for people and
// machines.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/retarget/pkg/executor"
)

// Shortcut statuses beyond the executor outcomes
const (
	StatusListed     = "listed"
	StatusMatch      = "match"
	StatusSkipped    = "skipped"
	StatusUnreadable = "unreadable"
)

// Report is the result of one command run
type Report struct {
	RunID     string    `json:"run_id" yaml:"run_id" toml:"run_id"`
	Command   string    `json:"command" yaml:"command" toml:"command"`
	DryRun    bool      `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	StartedAt time.Time `json:"started_at" yaml:"started_at" toml:"started_at"`
	Elapsed   string    `json:"elapsed" yaml:"elapsed" toml:"elapsed"`
	Old       *Target   `json:"old,omitempty" yaml:"old,omitempty" toml:"old,omitempty"`
	New       *Target   `json:"new,omitempty" yaml:"new,omitempty" toml:"new,omitempty"`
	Hosts     []Host    `json:"hosts,omitempty" yaml:"hosts,omitempty" toml:"hosts,omitempty"`
	Links     []Link    `json:"links,omitempty" yaml:"links,omitempty" toml:"links,omitempty"`
	Totals    Totals    `json:"totals" yaml:"totals" toml:"totals"`
}

// Target echoes a resolved old or new target
type Target struct {
	Raw        string      `json:"raw" yaml:"raw" toml:"raw"`
	Kind       string      `json:"kind" yaml:"kind" toml:"kind"`
	References []Reference `json:"references,omitempty" yaml:"references,omitempty" toml:"references,omitempty"`
}

// Reference is one reference shortcut of a target directory
type Reference struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Target string `json:"target" yaml:"target" toml:"target"`
}

// Host is the outcome for one host
type Host struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Root       string `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty"`
	Convention string `json:"convention,omitempty" yaml:"convention,omitempty" toml:"convention,omitempty"`
	Method     string `json:"method,omitempty" yaml:"method,omitempty" toml:"method,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	Users      []User `json:"users,omitempty" yaml:"users,omitempty" toml:"users,omitempty"`
}

// User is the outcome for one user directory
type User struct {
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Dir       string     `json:"dir" yaml:"dir" toml:"dir"`
	Error     string     `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	Scanned   int        `json:"scanned" yaml:"scanned" toml:"scanned"`
	Shortcuts []Shortcut `json:"shortcuts,omitempty" yaml:"shortcuts,omitempty" toml:"shortcuts,omitempty"`
}

// Shortcut is one shortcut line of the report
type Shortcut struct {
	Path      string `json:"path" yaml:"path" toml:"path"`
	Target    string `json:"target" yaml:"target" toml:"target"`
	Status    string `json:"status" yaml:"status" toml:"status"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	NewTarget string `json:"new_target,omitempty" yaml:"new_target,omitempty" toml:"new_target,omitempty"`
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty" toml:"reference,omitempty"`
	Backup    string `json:"backup,omitempty" yaml:"backup,omitempty" toml:"backup,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Link is the decoded content of one shortcut file
type Link struct {
	Path         string   `json:"path" yaml:"path" toml:"path"`
	Target       string   `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Name         string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Arguments    string   `json:"arguments,omitempty" yaml:"arguments,omitempty" toml:"arguments,omitempty"`
	WorkingDir   string   `json:"working_dir,omitempty" yaml:"working_dir,omitempty" toml:"working_dir,omitempty"`
	IconLocation string   `json:"icon_location,omitempty" yaml:"icon_location,omitempty" toml:"icon_location,omitempty"`
	RelativePath string   `json:"relative_path,omitempty" yaml:"relative_path,omitempty" toml:"relative_path,omitempty"`
	Flags        []string `json:"flags,omitempty" yaml:"flags,omitempty" toml:"flags,omitempty"`
	Blocks       []string `json:"blocks,omitempty" yaml:"blocks,omitempty" toml:"blocks,omitempty"`
	Checksum     string   `json:"checksum,omitempty" yaml:"checksum,omitempty" toml:"checksum,omitempty"`
	Error        string   `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Totals are counts across all hosts
type Totals struct {
	Hosts      int `json:"hosts" yaml:"hosts" toml:"hosts"`
	HostErrors int `json:"host_errors" yaml:"host_errors" toml:"host_errors"`
	Users      int `json:"users" yaml:"users" toml:"users"`
	UserErrors int `json:"user_errors" yaml:"user_errors" toml:"user_errors"`
	Scanned    int `json:"scanned" yaml:"scanned" toml:"scanned"`
	Matched    int `json:"matched" yaml:"matched" toml:"matched"`
	Applied    int `json:"applied" yaml:"applied" toml:"applied"`
	Planned    int `json:"planned" yaml:"planned" toml:"planned"`
	Failed     int `json:"failed" yaml:"failed" toml:"failed"`
	Skipped    int `json:"skipped" yaml:"skipped" toml:"skipped"`
	Unreadable int `json:"unreadable" yaml:"unreadable" toml:"unreadable"`
}

// New starts a report for command
func New(command string, dryRun bool) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Command:   command,
		DryRun:    dryRun,
		StartedAt: time.Now(),
	}
}

// Finish computes the totals and the elapsed time
func (r *Report) Finish() *Report {
	r.Elapsed = time.Since(r.StartedAt).Round(time.Millisecond).String()
	r.Totals = r.count()
	return r
}

func (r *Report) count() Totals {
	t := Totals{Hosts: len(r.Hosts)}
	for _, h := range r.Hosts {
		if h.Error != "" {
			t.HostErrors++
		}
		for _, u := range h.Users {
			t.Users++
			if u.Error != "" {
				t.UserErrors++
			}
			t.Scanned += u.Scanned
			for _, s := range u.Shortcuts {
				switch s.Status {
				case StatusListed:
					continue
				case StatusUnreadable:
					t.Unreadable++
					continue
				}
				t.Matched++
				switch s.Status {
				case string(executor.StatusApplied):
					t.Applied++
				case string(executor.StatusPlanned):
					t.Planned++
				case string(executor.StatusFailed):
					t.Failed++
				case StatusSkipped:
					t.Skipped++
				}
			}
		}
	}
	return t
}
