package pipeline

import (
	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/report"
	"github.com/arthur-debert/retarget/pkg/target"
)

// TargetEntry converts a resolved specifier for the report
func TargetEntry(spec *target.Specifier) *report.Target {
	if spec == nil {
		return nil
	}
	t := &report.Target{Raw: spec.Raw, Kind: spec.Kind.String()}
	for _, ref := range spec.References {
		t.References = append(t.References, report.Reference{Name: ref.Name, Target: ref.Target})
	}
	return t
}

// CheckOld rejects an old target directory without readable reference
// shortcuts, which could never match anything
func CheckOld(spec *target.Specifier) error {
	if !spec.IsLiteral() && len(spec.References) == 0 {
		return errors.Newf(errors.ErrInvalidInput, "no reference shortcuts in %s", spec.Path)
	}
	return nil
}
