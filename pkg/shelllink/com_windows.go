//go:build windows

package shelllink

import (
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/arthur-debert/retarget/pkg/errors"
)

// COMEditor edits shortcuts through the WScript.Shell automation object
type COMEditor struct{}

func newCOMEditor() (Editor, error) {
	return &COMEditor{}, nil
}

// withShortcut opens path as a WshShortcut on a COM-initialized thread
func (e *COMEditor) withShortcut(path string, fn func(sc *ole.IDispatch) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE: already initialized on this thread
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			return errors.Wrap(err, errors.ErrInternal, "CoInitializeEx failed")
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot create WScript.Shell")
	}
	defer unknown.Release()

	wshell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot query WScript.Shell")
	}
	defer wshell.Release()

	cs, err := oleutil.CallMethod(wshell, "CreateShortcut", path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrShortcutRead, "cannot open %s", path)
	}
	sc := cs.ToIDispatch()
	defer sc.Release()

	return fn(sc)
}

// ReadTarget returns the TargetPath property of the shortcut
func (e *COMEditor) ReadTarget(path string) (string, error) {
	var target string
	err := e.withShortcut(path, func(sc *ole.IDispatch) error {
		v, err := oleutil.GetProperty(sc, "TargetPath")
		if err != nil {
			return errors.Wrapf(err, errors.ErrShortcutRead, "cannot read target of %s", path)
		}
		target = v.ToString()
		return nil
	})
	return target, err
}

// Retarget sets TargetPath and saves the shortcut
func (e *COMEditor) Retarget(path, newTarget string) error {
	return e.withShortcut(path, func(sc *ole.IDispatch) error {
		if _, err := oleutil.PutProperty(sc, "TargetPath", newTarget); err != nil {
			return errors.Wrapf(err, errors.ErrShortcutWrite, "cannot set target of %s", path)
		}
		if _, err := oleutil.CallMethod(sc, "Save"); err != nil {
			return errors.Wrapf(err, errors.ErrShortcutWrite, "cannot save %s", path)
		}
		return nil
	})
}
