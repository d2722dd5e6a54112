package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-action-layout/pkg/accel"
	"github.com/mattsolo1/grove-action-layout/pkg/actions"
	"github.com/mattsolo1/grove-action-layout/pkg/layout"
	"github.com/mattsolo1/grove-action-layout/pkg/store"
	"github.com/mattsolo1/grove-action-layout/pkg/tree"
)

var (
	// ErrAccelKept is returned when the user declines to take an accelerator
	// away from another node.
	ErrAccelKept = errors.New("accelerator left with its current owner")
	// ErrNoSelection is returned by selection based operations when nothing
	// is selected.
	ErrNoSelection = errors.New("nothing selected")
	// ErrNoSuchNode is returned for handles or references that name nothing.
	ErrNoSuchNode = errors.New("no such node")
	// ErrNotRemovable is returned when removing an action. Installed actions
	// can only be disabled.
	ErrNotRemovable = errors.New("actions cannot be removed, disable them instead")
	// ErrNotEditable is returned when editing a separator or a disabled action.
	ErrNotEditable = errors.New("node cannot be edited")
	// ErrNotAction is returned by operations that only apply to actions.
	ErrNotAction = errors.New("not an action")
)

// NewSubmenuLabel is the label and identifier given to new submenus.
const NewSubmenuLabel = "New submenu"

// ConfirmFunc asks whether an accelerator may be taken from the node
// labelled owner.
type ConfirmFunc func(owner string) bool

// Config holds editor configuration
type Config struct {
	LayoutFile string
	// ActionDirs are scanned in order; later directories override earlier ones.
	ActionDirs []string
	Extension  string
	Locale     string
	Reserved   []accel.Shortcut
}

// Editor is one editing session over the menu layout. It is not safe for
// concurrent use.
type Editor struct {
	cfg        Config
	store      store.DisabledStore
	scanner    *actions.Scanner
	log        *logrus.Entry
	model      *tree.Model
	installed  *actions.Pool
	selected   tree.Handle
	needsSaved bool
	report     layout.LoadReport
}

// New creates an editor. Call Reload before using it.
func New(cfg Config, st store.DisabledStore, log *logrus.Entry) *Editor {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	if cfg.Reserved == nil {
		cfg.Reserved, _ = accel.NewReserved(accel.DefaultReserved)
	}
	return &Editor{
		cfg:   cfg,
		store: st,
		scanner: actions.NewScanner(
			actions.WithExtension(cfg.Extension),
			actions.WithLocale(cfg.Locale),
			actions.WithLogger(log.WithField("component", "scanner")),
		),
		log:   log,
		model: tree.New(log.WithField("component", "tree")),
	}
}

// Config returns the editor configuration.
func (e *Editor) Config() Config { return e.cfg }

// Model exposes the tree for read access.
func (e *Editor) Model() *tree.Model { return e.model }

// LastLoad describes the most recent layout load.
func (e *Editor) LastLoad() layout.LoadReport { return e.report }

// NeedsSaved reports unsaved structural or override changes.
func (e *Editor) NeedsSaved() bool { return e.needsSaved }

// Reload rescans the installed actions and rebuilds the tree from the layout
// file. Unsaved changes are lost. An error is returned only when the
// disabled list could not be read; the tree is rebuilt regardless.
func (e *Editor) Reload() error {
	doc, report := layout.Load(e.cfg.LayoutFile)
	e.report = report
	switch {
	case report.Discarded:
		e.log.WithError(report.Reason).WithField("file", report.Path).
			Warn("layout file is invalid, starting from an empty layout")
	case report.Missing:
		e.log.WithField("file", report.Path).Debug("no layout file yet")
	}
	for _, d := range report.Diagnostics {
		e.log.WithField("path", d.Path).Info(d.Msg)
	}
	return e.rebuild(doc)
}

// Discard throws away unsaved changes.
func (e *Editor) Discard() error {
	err := e.Reload()
	e.needsSaved = false
	return err
}

// DefaultLayout rebuilds the tree with every action flat at the top level.
// The result is unsaved.
func (e *Editor) DefaultLayout() error {
	err := e.rebuild(layout.Flat())
	e.needsSaved = true
	return err
}

func (e *Editor) rebuild(doc *layout.Document) error {
	pool := e.scanner.Scan(e.cfg.ActionDirs)
	e.installed = pool.Clone()

	disabled, err := e.store.Get()
	if err != nil {
		e.log.WithError(err).Warn("cannot read disabled actions, treating all as enabled")
		disabled = nil
		err = fmt.Errorf("read disabled actions: %w", err)
	}

	e.model.Load(doc, pool, disabled)
	e.selected = tree.Root
	if roots := e.model.Roots(); len(roots) > 0 {
		e.selected = roots[0]
	}
	e.log.WithFields(logrus.Fields{
		"nodes":    e.model.Len(),
		"disabled": len(disabled),
	}).Debug("layout loaded")
	return err
}

// Installed returns the actions found by the last scan. The pool is a copy
// the caller may consume.
func (e *Editor) Installed() *actions.Pool {
	if e.installed == nil {
		return actions.NewPool()
	}
	return e.installed.Clone()
}

// StorePath names the file holding the disabled list, or "" when it is not
// kept on disk.
func (e *Editor) StorePath() string {
	return store.Path(e.store)
}

// RefreshDisabled rereads the disabled list after another program changed
// it. Only enabled flags change; unsaved edits are kept.
func (e *Editor) RefreshDisabled() error {
	ids, err := e.store.Get()
	if err != nil {
		return fmt.Errorf("read disabled actions: %w", err)
	}
	e.ApplyDisabled(ids)
	return nil
}

// Document serializes the current tree.
func (e *Editor) Document() *layout.Document {
	return tree.Serialize(e.model)
}

// Save writes the layout file and the disabled list.
func (e *Editor) Save() error {
	if err := layout.Save(e.cfg.LayoutFile, e.Document()); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	if err := e.store.Set(e.model.DisabledIDs()); err != nil {
		return fmt.Errorf("save disabled actions: %w", err)
	}
	e.needsSaved = false
	e.log.WithField("file", e.cfg.LayoutFile).Info("layout saved")
	return nil
}

// Select makes h the selected node.
func (e *Editor) Select(h tree.Handle) bool {
	if !e.model.Valid(h) {
		return false
	}
	e.selected = h
	return true
}

// Deselect clears the selection.
func (e *Editor) Deselect() {
	e.selected = tree.Root
}

// Selected returns the selected node, if any.
func (e *Editor) Selected() (tree.Handle, bool) {
	if !e.model.Valid(e.selected) {
		return tree.Root, false
	}
	return e.selected, true
}

func (e *Editor) get(h tree.Handle) (*tree.Node, error) {
	n, ok := e.model.Get(h)
	if !ok {
		return nil, ErrNoSuchNode
	}
	return n, nil
}

func (e *Editor) changed() {
	e.needsSaved = true
}
