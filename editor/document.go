// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package editor implements an editing session over a single JSON document.
//
// A Document holds the current root of a tree of values and applies the edit
// actions of an interactive editor to it, one at a time. Each action replaces
// the root with a new tree built by the edit package, and schedules a
// debounced revalidation of the document against an optional schema using a
// caller-provided facade.Validator.
package editor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/creachadair/jvedit/edit"
	"github.com/creachadair/jvedit/facade"
	"github.com/creachadair/jvedit/jspath"
	"github.com/creachadair/jvedit/value"
)

// DefaultDelay is the revalidation delay used when Options.Delay is zero.
const DefaultDelay = 500 * time.Millisecond

// proposalDepth bounds the depth of the proposal used to augment an object
// proposal in ApplyProposal.
const proposalDepth = 5

// Options are optional settings for a Document. A nil *Options is ready for
// use and provides defaults as described.
type Options struct {
	// Schema, if non-nil, is passed to Validator for each revalidation.
	Schema value.Value

	// Validator, if non-nil, validates the document after each change.
	// If nil, the document is never validated and no proposals are made.
	Validator facade.Validator

	// Scheduler is used to delay revalidation. If nil, a TimerScheduler is
	// used.
	Scheduler Scheduler

	// Delay is the revalidation delay. If zero, DefaultDelay is used.
	Delay time.Duration

	// OnValidate, if non-nil, is called with the outcome of each scheduled
	// revalidation, from the goroutine on which the scheduler runs it.
	OnValidate func(facade.Result, error)

	// Logger, if non-nil, receives debug logs of editing actions.
	// If nil, logs are discarded.
	Logger *slog.Logger
}

func (o *Options) scheduler() Scheduler {
	if o == nil || o.Scheduler == nil {
		return TimerScheduler{}
	}
	return o.Scheduler
}

func (o *Options) delay() time.Duration {
	if o == nil || o.Delay <= 0 {
		return DefaultDelay
	}
	return o.Delay
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// A Document is an editing session over one JSON document. It is safe for
// concurrent use; actions are applied one at a time in the order they
// acquire the document.
type Document struct {
	schema     value.Value
	validator  facade.Validator
	onValidate func(facade.Result, error)
	log        *slog.Logger
	deb        *Debouncer

	mu      sync.Mutex
	root    value.Value
	version uint64
	result  facade.Result
}

// New constructs a Document whose initial root is root. If root == nil, the
// document starts as null.
func New(root value.Value, opts *Options) *Document {
	if root == nil {
		root = value.Null{}
	}
	d := &Document{
		log:  opts.logger(),
		deb:  NewDebouncer(opts.scheduler(), opts.delay()),
		root: root,
	}
	if opts != nil {
		d.schema = opts.Schema
		d.validator = opts.Validator
		d.onValidate = opts.OnValidate
	}
	return d
}

// Root returns the current root of the document.
func (d *Document) Root() value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.root
}

// Version reports the number of times the root has been replaced.
func (d *Document) Version() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Result returns the result of the most recent revalidation, or nil if the
// document has never been validated. The result may describe an earlier
// version of the document while a revalidation is pending.
func (d *Document) Result() facade.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// Get returns the value at path in the current root.
func (d *Document) Get(path jspath.Path) (value.Value, bool) { return edit.Get(d.Root(), path) }

// SetRoot replaces the whole document with root and schedules revalidation.
func (d *Document) SetRoot(root value.Value) value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	if root == nil {
		root = value.Null{}
	}
	return d.setRootLocked("set-root", jspath.Empty, root)
}

// Update replaces the value at path. If path is empty the whole document is
// replaced. If path does not resolve, the document is unchanged.
func (d *Document) Update(path jspath.Path, v value.Value) value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setRootLocked("update", path, edit.Set(d.root, path, v))
}

// Delete removes the value at path from its parent. Deleting the root
// replaces the document with null.
func (d *Document) Delete(path jspath.Path) value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	root, ok := edit.Delete(d.root, path)
	if !ok {
		root = value.Null{}
	}
	return d.setRootLocked("delete", path, root)
}

// Move moves the value at path one position in direction dir within its
// parent object or array.
func (d *Document) Move(path jspath.Path, dir edit.Direction) value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setRootLocked("move "+dir.String(), path, edit.Move(d.root, path, dir))
}

// AddProperty adds a member with the given name to the object at path. The
// value of the new member is the first value the validator proposes for it,
// with any object proposal stripped of its members, or null if there is no
// proposal. If path does not address an object, the document is unchanged.
func (d *Document) AddProperty(path jspath.Path, name string) value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.objectAt(path); !ok {
		return d.root
	}

	// Propose against a document in which the member exists, since there are
	// no proposals for a path that does not resolve.
	tmp := edit.AddProperty(d.root, path, name, value.Null{})
	v := d.firstProposal(tmp, path.Append(name))
	return d.setRootLocked("add-property", path.Append(name), edit.AddProperty(d.root, path, name, v))
}

// AddElement appends a new element to the array at path. The value of the
// new element is chosen as for AddProperty. If path does not address an
// array, the document is unchanged.
func (d *Document) AddElement(path jspath.Path) value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, ok := edit.Get(d.root, path)
	arr, isArray := cur.(value.Array)
	if !ok || !isArray {
		return d.root
	}

	tmp := edit.AppendElement(d.root, path, value.Null{})
	elem := path.AppendIndex(len(arr))
	v := d.firstProposal(tmp, elem)
	return d.setRootLocked("add-element", elem, edit.AppendElement(d.root, path, v))
}

// ApplyProposal replaces the value at path with proposal, the value at
// position index among the proposals for path. An object proposal is first
// replaced by a deeper proposal at the same index, if the latest validation
// result has one, and is then merged under the existing value if that is
// also an object, so existing members are kept.
func (d *Document) ApplyProposal(path jspath.Path, proposal value.Value, index int) value.Value {
	d.mu.Lock()
	defer d.mu.Unlock()

	newValue := proposal
	if obj, ok := proposal.(value.Object); ok {
		if cur, ok := edit.Get(d.root, path); ok {
			if d.result != nil {
				deep := d.result.Propose(path, proposalDepth)
				if index >= 0 && index < len(deep) {
					if dobj, ok := deep[index].(value.Object); ok {
						obj = dobj
					}
				}
			}
			if into, ok := cur.(value.Object); ok {
				obj = edit.MergeProperties(obj, into)
			}
			newValue = obj
		}
	}
	return d.setRootLocked("apply-proposal", path, edit.Set(d.root, path, newValue))
}

// Revalidate validates the current document synchronously, records the
// result, and returns it. It cancels any pending scheduled revalidation.
// If the document has no validator, Revalidate returns nil, nil.
func (d *Document) Revalidate() (facade.Result, error) {
	d.deb.Stop()
	return d.validate()
}

// Close cancels any pending revalidation.
func (d *Document) Close() { d.deb.Stop() }

func (d *Document) validate() (facade.Result, error) {
	d.mu.Lock()
	root, version := d.root, d.version
	d.mu.Unlock()
	if d.validator == nil {
		return nil, nil
	}

	res, err := d.validator.Validate(d.schema, root)
	if err != nil {
		d.log.Debug("validation failed", "version", version, "error", err)
		return nil, err
	}
	if res == nil {
		d.log.Debug("validator returned no result", "version", version)
		return nil, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.version == version {
		d.result = res
	}
	d.log.Debug("validated", "version", version, "errors", len(res.Errors()))
	return res, nil
}

// objectAt reports the object at path in the current root, if there is one.
// The caller must hold d.mu.
func (d *Document) objectAt(path jspath.Path) (value.Object, bool) {
	v, ok := edit.Get(d.root, path)
	if !ok {
		return nil, false
	}
	obj, ok := v.(value.Object)
	return obj, ok
}

// firstProposal validates root and returns the first proposal for path, with
// the members of an object proposal removed. It returns null if there is no
// validator or no proposal. The caller must hold d.mu.
func (d *Document) firstProposal(root value.Value, path jspath.Path) value.Value {
	if d.validator == nil {
		return value.Null{}
	}
	res, err := d.validator.Validate(d.schema, root)
	if err != nil {
		d.log.Debug("validation for proposal failed", "path", path, "error", err)
		return value.Null{}
	}
	if res == nil {
		return value.Null{}
	}
	if ps := res.Propose(path, -1); len(ps) != 0 {
		return ClearProperties(ps[0])
	}
	return value.Null{}
}

// setRootLocked installs root as the current root and schedules a
// revalidation. If root is the current root the edit had no effect, and the
// version is not changed. The caller must hold d.mu.
func (d *Document) setRootLocked(action string, path jspath.Path, root value.Value) value.Value {
	if sameValue(root, d.root) {
		d.log.Debug("edit had no effect", "action", action, "path", path)
		return root
	}
	d.root = root
	d.version++
	d.log.Debug("edit", "action", action, "path", path, "version", d.version)

	if d.validator != nil {
		d.deb.Trigger(func() {
			res, err := d.validate()
			if d.onValidate != nil {
				d.onValidate(res, err)
			}
		})
	}
	return root
}

// sameValue reports whether a and b are the same value. Arrays and objects
// are the same only if they share storage, as the edit package returns its
// input unchanged when an edit does nothing.
func sameValue(a, b value.Value) bool {
	switch t := a.(type) {
	case value.Array:
		u, ok := b.(value.Array)
		return ok && len(t) == len(u) && (len(t) == 0 || &t[0] == &u[0])
	case value.Object:
		u, ok := b.(value.Object)
		return ok && len(t) == len(u) && (len(t) == 0 || &t[0] == &u[0])
	}
	return a == b
}

// ClearProperties returns an empty object if v is an object, and otherwise
// returns v unchanged.
func ClearProperties(v value.Value) value.Value {
	if _, ok := v.(value.Object); ok {
		return value.Object{}
	}
	return v
}
