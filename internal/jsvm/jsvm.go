package jsvm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// DefaultTimeout bounds a Run when RunOptions.Timeout is zero.
const DefaultTimeout = 2 * time.Second

var (
	// ErrSyntax indicates the script does not parse.
	ErrSyntax = errors.New("javascript syntax error")

	// ErrRuntime indicates the script threw while running.
	ErrRuntime = errors.New("javascript runtime error")

	// ErrTimeout indicates the script exceeded its time budget.
	ErrTimeout = errors.New("javascript execution timed out")
)

const timeoutReason = "execution timeout"

// prelude installs the DOM stand-in and the __report collector.
const prelude = `
var __report = {appended: [], logs: [], reloaded: false, executed: false, settings: null};

function __element(tag) {
  return {
    tagName: tag, src: '', type: '', id: '', attributes: {},
    setAttribute: function(name, value) { this.attributes[name] = String(value); },
    appendChild: function(child) {
      __report.appended.push({
        parent: this.tagName, tag: child.tagName, src: child.src,
        type: child.type, id: child.id, attributes: child.attributes
      });
      return child;
    }
  };
}

var __body = __element('body');
var document = {
  documentElement: __element('html'),
  getElementsByTagName: function(name) { return name === 'body' && __hasBody ? [__body] : []; },
  createElement: function(tag) { return __element(tag); }
};

var console = {
  log: function() { __report.logs.push(Array.prototype.slice.call(arguments).join(' ')); }
};
`

// artooStub is installed when RunOptions.ArtooLoaded is set.
const artooStub = `
var artoo = {
  loadSettings: function(s) { __report.reloaded = true; __report.settings = s; },
  exec: function() { __report.executed = true; }
};
`

// Element is a node appended to the page by the script.
type Element struct {
	Parent     string            `json:"parent"`
	Tag        string            `json:"tag"`
	Src        string            `json:"src"`
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes map[string]string `json:"attributes"`
}

// Report describes what a script did to the stub page.
type Report struct {
	Appended []Element      `json:"appended"`
	Logs     []string       `json:"logs"`
	Reloaded bool           `json:"reloaded"` // artoo.loadSettings was called
	Executed bool           `json:"executed"` // artoo.exec was called
	Settings map[string]any `json:"settings"` // argument of artoo.loadSettings
}

// Script returns the first appended element with the given tag, or nil.
func (r *Report) Script() *Element {
	for i := range r.Appended {
		if r.Appended[i].Tag == "script" {
			return &r.Appended[i]
		}
	}
	return nil
}

// RunOptions configures a sandboxed run.
type RunOptions struct {
	ArtooLoaded bool          // define a global artoo object before running
	NoBody      bool          // document has no <body> element
	Timeout     time.Duration // zero means DefaultTimeout
}

// Check compiles src without running it.
func Check(name, src string) error {
	if _, err := goja.Compile(name, src, false); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return nil
}

// Run evaluates src in a fresh runtime and returns what it did.
func Run(ctx context.Context, src string, opts RunOptions) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prog, err := goja.Compile("bookmarklet.js", src, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	vm := goja.New()
	if err := vm.Set("__hasBody", !opts.NoBody); err != nil {
		return nil, err
	}
	if _, err := vm.RunString(prelude); err != nil {
		return nil, fmt.Errorf("installing prelude: %w", err)
	}
	if opts.ArtooLoaded {
		if _, err := vm.RunString(artooStub); err != nil {
			return nil, fmt.Errorf("installing artoo stub: %w", err)
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.AfterFunc(timeout, func() {
		vm.Interrupt(timeoutReason)
	})
	defer timer.Stop()

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	if _, err := vm.RunProgram(prog); err != nil {
		return nil, runError(err)
	}
	timer.Stop()
	stop()
	vm.ClearInterrupt()

	raw, err := vm.RunString("JSON.stringify(__report)")
	if err != nil {
		return nil, fmt.Errorf("collecting report: %w", err)
	}

	var report Report
	if err := json.Unmarshal([]byte(raw.String()), &report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &report, nil
}

func runError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return cause
		}
		return ErrTimeout
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		return fmt.Errorf("%w: %s", ErrRuntime, exception.Error())
	}
	return fmt.Errorf("%w: %v", ErrRuntime, err)
}
