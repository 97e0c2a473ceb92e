package scope

import (
	"fmt"
	"sort"
	"strings"
)

// Globals is a read-only set of identifiers that resolve without a declaration.
type Globals struct {
	names map[string]struct{}
}

// Environments lists the known environment names.
func Environments() []string {
	return []string{"browser", "builtin", "commonjs", "node", "worker"}
}

func environment(name string) ([]string, bool) {
	switch name {
	case "builtin":
		return []string{
			"AggregateError", "Array", "ArrayBuffer", "Atomics", "BigInt", "BigInt64Array",
			"BigUint64Array", "Boolean", "DataView", "Date", "Error", "EvalError",
			"FinalizationRegistry", "Float32Array", "Float64Array", "Function", "Infinity",
			"Int16Array", "Int32Array", "Int8Array", "Intl", "JSON", "Map", "Math", "NaN",
			"Number", "Object", "Promise", "Proxy", "RangeError", "ReferenceError", "Reflect",
			"RegExp", "Set", "SharedArrayBuffer", "String", "Symbol", "SyntaxError", "TypeError",
			"URIError", "Uint16Array", "Uint32Array", "Uint8Array", "Uint8ClampedArray",
			"WeakMap", "WeakRef", "WeakSet", "arguments", "decodeURI", "decodeURIComponent",
			"encodeURI", "encodeURIComponent", "escape", "eval", "globalThis", "isFinite",
			"isNaN", "parseFloat", "parseInt", "undefined", "unescape",
		}, true
	case "browser":
		return []string{
			"AbortController", "Blob", "CustomEvent", "DOMParser", "Event", "EventSource",
			"File", "FileReader", "FormData", "Headers", "HTMLElement", "Image",
			"IntersectionObserver", "MediaRecorder", "MutationObserver", "Node", "Notification",
			"Request", "Response", "TextDecoder", "TextEncoder", "URL", "URLSearchParams",
			"WebSocket", "Worker", "XMLHttpRequest", "alert", "atob", "btoa",
			"cancelAnimationFrame", "clearInterval", "clearTimeout", "confirm", "console",
			"crypto", "customElements", "document", "fetch", "history", "localStorage",
			"location", "navigator", "performance", "prompt", "queueMicrotask",
			"requestAnimationFrame", "screen", "self", "sessionStorage", "setInterval",
			"setTimeout", "structuredClone", "window",
		}, true
	case "commonjs":
		return []string{"exports", "module", "require"}, true
	case "node":
		return []string{
			"AbortController", "Buffer", "TextDecoder", "TextEncoder", "URL", "URLSearchParams",
			"__dirname", "__filename", "clearImmediate", "clearInterval", "clearTimeout",
			"console", "exports", "fetch", "global", "module", "process", "queueMicrotask",
			"require", "setImmediate", "setInterval", "setTimeout", "structuredClone",
		}, true
	case "worker":
		return []string{
			"caches", "clearInterval", "clearTimeout", "console", "fetch", "importScripts",
			"onmessage", "postMessage", "self", "setInterval", "setTimeout",
		}, true
	}
	return nil, false
}

// NewGlobals builds the set for the builtin environment, the named
// environments and any extra names.
func NewGlobals(envs []string, extra []string) (*Globals, error) {
	g := &Globals{names: map[string]struct{}{}}
	builtin, _ := environment("builtin")
	g.add(builtin)
	for _, env := range envs {
		names, ok := environment(strings.ToLower(strings.TrimSpace(env)))
		if !ok {
			return nil, fmt.Errorf("unknown environment %q (known: %s)", env, strings.Join(Environments(), ", "))
		}
		g.add(names)
	}
	g.add(extra)
	return g, nil
}

func (g *Globals) add(names []string) {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			g.names[n] = struct{}{}
		}
	}
}

func (g *Globals) Has(name string) bool {
	if g == nil {
		return false
	}
	_, ok := g.names[name]
	return ok
}

// Names returns the set sorted.
func (g *Globals) Names() []string {
	out := make([]string, 0, len(g.names))
	for n := range g.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
