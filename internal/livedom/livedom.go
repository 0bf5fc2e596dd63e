// Package livedom adapts a live browser page to the inspection port
// over the Chrome DevTools Protocol. It enumerates interactive nodes,
// reads computed styles and geometry from the real renderer, and runs
// the off-screen clone simulation for hover and focus triggers.
package livedom

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/auditkit/navaudit/internal/element"
)

// interactiveSelector enumerates the nodes treated as interactive
// navigation candidates. Kept in sync with the static adapter.
const interactiveSelector = "a, button, input[type='submit'], [role='button'], [role='link'], [role='menuitem'], [onclick], [tabindex]"

// Options configures a browser session.
type Options struct {
	// Timeout bounds navigation and page settling. Zero means 30s.
	Timeout time.Duration

	// Width and Height set the viewport. Zero keeps browser defaults.
	Width  int
	Height int
}

// Session owns a headless browser with one audited page. Close releases
// both.
type Session struct {
	browser *rod.Browser
	page    *rod.Page

	// Adapter is the inspection adapter bound to the page.
	Adapter *Adapter
}

// Open launches a headless browser, navigates to url, waits for the
// page to settle, and builds the inspection adapter.
func Open(url string, opts Options) (*Session, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	path, _ := launcher.LookPath()
	controlURL, err := launcher.New().Bin(path).Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("opening page %s: %w", url, err)
	}
	if opts.Width > 0 && opts.Height > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width: opts.Width, Height: opts.Height, DeviceScaleFactor: 1,
		}); err != nil {
			browser.Close()
			return nil, fmt.Errorf("setting viewport: %w", err)
		}
	}

	timed := page.Timeout(opts.Timeout)
	if err := timed.WaitLoad(); err != nil {
		browser.Close()
		return nil, fmt.Errorf("waiting for page load: %w", err)
	}
	// Settle network activity, bounded: persistent connections must not
	// hang the audit.
	page.Timeout(5 * time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()

	adapter, err := Attach(page)
	if err != nil {
		browser.Close()
		return nil, err
	}

	return &Session{browser: browser, page: page, Adapter: adapter}, nil
}

// Page returns the underlying page for callers that need raw access.
func (s *Session) Page() *rod.Page { return s.page }

// Close releases the page and browser.
func (s *Session) Close() {
	if s.page != nil {
		s.page.Close()
	}
	if s.browser != nil {
		s.browser.Close()
	}
}

// Attach builds an adapter over an already-open page, registering every
// interactive node in document order.
func Attach(page *rod.Page) (*Adapter, error) {
	nodes, err := page.Elements(interactiveSelector)
	if err != nil {
		return nil, fmt.Errorf("enumerating interactive nodes: %w", err)
	}

	a := &Adapter{
		page:  page,
		byKey: make(map[string]*rod.Element, len(nodes)),
	}
	for i, n := range nodes {
		key := fmt.Sprintf("node-%04d", i)
		a.byKey[key] = n
		a.order = append(a.order, key)

		el, err := a.extractElement(key, n)
		if err != nil {
			return nil, fmt.Errorf("extracting element %s: %w", key, err)
		}
		a.elements = append(a.elements, el)
	}
	return a, nil
}

// extractElement normalizes one live node.
func (a *Adapter) extractElement(key string, n *rod.Element) (element.NavigationElement, error) {
	obj, err := n.Eval(`() => {
		const rect = this.getBoundingClientRect();
		const style = getComputedStyle(this);
		return {
			tag: this.tagName.toLowerCase(),
			id: this.id || "",
			href: this.getAttribute("href") || "",
			onclick: this.getAttribute("onclick") || "",
			role: this.getAttribute("role") || "",
			ariaLabel: this.getAttribute("aria-label") || "",
			visible: style.display !== "none" && style.visibility !== "hidden" && rect.width > 0 && rect.height > 0,
			rect: {x: rect.x, y: rect.y, width: rect.width, height: rect.height},
		};
	}`)
	if err != nil {
		return element.NavigationElement{}, err
	}

	v := obj.Value
	el := element.NavigationElement{
		ID:            v.Get("id").Str(),
		Type:          classify(v.Get("tag").Str(), v.Get("role").Str()),
		Destination:   v.Get("href").Str(),
		Handler:       v.Get("onclick").Str(),
		Role:          v.Get("role").Str(),
		AriaLabel:     v.Get("ariaLabel").Str(),
		IsInteractive: true,
		IsVisible:     v.Get("visible").Bool(),
		Node:          nodeRef(key),
	}
	if el.ID == "" {
		el.ID = key
		el.Selector = v.Get("tag").Str()
	} else {
		el.Selector = "#" + el.ID
	}

	rect := element.Rect{
		X:      v.Get("rect").Get("x").Num(),
		Y:      v.Get("rect").Get("y").Num(),
		Width:  v.Get("rect").Get("width").Num(),
		Height: v.Get("rect").Get("height").Num(),
	}
	if !rect.IsZero() {
		el.Bounds = &rect
	}
	return el, nil
}

// classify maps tag and role to an element type.
func classify(tag, role string) element.ElementType {
	switch {
	case role == "menuitem":
		return element.TypeMenuItem
	case tag == "input":
		return element.TypeFormSubmit
	case tag == "button" || role == "button":
		return element.TypeButton
	case tag == "a" || role == "link":
		return element.TypeLink
	default:
		return element.TypeButton
	}
}

// nodeRef is the NodeRef implementation for live nodes.
type nodeRef string

func (r nodeRef) NodeKey() string { return string(r) }
