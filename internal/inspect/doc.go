// Package inspect defines the inspection port: the single interface
// through which checkers query the rendered environment.
//
// All computed-style reads, geometry reads, attribute lookups, and
// clone-and-measure state simulation go through Inspector. Rule logic
// never touches a renderer directly, so the four checkers are testable
// against the fake in internal/testutil without a browser.
//
// Adapters: internal/livedom (Chromium over CDP), internal/staticdom
// (parsed HTML), internal/snapshot (recorded replay), and the test fake.
package inspect
